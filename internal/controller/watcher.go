// SPDX-License-Identifier: Apache-2.0

package controller

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"sshmenu/internal/logger"
)

// debounceInterval coalesces the bursts of events editors emit when they
// save via rename-and-replace.
const debounceInterval = 250 * time.Millisecond

// Watcher triggers a callback when either source file changes on disk. It
// watches the parent directories rather than the files themselves, because
// most editors replace files on save and a direct watch would go stale.
type Watcher struct {
	fsw  *fsnotify.Watcher
	done chan struct{}
}

// WatchFiles starts watching paths and invokes onChange (debounced) from a
// background goroutine. The caller is responsible for marshaling onChange
// back onto its event loop; the controller itself is single-threaded.
func WatchFiles(paths []string, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	watched := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		watched[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			// Non-fatal: the directory may not exist yet. Manual reload
			// still works.
			logger.Warn("cannot watch directory", "dir", dir, "error", err)
		}
	}

	w := &Watcher{fsw: fsw, done: make(chan struct{})}
	go w.loop(watched, onChange)
	return w, nil
}

func (w *Watcher) loop(watched map[string]struct{}, onChange func()) {
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				abs = event.Name
			}
			if _, relevant := watched[abs]; !relevant {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			logger.Debug("source file changed", "path", abs, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceInterval, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("file watcher error", "error", err)
		case <-fire:
			onChange()
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
