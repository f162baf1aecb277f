// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"sshmenu/internal/controller"
	"sshmenu/internal/logger"
	"sshmenu/internal/notify"
	"sshmenu/internal/settings"
)

// Run starts the interactive menu and blocks until the user quits.
func Run() error {
	h := newHost()

	var prog *tea.Program
	ctrl, err := controller.New(controller.Config{
		Host:   h,
		OnQuit: func() { h.quit = true },
		Notify: func(message string) {
			notify.Send(message)
			if prog != nil {
				prog.Send(statusMsg(message))
			}
		},
	})
	if err != nil {
		return err
	}

	if err := settings.EnsureExists(ctrl.SettingsPath()); err != nil {
		logger.Warn("could not create default settings file", "path", ctrl.SettingsPath(), "error", err)
	}

	ctrl.Refresh()

	prog = tea.NewProgram(newModel(ctrl, h), tea.WithAltScreen())

	watcher, err := controller.WatchFiles(
		[]string{ctrl.SSHConfigPath(), ctrl.SettingsPath()},
		func() { prog.Send(sourcesChangedMsg{}) },
	)
	if err != nil {
		logger.Warn("file watching unavailable, use reload instead", "error", err)
	} else {
		defer watcher.Close()
	}

	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("menu: %w", err)
	}
	return nil
}
