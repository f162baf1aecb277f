// SPDX-License-Identifier: Apache-2.0

// Package terminal picks an available terminal emulator and launches a shell
// command in a new window. Each platform contributes its own candidate list
// and invocation forms; the rest of the system only sees Handle.
package terminal

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"sshmenu/internal/logger"
	"sshmenu/internal/settings"
)

// ErrNoTerminal means no candidate terminal program is available, or an
// explicitly configured one is missing from the search path.
var ErrNoTerminal = errors.New("no terminal emulator found")

// LaunchError reports a process-spawn failure for a resolved terminal.
type LaunchError struct {
	Program string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Program, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// Handle identifies a usable terminal program together with its documented
// "run command in new window" invocation form. The placeholder {} in the
// argument template is replaced with the shell command.
type Handle struct {
	// Name is the user-facing identifier, matched against the settings
	// terminal value.
	Name string

	bin  string
	args []string
}

// Program returns the executable the handle will spawn.
func (h Handle) Program() string { return h.bin }

// Argv builds the full command line for running command in a new window.
func (h Handle) Argv(command string) ([]string, error) {
	return buildArgv(h, command)
}

// lookPath is swapped out in tests.
var lookPath = exec.LookPath

// Resolve picks the terminal to use. A configured override is validated and
// used exclusively: an explicit user choice must not be silently replaced,
// so a missing override fails instead of falling back to detection.
func Resolve(s settings.Settings) (Handle, error) {
	return resolve(s.TerminalOverride(), candidates())
}

func resolve(override string, cands []Handle) (Handle, error) {
	if override != "" {
		h, known := findCandidate(override, cands)
		if !known {
			h = genericHandle(override)
		}
		if !available(h) {
			return Handle{}, fmt.Errorf("configured terminal %q is not on the search path: %w", override, ErrNoTerminal)
		}
		return h, nil
	}

	if h, ok := preferredFromEnv(cands); ok {
		return h, nil
	}

	for _, h := range cands {
		if available(h) {
			return h, nil
		}
	}
	return Handle{}, ErrNoTerminal
}

func findCandidate(name string, cands []Handle) (Handle, bool) {
	for _, h := range cands {
		if strings.EqualFold(h.Name, name) || strings.EqualFold(h.bin, name) {
			return h, true
		}
	}
	return Handle{}, false
}

// Launch spawns the terminal detached and returns as soon as the OS accepts
// the spawn. Session lifetime is independent of this process.
func Launch(h Handle, command string) error {
	argv, err := h.Argv(command)
	if err != nil {
		return &LaunchError{Program: h.bin, Err: err}
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return &LaunchError{Program: h.bin, Err: err}
	}
	logger.Debug("spawned terminal", "program", argv[0], "pid", cmd.Process.Pid)
	if err := cmd.Process.Release(); err != nil {
		logger.Warn("failed to release terminal process", "error", err)
	}
	return nil
}

func expandArgs(args []string, command string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = strings.ReplaceAll(a, "{}", command)
	}
	return out
}
