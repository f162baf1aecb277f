// SPDX-License-Identifier: Apache-2.0

//go:build darwin

package terminal

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// On macOS most terminals are app bundles launched through `open -a`, which
// cannot pass a command directly; a one-shot login-shell script carries it.
func candidates() []Handle {
	return []Handle{
		{Name: "iterm", bin: "iTerm"},
		{Name: "terminal", bin: "Terminal"},
		{Name: "warp", bin: "Warp"},
		{Name: "kitty", bin: "kitty"},
		{Name: "ghostty", bin: "Ghostty"},
		{Name: "wezterm", bin: "WezTerm", args: []string{"open", "-na", "wezterm", "--args", "start", "--"}},
	}
}

func genericHandle(name string) Handle {
	return Handle{Name: name, bin: name}
}

func available(h Handle) bool {
	if _, err := lookPath(h.bin); err == nil {
		return true
	}
	// App bundles are not on $PATH; `open -Ra` checks Launch Services.
	return exec.Command("open", "-Ra", h.bin).Run() == nil
}

func preferredFromEnv(cands []Handle) (Handle, bool) {
	return Handle{}, false
}

func buildArgv(h Handle, command string) ([]string, error) {
	script, err := writeRunScript(command)
	if err != nil {
		return nil, err
	}
	if len(h.args) > 0 {
		return append(append([]string{}, h.args...), script), nil
	}
	return []string{"open", "-a", h.bin, script}, nil
}

func writeRunScript(command string) (string, error) {
	path := filepath.Join(os.TempDir(), "sshmenu-run.sh")
	content := fmt.Sprintf("#!/bin/zsh -il\n%s\nexec $SHELL\n", command)
	if err := os.WriteFile(path, []byte(content), 0755); err != nil {
		return "", fmt.Errorf("failed to write launch script: %w", err)
	}
	return path, nil
}
