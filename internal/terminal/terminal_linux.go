// SPDX-License-Identifier: Apache-2.0

//go:build linux

package terminal

import (
	"os"
	"strings"
)

// Candidate terminals in preference order, each with its documented
// run-command-in-new-window form. The trailing "exec bash" keeps the window
// open after the ssh session ends.
func candidates() []Handle {
	return []Handle{
		{Name: "gnome-terminal", bin: "gnome-terminal", args: []string{"--", "sh", "-c", "{}; exec bash"}},
		{Name: "konsole", bin: "konsole", args: []string{"-e", "sh", "-c", "{}; exec bash"}},
		{Name: "xfce4-terminal", bin: "xfce4-terminal", args: []string{"-e", "sh -c '{}; exec bash'"}},
		{Name: "alacritty", bin: "alacritty", args: []string{"-e", "sh", "-c", "{}; exec bash"}},
		{Name: "kitty", bin: "kitty", args: []string{"sh", "-c", "{}; exec bash"}},
		{Name: "ghostty", bin: "ghostty", args: []string{"-e", "sh", "-c", "{}; exec bash"}},
		{Name: "wezterm", bin: "wezterm", args: []string{"start", "--", "sh", "-c", "{}; exec bash"}},
		{Name: "tilix", bin: "tilix", args: []string{"-e", "sh -c '{}; exec bash'"}},
		{Name: "terminator", bin: "terminator", args: []string{"-e", "sh -c '{}; exec bash'"}},
		{Name: "x-terminal-emulator", bin: "x-terminal-emulator", args: []string{"-e", "sh", "-c", "{}; exec bash"}},
		{Name: "xterm", bin: "xterm", args: []string{"-e", "sh", "-c", "{}; exec bash"}},
	}
}

func genericHandle(bin string) Handle {
	return Handle{Name: bin, bin: bin, args: []string{"-e", "sh", "-c", "{}; exec bash"}}
}

func available(h Handle) bool {
	_, err := lookPath(h.bin)
	return err == nil
}

// preferredFromEnv honors $TERMINAL before probing the candidate list.
func preferredFromEnv(cands []Handle) (Handle, bool) {
	termEnv := os.Getenv("TERMINAL")
	if termEnv == "" {
		return Handle{}, false
	}
	for _, h := range cands {
		if strings.Contains(termEnv, h.bin) && available(h) {
			return h, true
		}
	}
	return Handle{}, false
}

func buildArgv(h Handle, command string) ([]string, error) {
	return append([]string{h.bin}, expandArgs(h.args, command)...), nil
}
