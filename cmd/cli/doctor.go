// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"os"

	"sshmenu/internal/logger"
	"sshmenu/internal/settings"
	"sshmenu/internal/sshconfig"
	"sshmenu/internal/terminal"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration sources and terminal detection",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := 0

		headerColor.Println("Configuration sources")
		sshPath, err := sshconfig.DefaultPath()
		if err != nil {
			errorColor.Printf("  ssh config path: %v\n", err)
			os.Exit(1)
		}
		entries, parseErr := sshconfig.Parse(sshPath)
		switch {
		case parseErr != nil:
			errorColor.Printf("  %s: %v\n", sshPath, parseErr)
			exitCode = 1
		case fileMissing(sshPath):
			dimColor.Printf("  %s: not found\n", sshPath)
		default:
			successColor.Printf("  %s: %d host(s)\n", sshPath, len(entries))
		}

		settingsPath, err := settings.DefaultPath()
		if err != nil {
			errorColor.Printf("  settings path: %v\n", err)
			os.Exit(1)
		}
		s, loadErr := settings.Load(settingsPath)
		switch {
		case loadErr != nil:
			errorColor.Printf("  %s: %v\n", settingsPath, loadErr)
			exitCode = 1
		default:
			if fileMissing(settingsPath) {
				dimColor.Printf("  %s: not found (defaults in effect)\n", settingsPath)
			} else {
				successColor.Printf("  %s: ok (%d override(s), %d exclusion(s), %d action(s))\n",
					settingsPath, len(s.Hosts), len(s.Exclude), len(s.Actions))
			}
		}

		fmt.Println()
		headerColor.Println("Terminal")
		handle, termErr := terminal.Resolve(s)
		switch {
		case errors.Is(termErr, terminal.ErrNoTerminal):
			errorColor.Println("  no usable terminal emulator found")
			if s.TerminalOverride() != "" {
				dimColor.Printf("  configured override %q is not available\n", s.TerminalOverride())
			}
			exitCode = 1
		case termErr != nil:
			errorColor.Printf("  %v\n", termErr)
			exitCode = 1
		default:
			successColor.Printf("  %s\n", handle.Name)
			if s.TerminalOverride() != "" {
				dimColor.Printf("  (from settings override %q)\n", s.TerminalOverride())
			}
		}

		fmt.Println()
		headerColor.Println("Logging")
		if logPath, err := logger.LogFilePath(); err == nil {
			fmt.Printf("  %s\n", logPath)
		}

		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func fileMissing(path string) bool {
	_, err := os.Stat(path)
	return os.IsNotExist(err)
}
