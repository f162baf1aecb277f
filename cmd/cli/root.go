// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"os"

	"sshmenu/internal/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	headerColor   = color.New(color.FgCyan, color.Bold)
	aliasColor    = color.New(color.FgBlue)
	overrideColor = color.New(color.FgYellow)
	successColor  = color.New(color.FgGreen)
	errorColor    = color.New(color.FgRed)
	dimColor      = color.New(color.Faint)
)

var rootCmd = &cobra.Command{
	Use:   "sshmenu",
	Short: "SSH host menu utility",
	Long: `Builds a launchable menu of SSH hosts from ~/.ssh/config and an optional
settings file (~/.config/sshmenu/settings.json).

Run without arguments for the interactive menu; subcommands inspect the
merged host registry from the command line.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(false)
	},
}

// RunCLI executes the command tree.
func RunCLI() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(hostsCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(menuCmd)
}
