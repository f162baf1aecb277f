// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"sshmenu/cmd/menu"

	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the interactive host menu (the no-argument default)",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		menu.RunMenu()
	},
}
