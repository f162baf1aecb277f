// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"sshmenu/cmd/cli"
	"sshmenu/cmd/menu"
)

func main() {
	// No arguments means the interactive menu; anything else goes through
	// the CLI command tree.
	if len(os.Args) <= 1 {
		menu.RunMenu()
	} else {
		cli.RunCLI()
	}
}
