// SPDX-License-Identifier: Apache-2.0

package menu

import (
	"fmt"
	"os"

	"sshmenu/internal/logger"
	"sshmenu/internal/ui"
)

// RunMenu initializes logging and runs the interactive host menu.
func RunMenu() {
	logger.Init(true)
	if err := ui.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
