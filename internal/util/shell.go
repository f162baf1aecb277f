// SPDX-License-Identifier: Apache-2.0

package util

import "strings"

// shellSafe are characters that never need quoting in a POSIX shell word.
const shellSafe = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789._-+:@%/=,"

// ShellQuote quotes an argument for safe interpolation into a POSIX shell
// command line. Plain words (the common case for SSH aliases) pass through
// unquoted; anything else is single-quoted with internal quotes escaped.
func ShellQuote(arg string) string {
	if arg == "" {
		return "''"
	}
	safe := true
	for _, r := range arg {
		if !strings.ContainsRune(shellSafe, r) {
			safe = false
			break
		}
	}
	if safe {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}
