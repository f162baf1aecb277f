// SPDX-License-Identifier: Apache-2.0

// Package notify provides one-shot desktop notifications for errors that
// must reach the user without a terminal attached (failed refresh, missing
// terminal emulator, launch failures). Uses beeep: D-Bus/notify-send on
// Linux, AppleScript on macOS, WinRT on Windows.
package notify

import (
	"github.com/gen2brain/beeep"

	"sshmenu/internal/logger"
)

const title = "sshmenu"

// notifyFn is swapped out in tests.
var notifyFn = beeep.Notify

// SetNotifier replaces the notification backend. Intended for tests.
func SetNotifier(fn func(title, message string, icon any) error) {
	notifyFn = fn
}

// ResetNotifier restores the beeep backend.
func ResetNotifier() {
	notifyFn = beeep.Notify
}

// Send shows a desktop notification. Failures are logged, never fatal: a
// broken notification daemon must not take the menu down with it.
func Send(message string) {
	if err := notifyFn(title, message, ""); err != nil {
		logger.Warn("failed to send notification", "error", err, "message", message)
	}
}

// Error shows a notification for a user-actionable error.
func Error(context string, err error) {
	Send(context + ": " + err.Error())
}
