// SPDX-License-Identifier: Apache-2.0

package notify

import (
	"errors"
	"testing"
)

func TestSend_UsesAppTitle(t *testing.T) {
	var gotTitle, gotMessage string
	SetNotifier(func(title, message string, icon any) error {
		gotTitle = title
		gotMessage = message
		return nil
	})
	t.Cleanup(ResetNotifier)

	Send("SSH config error")
	if gotTitle != "sshmenu" {
		t.Fatalf("unexpected title %q", gotTitle)
	}
	if gotMessage != "SSH config error" {
		t.Fatalf("unexpected message %q", gotMessage)
	}
}

func TestSend_NotifierFailureDoesNotPanic(t *testing.T) {
	SetNotifier(func(string, string, any) error {
		return errors.New("no notification daemon")
	})
	t.Cleanup(ResetNotifier)

	Send("still fine")
}

func TestError_IncludesContext(t *testing.T) {
	var got string
	SetNotifier(func(_, message string, _ any) error {
		got = message
		return nil
	})
	t.Cleanup(ResetNotifier)

	Error("Cannot open terminal", errors.New("nothing installed"))
	if got != "Cannot open terminal: nothing installed" {
		t.Fatalf("unexpected message %q", got)
	}
}
