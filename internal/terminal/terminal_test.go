// SPDX-License-Identifier: Apache-2.0

package terminal

import (
	"errors"
	"testing"
)

func fakeLookPath(t *testing.T, installed ...string) {
	t.Helper()
	prev := lookPath
	set := make(map[string]struct{}, len(installed))
	for _, bin := range installed {
		set[bin] = struct{}{}
	}
	lookPath = func(bin string) (string, error) {
		if _, ok := set[bin]; ok {
			return "/usr/bin/" + bin, nil
		}
		return "", errors.New("not found")
	}
	t.Cleanup(func() { lookPath = prev })
}

func testCandidates() []Handle {
	return []Handle{
		{Name: "alpha-term", bin: "alpha-term", args: []string{"-e", "sh", "-c", "{}; exec bash"}},
		{Name: "beta-term", bin: "beta-term", args: []string{"--", "{}"}},
	}
}

func TestResolve_FirstAvailableCandidateWins(t *testing.T) {
	t.Setenv("TERMINAL", "")
	fakeLookPath(t, "beta-term")

	h, err := resolve("", testCandidates())
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if h.Name != "beta-term" {
		t.Fatalf("expected beta-term, got %q", h.Name)
	}
}

func TestResolve_PrefersEarlierCandidate(t *testing.T) {
	t.Setenv("TERMINAL", "")
	fakeLookPath(t, "alpha-term", "beta-term")

	h, err := resolve("", testCandidates())
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if h.Name != "alpha-term" {
		t.Fatalf("candidate order not honored, got %q", h.Name)
	}
}

func TestResolve_NoCandidateAvailable(t *testing.T) {
	t.Setenv("TERMINAL", "")
	fakeLookPath(t)

	_, err := resolve("", testCandidates())
	if !errors.Is(err, ErrNoTerminal) {
		t.Fatalf("expected ErrNoTerminal, got: %v", err)
	}
}

func TestResolve_OverrideUsedExclusively(t *testing.T) {
	t.Setenv("TERMINAL", "")
	fakeLookPath(t, "beta-term")

	h, err := resolve("beta-term", testCandidates())
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if h.Name != "beta-term" {
		t.Fatalf("expected override choice, got %q", h.Name)
	}
}

func TestResolve_MissingOverrideFailsWithoutFallback(t *testing.T) {
	t.Setenv("TERMINAL", "")
	// alpha-term is available, but the user asked for beta-term: the
	// explicit choice must fail loudly rather than silently fall back.
	fakeLookPath(t, "alpha-term")

	_, err := resolve("beta-term", testCandidates())
	if !errors.Is(err, ErrNoTerminal) {
		t.Fatalf("expected ErrNoTerminal for missing override, got: %v", err)
	}
}

func TestResolve_UnknownOverrideProbedOnPath(t *testing.T) {
	t.Setenv("TERMINAL", "")
	fakeLookPath(t, "exotic-term")

	h, err := resolve("exotic-term", testCandidates())
	if err != nil {
		t.Fatalf("resolve failed for unknown-but-installed override: %v", err)
	}
	if h.Program() != "exotic-term" {
		t.Fatalf("expected exotic-term handle, got %q", h.Program())
	}
}

func TestResolve_OverrideMatchIsCaseInsensitive(t *testing.T) {
	t.Setenv("TERMINAL", "")
	fakeLookPath(t, "beta-term")

	h, err := resolve("Beta-Term", testCandidates())
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if h.bin != "beta-term" {
		t.Fatalf("expected candidate form for case-insensitive match, got %+v", h)
	}
}

func TestExpandArgs(t *testing.T) {
	args := expandArgs([]string{"-e", "sh", "-c", "{}; exec bash"}, "ssh web")
	want := "ssh web; exec bash"
	if args[3] != want {
		t.Fatalf("placeholder not expanded: %v", args)
	}
	if args[0] != "-e" || args[1] != "sh" {
		t.Fatalf("unrelated args changed: %v", args)
	}
}
