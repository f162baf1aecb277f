// SPDX-License-Identifier: Apache-2.0

// Package settings loads the application settings document: host exclusions,
// host overrides, custom menu actions, and the terminal/editor choices. The
// file is comment-tolerant JSON so users can annotate their entries.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// Auto is the terminal/editor value meaning "detect one for me".
const Auto = "default"

// Settings is the parsed application settings document. All fields are
// optional; the zero value is a valid default. Unknown keys are ignored for
// forward compatibility.
type Settings struct {
	// Terminal forces a specific terminal program instead of auto-detection.
	Terminal string `json:"terminal"`

	// Editor is the program used by the Configure action.
	Editor string `json:"editor"`

	// Exclude lists SSH config aliases to hide from the menu.
	Exclude []string `json:"exclude"`

	// Hosts holds user-supplied host entries: overrides for aliases present
	// in the SSH config, or entirely new entries.
	Hosts []HostOverride `json:"hosts"`

	// Actions holds custom menu entries (commands and nested groups).
	Actions []Entry `json:"actions"`
}

// HostOverride is a user-supplied host entry. Pointer fields distinguish
// "not set" from an explicit empty value so overrides only touch the fields
// the user wrote down.
type HostOverride struct {
	Alias        string  `json:"alias"`
	HostName     *string `json:"hostname"`
	User         *string `json:"user"`
	Port         *int    `json:"port"`
	IdentityFile *string `json:"identity_file"`
	ProxyJump    *string `json:"proxy_jump"`
}

// Action is one executable custom menu item.
type Action struct {
	Name string `json:"name"`
	Cmd  string `json:"cmd"`
}

// Group is a named submenu of nested entries. It appears in JSON as
// {"GroupName": [entries...]}.
type Group struct {
	Name    string
	Entries []Entry
}

// Entry is either an Action or a Group; exactly one field is non-nil.
type Entry struct {
	Action *Action
	Group  *Group
}

// UnmarshalJSON decides between the two entry shapes: an object with "name"
// and "cmd" keys is an action, a single-key object with an array value is a
// group.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if _, hasName := raw["name"]; hasName {
		var a Action
		if err := json.Unmarshal(data, &a); err != nil {
			return err
		}
		if a.Name == "" || a.Cmd == "" {
			return fmt.Errorf("action entry needs both name and cmd")
		}
		e.Action = &a
		return nil
	}

	if len(raw) != 1 {
		return fmt.Errorf("group entry must have exactly one key (the group name)")
	}
	for name, body := range raw {
		var entries []Entry
		if err := json.Unmarshal(body, &entries); err != nil {
			return fmt.Errorf("group %q: %w", name, err)
		}
		e.Group = &Group{Name: name, Entries: entries}
	}
	return nil
}

// MarshalJSON writes the entry back in its source shape.
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.Action != nil {
		return json.Marshal(e.Action)
	}
	if e.Group != nil {
		return json.Marshal(map[string][]Entry{e.Group.Name: e.Group.Entries})
	}
	return []byte("null"), nil
}

// ConfigError reports a malformed settings document.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid settings file %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// DefaultPath returns the settings file location
// (~/.config/sshmenu/settings.json or the platform equivalent).
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "sshmenu", "settings.json"), nil
}

// Load reads the settings document at path. A missing file yields the zero
// Settings and no error; a present but malformed file fails with ConfigError.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Settings{}, nil
		}
		return Settings{}, &ConfigError{Path: path, Err: err}
	}

	var s Settings
	if err := json.Unmarshal(jsonc.ToJSON(data), &s); err != nil {
		return Settings{}, &ConfigError{Path: path, Err: err}
	}

	for _, h := range s.Hosts {
		if h.Alias == "" {
			return Settings{}, &ConfigError{Path: path, Err: fmt.Errorf("host override without alias")}
		}
		if h.Port != nil && (*h.Port < 1 || *h.Port > 65535) {
			return Settings{}, &ConfigError{Path: path, Err: fmt.Errorf("host %q: port %d out of range", h.Alias, *h.Port)}
		}
	}

	return s, nil
}

// TerminalOverride returns the forced terminal program, or "" when the user
// left detection on automatic.
func (s Settings) TerminalOverride() string {
	if s.Terminal == "" || s.Terminal == Auto {
		return ""
	}
	return s.Terminal
}

// ExcludeSet returns the exclusions as a set for O(1) membership checks.
func (s Settings) ExcludeSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.Exclude))
	for _, alias := range s.Exclude {
		set[alias] = struct{}{}
	}
	return set
}

const defaultDocument = `{
  // Terminal emulator for SSH sessions; "default" auto-detects one.
  "terminal": "default",

  // Editor used by the Configure menu action.
  "editor": "default",

  // SSH config aliases to hide from the menu.
  "exclude": [],

  // Extra hosts, or field overrides for hosts already in ~/.ssh/config.
  // {"alias": "spare", "hostname": "10.0.0.7", "user": "ops"}
  "hosts": [],

  // Custom menu entries: actions or nested groups.
  // {"name": "Top", "cmd": "ssh -t web top"}
  // {"Production": [{"name": "Primary DB", "cmd": "ssh db-1"}]}
  "actions": []
}
`

// EnsureExists writes a commented default settings document at path when no
// file is present yet.
func EnsureExists(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultDocument), 0640); err != nil {
		return fmt.Errorf("failed to write default settings: %w", err)
	}
	return nil
}
