// SPDX-License-Identifier: Apache-2.0

// Package menu builds the presentation-agnostic menu tree and computes
// minimal patch sequences between consecutive builds. The presentation host
// applies patches instead of rebuilding, so render cost follows the size of
// the change, not the host count.
package menu

import (
	"sshmenu/internal/settings"
	"sshmenu/internal/sshconfig"
)

// Kind distinguishes the node types a presentation host can render.
type Kind int

const (
	// KindHost is a connectable host item.
	KindHost Kind = iota
	// KindAction is an executable item (custom action or built-in).
	KindAction
	// KindGroup is a submenu.
	KindGroup
	// KindSeparator is a visual divider.
	KindSeparator
)

// Node is one item in the menu tree. IDs are derived from content (alias or
// group path), never from list position, so an item keeps its identity when
// neighbors come and go.
type Node struct {
	ID       string
	Label    string
	Kind     Kind
	Children []Node
}

// Well-known IDs for the fixed trailing block and the tree root.
const (
	RootID      = "root"
	ConfigureID = "configure"
	ReloadID    = "reload"
	QuitID      = "quit"
)

// ID prefixes for content-derived items.
const (
	hostIDPrefix   = "host:"
	actionIDPrefix = "action:"
	groupIDPrefix  = "group:"
)

// HostID returns the menu id for a registry alias.
func HostID(alias string) string { return hostIDPrefix + alias }

// HostAlias extracts the alias from a host item id. ok is false for ids of
// other kinds.
func HostAlias(id string) (string, bool) {
	if len(id) > len(hostIDPrefix) && id[:len(hostIDPrefix)] == hostIDPrefix {
		return id[len(hostIDPrefix):], true
	}
	return "", false
}

// ActionID returns the menu id for a custom action at the given group path.
func ActionID(path []string, name string) string {
	return actionIDPrefix + joinPath(append(path, name))
}

// IsActionID reports whether id names a custom action.
func IsActionID(id string) bool {
	return len(id) > len(actionIDPrefix) && id[:len(actionIDPrefix)] == actionIDPrefix
}

func joinPath(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "/"
		}
		out += p
	}
	return out
}

// Build constructs the full menu tree for a registry snapshot and settings.
// It is a pure function: identical inputs produce identical trees, ids
// included.
func Build(reg []sshconfig.HostEntry, s settings.Settings) Node {
	root := Node{ID: RootID, Kind: KindGroup}

	for _, e := range reg {
		root.Children = append(root.Children, Node{
			ID:    HostID(e.Alias),
			Label: e.Alias,
			Kind:  KindHost,
		})
	}

	if len(s.Actions) > 0 {
		if len(root.Children) > 0 {
			root.Children = append(root.Children, Node{ID: "sep:actions", Kind: KindSeparator})
		}
		root.Children = append(root.Children, buildEntries(nil, s.Actions)...)
	}

	if len(root.Children) > 0 {
		root.Children = append(root.Children, Node{ID: "sep:system", Kind: KindSeparator})
	}
	root.Children = append(root.Children,
		Node{ID: ConfigureID, Label: "Configure", Kind: KindAction},
		Node{ID: ReloadID, Label: "Reload", Kind: KindAction},
		Node{ID: QuitID, Label: "Quit", Kind: KindAction},
	)

	return root
}

func buildEntries(path []string, entries []settings.Entry) []Node {
	nodes := make([]Node, 0, len(entries))
	for _, entry := range entries {
		switch {
		case entry.Action != nil:
			nodes = append(nodes, Node{
				ID:    ActionID(path, entry.Action.Name),
				Label: entry.Action.Name,
				Kind:  KindAction,
			})
		case entry.Group != nil:
			groupPath := append(append([]string{}, path...), entry.Group.Name)
			nodes = append(nodes, Node{
				ID:       groupIDPrefix + joinPath(groupPath),
				Label:    entry.Group.Name,
				Kind:     KindGroup,
				Children: buildEntries(groupPath, entry.Group.Entries),
			})
		}
	}
	return nodes
}

// FindAction returns the command for a custom action id, searching the
// settings entries the menu was built from.
func FindAction(s settings.Settings, id string) (string, bool) {
	return findAction(nil, s.Actions, id)
}

func findAction(path []string, entries []settings.Entry, id string) (string, bool) {
	for _, entry := range entries {
		switch {
		case entry.Action != nil:
			if ActionID(path, entry.Action.Name) == id {
				return entry.Action.Cmd, true
			}
		case entry.Group != nil:
			groupPath := append(append([]string{}, path...), entry.Group.Name)
			if cmd, ok := findAction(groupPath, entry.Group.Entries, id); ok {
				return cmd, true
			}
		}
	}
	return "", false
}
