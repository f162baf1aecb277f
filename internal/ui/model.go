// SPDX-License-Identifier: Apache-2.0

// Package ui renders the host menu as an interactive terminal program.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"sshmenu/internal/controller"
	"sshmenu/internal/menu"
)

// host receives menu patches from the controller and keeps a shadow
// copy of the tree that the model flattens for display.
type host struct {
	tree    menu.Node
	tooltip string
	quit    bool
}

func newHost() *host {
	return &host{tree: menu.Node{ID: menu.RootID, Kind: menu.KindGroup}}
}

func (h *host) Render(patches []menu.Patch) {
	h.tree = menu.Apply(h.tree, patches)
}

func (h *host) SetTooltip(text string) {
	h.tooltip = text
}

// item is one visible row of the flattened menu tree.
type item struct {
	id         string
	label      string
	kind       menu.Kind
	depth      int
	selectable bool
}

type sourcesChangedMsg struct{}

type statusMsg string

type model struct {
	ctrl   *controller.Controller
	host   *host
	keys   KeyMap
	items  []item
	cursor int
	status string
}

func newModel(ctrl *controller.Controller, h *host) model {
	m := model{ctrl: ctrl, host: h, keys: DefaultKeyMap}
	m.rebuild()
	return m
}

// rebuild flattens the shadow tree into rows and keeps the cursor on a
// selectable entry.
func (m *model) rebuild() {
	m.items = m.items[:0]
	m.flatten(m.host.tree, 0)
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if len(m.items) > 0 && !m.items[m.cursor].selectable {
		m.moveCursor(1)
	}
}

func (m *model) flatten(n menu.Node, depth int) {
	for _, child := range n.Children {
		selectable := child.Kind == menu.KindHost || child.Kind == menu.KindAction
		m.items = append(m.items, item{
			id:         child.ID,
			label:      child.Label,
			kind:       child.Kind,
			depth:      depth,
			selectable: selectable,
		})
		if child.Kind == menu.KindGroup {
			m.flatten(child, depth+1)
		}
	}
}

// moveCursor steps in the given direction until it lands on a
// selectable row, leaving the cursor in place at either edge.
func (m *model) moveCursor(delta int) {
	if len(m.items) == 0 {
		return
	}
	i := m.cursor
	for {
		i += delta
		if i < 0 || i >= len(m.items) {
			return
		}
		if m.items[i].selectable {
			m.cursor = i
			return
		}
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1)
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1)
		case key.Matches(msg, m.keys.Reload):
			m.ctrl.Refresh()
			m.rebuild()
			m.status = "reloaded"
		case key.Matches(msg, m.keys.Select):
			if m.cursor < len(m.items) {
				it := m.items[m.cursor]
				m.ctrl.HandleSelect(it.id)
				m.rebuild()
				if m.host.quit {
					return m, tea.Quit
				}
				switch it.id {
				case menu.ReloadID:
					m.status = "reloaded"
				case menu.ConfigureID:
					m.status = "opening configuration"
				default:
					m.status = fmt.Sprintf("launched %s", it.label)
				}
			}
		}
	case sourcesChangedMsg:
		m.ctrl.Refresh()
		m.rebuild()
		m.status = "configuration changed, menu refreshed"
	case statusMsg:
		m.status = string(msg)
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("sshmenu"))
	if m.host.tooltip != "" {
		b.WriteString("  " + tooltipStyle.Render(m.host.tooltip))
	}
	b.WriteString("\n\n")

	for i, it := range m.items {
		indent := strings.Repeat("  ", it.depth)
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		var line string
		switch it.kind {
		case menu.KindSeparator:
			line = separatorStyle.Render(strings.Repeat("─", 24))
		case menu.KindGroup:
			line = groupStyle.Render(it.label)
		case menu.KindHost:
			line = hostStyle.Render(it.label)
		case menu.KindAction:
			line = actionStyle.Render(it.label)
		}
		b.WriteString(cursor + indent + line + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("↑/↓ move · enter select · r reload · q quit") + "\n")
	return b.String()
}
