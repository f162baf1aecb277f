// SPDX-License-Identifier: Apache-2.0

package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	tooltipStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	hostStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	actionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	groupStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Italic(true)
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)
