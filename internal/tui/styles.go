// Package tui provides the interactive terminal UI for oasis.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary = lipgloss.Color("#7fa66b") // Leaf green - titles
	ColorAccent  = lipgloss.Color("#c0654a") // Terracotta - keys
	ColorMuted   = lipgloss.Color("#8a8574") // Earth gray - help text
	ColorText    = lipgloss.Color("#f5f2ea") // Paper
	ColorBorder  = lipgloss.Color("#a8b89a") // Sage border
)

// Help overlay styles
var (
	HelpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	HelpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorBorder).
				MarginTop(1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Width(12)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	HelpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2).
			Width(46)

	HelpFooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)
)

// Content area style
var ContentStyle = lipgloss.NewStyle().
	Padding(1, 2)
