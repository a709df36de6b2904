package tui

import "github.com/charmbracelet/lipgloss"

// Poimandres color palette
// Reference: https://github.com/drcmda/poimandres-theme
var (
	colorFg       = lipgloss.Color("#a6accd")
	colorFgMuted  = lipgloss.Color("#767c9d")
	colorFgSubtle = lipgloss.Color("#506477")

	colorTeal   = lipgloss.Color("#5DE4c7")
	colorPink   = lipgloss.Color("#f087bd")
	colorYellow = lipgloss.Color("#fffac2")
)

// Gateway state symbols
const (
	symbolOnline    = "●"
	symbolOffline   = "✗"
	symbolStarting  = "◐"
	symbolDeploying = "◌"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(colorTeal).
			Bold(true)

	OnlineStyle = lipgloss.NewStyle().
			Foreground(colorTeal).
			Bold(true)

	PendingStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	OfflineStyle = lipgloss.NewStyle().
			Foreground(colorPink).
			Bold(true)

	DetailStyle = lipgloss.NewStyle().
			Foreground(colorFgMuted)

	FooterStyle = lipgloss.NewStyle().
			Foreground(colorFgSubtle)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(colorTeal)

	BodyStyle = lipgloss.NewStyle().
			Foreground(colorFg)
)
