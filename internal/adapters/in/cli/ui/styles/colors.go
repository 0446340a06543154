// Package styles provides the terminal palette and composed styles used by
// the toolshed CLI.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	Green500 = lipgloss.Color("#00cc6a")
	Cyan500  = lipgloss.Color("#00a0cc")
	Amber400 = lipgloss.Color("#fbbf24")
	Red500   = lipgloss.Color("#ff4444")

	Neutral200 = lipgloss.Color("#e5e5e5")
	Neutral500 = lipgloss.Color("#737373")
	Neutral700 = lipgloss.Color("#404040")
)

// Semantic aliases.
var (
	ColorPrimary   = Green500
	ColorSecondary = Cyan500
	ColorSuccess   = Green500
	ColorWarning   = Amber400
	ColorError     = Red500
	ColorInfo      = Cyan500

	ColorText      = Neutral200
	ColorTextMuted = Neutral500
	ColorBorder    = Neutral700
)
