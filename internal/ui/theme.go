// Package ui provides terminal output components: headless detection,
// spinners and progress bars driven by materialization events, and
// markdown rendering.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kaywahmatch/create-project/internal/cli/wizard"
)

// Colors holds the hex colors used by the UI components.
type Colors struct {
	Primary   string
	Secondary string
	Success   string
	Error     string
	Muted     string
}

// Theme controls styling of UI components.
type Theme struct {
	Colors  Colors
	NoColor bool
}

// NewTheme returns the default theme. When noColor is set, components
// render plain text and headless variants are used.
func NewTheme(noColor bool) *Theme {
	return &Theme{
		Colors: Colors{
			Primary:   wizard.ColorPrimary,
			Secondary: wizard.ColorSecondary,
			Success:   wizard.ColorSuccess,
			Error:     wizard.ColorError,
			Muted:     wizard.ColorMuted,
		},
		NoColor: noColor,
	}
}

// Style returns a foreground style for color, or an unstyled one when
// colors are disabled.
func (t *Theme) Style(color string) lipgloss.Style {
	if t.NoColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
