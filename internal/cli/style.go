package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kaywahmatch/create-project/internal/cli/wizard"
)

// CLI output styles.
var (
	cliSuccess = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: wizard.ColorSuccess})
	cliError   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: wizard.ColorError})
	cliMuted   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: wizard.ColorMuted})
	cliPrimary = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#2F8F63", Dark: wizard.ColorPrimary})
	cliBorder  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: wizard.ColorBorder})
)

func symSuccess() string { return cliSuccess.Render("✓") }

// renderBanner returns the tool title line shown before the prompts.
func renderBanner(version string) string {
	title := cliPrimary.Bold(true).Render("Vue.js - The Progressive JavaScript Framework")
	return title + " " + cliMuted.Render(version)
}

// cardStyle returns a lipgloss style for a rounded-border card.
func cardStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cliBorder.GetForeground()).
		Padding(0, 2)
}

// renderSuccessCard renders a success message inside a rounded border card.
func renderSuccessCard(title string, details ...string) string {
	var body strings.Builder
	body.WriteString(symSuccess() + " " + title)
	if len(details) > 0 {
		body.WriteString("\n\n")
		body.WriteString(strings.Join(details, "\n"))
	}
	return cardStyle().Render(body.String())
}

// nextSteps returns the commands a user runs after scaffolding. The cd
// line is omitted when the project was created in the working directory.
func nextSteps(cdPath string) []string {
	var steps []string
	if cdPath != "" && cdPath != "." {
		if strings.ContainsAny(cdPath, " \t") {
			cdPath = fmt.Sprintf("%q", cdPath)
		}
		steps = append(steps, "cd "+cdPath)
	}
	steps = append(steps, "npm install", "npm run dev")

	for i, s := range steps {
		steps[i] = "  " + cliPrimary.Render(s)
	}
	return steps
}
