package ui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// DefaultMarkdownWidth is the word-wrap width used by RenderMarkdown.
const DefaultMarkdownWidth = 80

// RenderMarkdown renders md for the terminal. With noColor the output
// uses the plain "notty" style.
func RenderMarkdown(md []byte, width int, noColor bool) (string, error) {
	if width <= 0 {
		width = DefaultMarkdownWidth
	}

	style := glamour.WithAutoStyle()
	if noColor {
		style = glamour.WithStandardStyle("notty")
	}

	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := r.RenderBytes(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return string(out), nil
}
