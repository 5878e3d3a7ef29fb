package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Brand colors used by the prompt theme.
const (
	ColorPrimary   = "#42B883"
	ColorSecondary = "#35495E"
	ColorSuccess   = "#10B981"
	ColorError     = "#EF4444"
	ColorText      = "#E5E7EB"
	ColorMuted     = "#6B7280"
	ColorBorder    = "#374151"
)

// HuhPrompter asks prompts in the terminal with huh forms.
// Each prompt runs as its own form so that later prompts can depend on
// earlier answers.
type HuhPrompter struct {
	theme      *huh.Theme
	accessible bool
}

// NewHuhPrompter creates a terminal prompter. Accessible mode replaces the
// TUI with plain line-based prompts.
func NewHuhPrompter(accessible bool) *HuhPrompter {
	return &HuhPrompter{theme: newWizardTheme(), accessible: accessible}
}

// Ask implements Prompter.
func (h *HuhPrompter) Ask(ctx context.Context, p Prompt) (any, error) {
	switch p.Kind {
	case KindText:
		value := p.DefaultString()
		field := huh.NewInput().
			Title(p.Message).
			Description(p.Description).
			Value(&value)
		if def := p.DefaultString(); def != "" {
			field = field.Placeholder(def)
		}
		if p.Validate != nil {
			def := p.DefaultString()
			validate := p.Validate
			field = field.Validate(func(s string) error {
				if s == "" {
					s = def
				}
				return validate(s)
			})
		}
		if err := h.run(ctx, field); err != nil {
			return nil, err
		}
		return value, nil

	case KindConfirm, KindToggle:
		value := p.DefaultBool()
		field := huh.NewConfirm().
			Title(p.Message).
			Description(p.Description).
			Value(&value)
		if p.Active != "" {
			field = field.Affirmative(p.Active)
		}
		if p.Inactive != "" {
			field = field.Negative(p.Inactive)
		}
		if err := h.run(ctx, field); err != nil {
			return nil, err
		}
		return value, nil

	case KindSelect:
		value := p.DefaultString()
		opts := make([]huh.Option[string], len(p.Options))
		for i, opt := range p.Options {
			key := opt.Label
			if opt.Desc != "" {
				key = opt.Label + " - " + opt.Desc
			}
			opts[i] = huh.NewOption(key, opt.Value)
		}
		field := huh.NewSelect[string]().
			Title(p.Message).
			Description(p.Description).
			Options(opts...).
			Value(&value)
		if err := h.run(ctx, field); err != nil {
			return nil, err
		}
		return value, nil
	}

	return nil, fmt.Errorf("%w: cannot prompt for kind %s", ErrAnswerType, p.Kind)
}

// run shows a single-field form and maps an abort to a cancellation.
func (h *HuhPrompter) run(ctx context.Context, field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(h.theme).
		WithAccessible(h.accessible)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return Cancel("✖ Operation cancelled")
		}
		return fmt.Errorf("wizard error: %w", err)
	}
	return nil
}

// newWizardTheme creates a huh.Theme with the create-project branding.
func newWizardTheme() *huh.Theme {
	t := huh.ThemeBase()

	primary := lipgloss.AdaptiveColor{Light: "#2F8F63", Dark: ColorPrimary}
	secondary := lipgloss.AdaptiveColor{Light: "#35495E", Dark: ColorSecondary}
	green := lipgloss.AdaptiveColor{Light: "#059669", Dark: ColorSuccess}
	red := lipgloss.AdaptiveColor{Light: "#DC2626", Dark: ColorError}
	text := lipgloss.AdaptiveColor{Light: "#111827", Dark: ColorText}
	muted := lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: ColorMuted}
	border := lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: ColorBorder}

	t.Focused.Base = t.Focused.Base.BorderForeground(border)
	t.Focused.Card = t.Focused.Base
	t.Focused.Title = t.Focused.Title.Foreground(primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(red)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(red)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(primary).SetString("▸ ")
	t.Focused.Option = t.Focused.Option.Foreground(text)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(green)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(primary)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(muted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(secondary)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}).
		Background(primary)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(text).
		Background(lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"})

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Card = t.Blurred.Base

	return t
}
