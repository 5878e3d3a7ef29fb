package wizard

import (
	"context"
	"fmt"
)

// HeadlessPrompter answers every prompt with its default value. It is used
// when stdin is not a terminal. Since it cannot re-prompt, a default that
// fails validation is returned as an *InvalidAnswerError.
type HeadlessPrompter struct {
	// Overrides replaces defaults by question name.
	Overrides map[string]any
}

// NewHeadlessPrompter creates a HeadlessPrompter.
func NewHeadlessPrompter() *HeadlessPrompter {
	return &HeadlessPrompter{}
}

// Ask implements Prompter.
func (h *HeadlessPrompter) Ask(ctx context.Context, p Prompt) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value := p.Default
	if v, ok := h.Overrides[p.Name]; ok {
		value = v
	}

	switch p.Kind {
	case KindText, KindSelect:
		s, _ := value.(string)
		if p.Validate != nil {
			if err := p.Validate(s); err != nil {
				return nil, &InvalidAnswerError{Question: p.Name, Err: err}
			}
		}
		return s, nil
	case KindConfirm, KindToggle:
		b, _ := value.(bool)
		return b, nil
	}
	return nil, fmt.Errorf("%w: cannot prompt for kind %s", ErrAnswerType, p.Kind)
}
