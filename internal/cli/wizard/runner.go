package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Runner executes question sequences against a Prompter.
type Runner struct {
	prompter Prompter
	logger   *slog.Logger
}

// NewRunner creates a Runner. A nil logger discards log output.
func NewRunner(p Prompter, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{prompter: p, logger: logger}
}

// Run asks the questions in order. Each question's ShouldAsk predicate sees
// the answers collected so far. On cancellation Run returns the answers
// gathered up to that point together with an error matching ErrCancelled.
func (r *Runner) Run(ctx context.Context, questions []Question) (Answers, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	answers := make(Answers, len(questions))
	for i := range questions {
		q := &questions[i]

		if err := ctx.Err(); err != nil {
			return answers, err
		}

		if q.Kind == KindCheckpoint {
			if q.Check != nil {
				if err := q.Check(answers); err != nil {
					r.logger.Debug("checkpoint stopped the sequence", "question", q.Name, "error", err)
					return answers, err
				}
			}
			continue
		}

		if q.ShouldAsk != nil && !q.ShouldAsk(answers) {
			r.logger.Debug("question skipped", "question", q.Name)
			continue
		}

		value, err := r.ask(ctx, q, answers)
		if err != nil {
			return answers, err
		}
		answers[q.Name] = value
		r.logger.Debug("question answered", "question", q.Name, "kind", q.Kind)
	}

	return answers, nil
}

// ask prompts for a single question and checks the answer type.
func (r *Runner) ask(ctx context.Context, q *Question, answers Answers) (any, error) {
	p := Evaluate(q, answers)

	value, err := r.prompter.Ask(ctx, p)
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			return nil, err
		}
		return nil, fmt.Errorf("prompt %q: %w", q.Name, err)
	}

	switch q.Kind {
	case KindText, KindSelect:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %q wants string, got %T", ErrAnswerType, q.Name, value)
		}
		if q.Kind == KindText {
			s = strings.TrimSpace(s)
			if s == "" {
				s = p.DefaultString()
			}
		}
		if q.Validate != nil {
			if err := q.Validate(s); err != nil {
				return nil, &InvalidAnswerError{Question: q.Name, Err: err}
			}
		}
		return s, nil
	case KindConfirm, KindToggle:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: %q wants bool, got %T", ErrAnswerType, q.Name, value)
		}
		return b, nil
	default:
		return value, nil
	}
}

// Evaluate resolves the dynamic parts of q against the answers so far.
func Evaluate(q *Question, answers Answers) Prompt {
	p := Prompt{
		Name:        q.Name,
		Kind:        q.Kind,
		Description: q.Description,
		Options:     q.Options,
		Active:      q.Active,
		Inactive:    q.Inactive,
		Validate:    q.Validate,
	}
	if q.Message != nil {
		p.Message = q.Message(answers)
	}
	if q.Default != nil {
		p.Default = q.Default(answers)
	}
	return p
}

// Static returns a Message func that always yields s.
func Static(s string) func(Answers) string {
	return func(Answers) string { return s }
}

// Value returns a Default func that always yields v.
func Value(v any) func(Answers) any {
	return func(Answers) any { return v }
}
