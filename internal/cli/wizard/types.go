// Package wizard runs an ordered list of questions against a prompt widget.
// Each question may be skipped by a predicate evaluated just before it would
// be asked, and internal checkpoints may stop the sequence with a
// cancellation.
package wizard

import (
	"context"
	"errors"
	"fmt"
)

// Kind represents the type of widget a question needs.
type Kind int

const (
	// KindText is a free-text input.
	KindText Kind = iota
	// KindConfirm is a yes/no question.
	KindConfirm
	// KindToggle is a yes/no switch with custom labels.
	KindToggle
	// KindSelect is a single-choice selection.
	KindSelect
	// KindCheckpoint is never shown; it only runs Check against prior answers.
	KindCheckpoint
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindConfirm:
		return "confirm"
	case KindToggle:
		return "toggle"
	case KindSelect:
		return "select"
	case KindCheckpoint:
		return "checkpoint"
	default:
		return "unknown"
	}
}

// Option represents a selectable option.
type Option struct {
	Label string // Display label
	Value string // Actual value stored
	Desc  string // Optional description
}

// Question defines a single entry of a prompt sequence.
type Question struct {
	Name        string
	Kind        Kind
	Message     func(Answers) string
	Description string
	Options     []Option
	Active      string // toggle label for true
	Inactive    string // toggle label for false

	// Default computes the initial value (string or bool) from prior answers.
	Default func(Answers) any

	// ShouldAsk decides, right before asking, whether the question is shown.
	// A nil ShouldAsk always asks. Skipped questions leave no answer.
	ShouldAsk func(Answers) bool

	// Validate checks text answers. The widget re-prompts on failure.
	Validate func(string) error

	// Check runs for KindCheckpoint questions and stops the sequence on error.
	Check func(Answers) error
}

// Prompt is a question with its dynamic parts evaluated, as handed to a widget.
type Prompt struct {
	Name        string
	Kind        Kind
	Message     string
	Description string
	Options     []Option
	Active      string
	Inactive    string
	Default     any
	Validate    func(string) error
}

// DefaultString returns the default as a string ("" when unset).
func (p Prompt) DefaultString() string {
	s, _ := p.Default.(string)
	return s
}

// DefaultBool returns the default as a bool (false when unset).
func (p Prompt) DefaultBool() bool {
	b, _ := p.Default.(bool)
	return b
}

// Prompter is the prompt widget. Ask returns a string for text and select
// prompts and a bool for confirm and toggle prompts. An explicit abort by the
// user is reported as ErrCancelled.
type Prompter interface {
	Ask(ctx context.Context, p Prompt) (any, error)
}

// PrompterFunc adapts a function to the Prompter interface.
type PrompterFunc func(ctx context.Context, p Prompt) (any, error)

// Ask calls f.
func (f PrompterFunc) Ask(ctx context.Context, p Prompt) (any, error) {
	return f(ctx, p)
}

// Answers maps question names to the values produced so far.
type Answers map[string]any

// Has reports whether name was answered.
func (a Answers) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// String returns the string answer for name.
func (a Answers) String(name string) (string, bool) {
	s, ok := a[name].(string)
	return s, ok
}

// Bool returns the boolean answer for name.
func (a Answers) Bool(name string) (bool, bool) {
	b, ok := a[name].(bool)
	return b, ok
}

// Error definitions for the wizard package.
var (
	// ErrCancelled is returned when the user aborts or declines to proceed.
	ErrCancelled = errors.New("operation cancelled")
	// ErrNoQuestions is returned when no questions are provided.
	ErrNoQuestions = errors.New("no questions provided")
	// ErrAnswerType is returned when a widget answers with the wrong type.
	ErrAnswerType = errors.New("unexpected answer type")
)

// CancelError carries the user-facing reason of a cancellation.
type CancelError struct {
	Reason string
}

// Cancel returns a cancellation with the given reason.
func Cancel(reason string) error {
	return &CancelError{Reason: reason}
}

// Error implements the error interface.
func (e *CancelError) Error() string {
	if e.Reason == "" {
		return ErrCancelled.Error()
	}
	return e.Reason
}

// Is makes errors.Is(err, ErrCancelled) hold.
func (e *CancelError) Is(target error) bool {
	return target == ErrCancelled
}

// InvalidAnswerError reports an answer rejected by a question's validator
// when the widget cannot re-prompt.
type InvalidAnswerError struct {
	Question string
	Err      error
}

// Error implements the error interface.
func (e *InvalidAnswerError) Error() string {
	return fmt.Sprintf("%s: %v", e.Question, e.Err)
}

// Unwrap returns the validator error.
func (e *InvalidAnswerError) Unwrap() error {
	return e.Err
}
