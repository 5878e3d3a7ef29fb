package ui

import (
	"sync"

	"github.com/kaywahmatch/create-project/internal/template"
)

// Reporter turns materialization events into a spinner for remote
// fetches and a progress bar for builtin file writes.
type Reporter struct {
	progress Progress
	title    string

	mu      sync.Mutex
	spinner Spinner
	bar     ProgressBar
}

// NewReporter creates a Reporter. title labels the indicators.
func NewReporter(p Progress, title string) *Reporter {
	return &Reporter{progress: p, title: title}
}

// Observe implements template.Observer.
func (r *Reporter) Observe(e template.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch e.Kind {
	case template.EventInfo:
		if r.bar != nil {
			return
		}
		if r.spinner == nil {
			r.spinner = r.progress.Spinner(e.Message)
			return
		}
		r.spinner.SetTitle(e.Message)
	case template.EventFile:
		r.stopSpinner()
		if r.bar == nil {
			r.bar = r.progress.Start(r.title, e.Total)
		}
		r.bar.SetTitle(e.Path)
		r.bar.Increment(1)
	case template.EventDone:
		r.finish()
	}
}

// Close stops any running indicator. It is safe to call after EventDone.
func (r *Reporter) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finish()
}

func (r *Reporter) finish() {
	r.stopSpinner()
	if r.bar != nil {
		r.bar.Done()
		r.bar = nil
	}
}

func (r *Reporter) stopSpinner() {
	if r.spinner != nil {
		r.spinner.Stop()
		r.spinner = nil
	}
}
