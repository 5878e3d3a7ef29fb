package ui

import (
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// HeadlessManager decides whether the UI runs without a terminal.
type HeadlessManager struct {
	forced *bool
	in     *os.File
	out    *os.File
}

// NewHeadlessManager creates a HeadlessManager that inspects os.Stdin
// and os.Stdout.
func NewHeadlessManager() *HeadlessManager {
	return &HeadlessManager{in: os.Stdin, out: os.Stdout}
}

// IsHeadless returns true when prompts cannot be shown. ForceHeadless
// overrides TTY detection. Otherwise, it checks whether stdin is
// connected to a terminal.
func (h *HeadlessManager) IsHeadless() bool {
	if h.forced != nil {
		return *h.forced
	}
	return !isTerminal(h.in)
}

// IsTerminalOutput reports whether stdout is a terminal. A forced
// headless mode reports false.
func (h *HeadlessManager) IsTerminalOutput() bool {
	if h.forced != nil {
		return !*h.forced
	}
	return isTerminal(h.out)
}

// ForceHeadless overrides TTY detection. Pass true to force headless mode,
// or false to force interactive mode regardless of TTY state.
func (h *HeadlessManager) ForceHeadless(force bool) {
	h.forced = &force
}

// ClearForce removes any forced override, reverting to automatic TTY detection.
func (h *HeadlessManager) ClearForce() {
	h.forced = nil
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// OutputWidth returns the column count of stdout, or fallback when it is
// not a terminal or its size is unknown.
func (h *HeadlessManager) OutputWidth(fallback int) int {
	if h.out == nil || !h.IsTerminalOutput() {
		return fallback
	}
	w, _, err := term.GetSize(int(h.out.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
