package project

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kaywahmatch/create-project/internal/defs"
)

// DirectoryState classifies a target path.
type DirectoryState int

const (
	// StateAbsent means nothing exists at the path.
	StateAbsent DirectoryState = iota
	// StateEmpty means the path is a directory without entries.
	StateEmpty
	// StateIgnorableOnly means the directory holds only allow-listed entries.
	StateIgnorableOnly
	// StateHasContent means the directory holds at least one other entry.
	StateHasContent
)

// String returns a human-readable state name.
func (s DirectoryState) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateEmpty:
		return "empty"
	case StateIgnorableOnly:
		return "ignorable-only"
	case StateHasContent:
		return "has-content"
	default:
		return "unknown"
	}
}

// Classify inspects path without modifying it.
func Classify(path string) (DirectoryState, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return StateAbsent, nil
	}
	if err != nil {
		return StateAbsent, &IOError{Op: "stat", Path: path, Err: err}
	}
	if !info.IsDir() {
		return StateHasContent, &IOError{Op: "stat", Path: path, Err: ErrNotDirectory}
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return StateAbsent, &IOError{Op: "read", Path: path, Err: err}
	}
	if len(entries) == 0 {
		return StateEmpty, nil
	}
	for _, e := range entries {
		if !defs.IsIgnorable(e.Name()) {
			return StateHasContent, nil
		}
	}
	return StateIgnorableOnly, nil
}

// CanSkipEmptying reports whether path can be used without asking to remove
// existing files: it does not exist, or holds only ignorable entries.
// Inspection failures count as "cannot skip".
func CanSkipEmptying(path string) bool {
	state, err := Classify(path)
	if err != nil {
		return false
	}
	return state != StateHasContent
}

// EmptyDir removes every entry of dir that is not on the ignorable
// allow-list, recursively. A missing dir is a no-op. On failure the
// directory may be partially emptied.
func EmptyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &IOError{Op: "read", Path: dir, Err: err}
	}

	for _, e := range entries {
		if defs.IsIgnorable(e.Name()) {
			continue
		}
		p := filepath.Join(dir, e.Name())
		if err := os.RemoveAll(p); err != nil {
			return &IOError{Op: "remove", Path: p, Err: err}
		}
	}
	return nil
}

// PrepareAction records what Prepare did to the target directory.
type PrepareAction int

const (
	// ActionCreated means the directory did not exist and was created.
	ActionCreated PrepareAction = iota
	// ActionEmptied means existing content was removed.
	ActionEmptied
	// ActionReused means the directory was left untouched.
	ActionReused
)

// String returns a human-readable action name.
func (a PrepareAction) String() string {
	switch a {
	case ActionCreated:
		return "created"
	case ActionEmptied:
		return "emptied"
	default:
		return "reused"
	}
}

// Prepare makes root ready for materialization. An absent root is created.
// An existing root is emptied only when overwrite is set and it holds
// non-ignorable content.
func Prepare(root string, overwrite bool) (PrepareAction, error) {
	state, err := Classify(root)
	if err != nil {
		return ActionReused, err
	}

	switch {
	case state == StateAbsent:
		if err := os.MkdirAll(root, defs.DirPerm); err != nil {
			return ActionCreated, &IOError{Op: "mkdir", Path: root, Err: err}
		}
		return ActionCreated, nil
	case overwrite && state == StateHasContent:
		if err := EmptyDir(root); err != nil {
			return ActionEmptied, err
		}
		return ActionEmptied, nil
	default:
		return ActionReused, nil
	}
}
