// Package project implements the filesystem side of scaffolding a new
// project: package-name validation and normalization, classification of an
// existing target directory, and emptying or creating that directory before a
// template is materialized into it.
package project

import (
	"errors"
	"fmt"
)

// Sentinel errors for the project package.
var (
	// ErrInvalidPackageName indicates a name does not match the package identifier grammar.
	ErrInvalidPackageName = errors.New("invalid package.json name")

	// ErrNotDirectory indicates the target path exists but is not a directory.
	ErrNotDirectory = errors.New("target path is not a directory")
)

// ValidationError describes a rejected user-supplied value.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IOError is a filesystem failure. It is never retried.
type IOError struct {
	Op   string // "stat", "read", "remove", "mkdir"
	Path string
	Err  error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the wrapped filesystem error.
func (e *IOError) Unwrap() error {
	return e.Err
}
