// Package fetch downloads a GitHub repository archive and extracts it, or
// one of its subdirectories, into a destination directory. Downloaded
// archives can be cached and reused. Extraction is not atomic: on failure the
// destination may hold part of the archive.
package fetch

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fetch package.
var (
	// ErrBadSource indicates an unparseable source identifier.
	ErrBadSource = errors.New("could not parse source")

	// ErrDestNotEmpty indicates a non-empty destination without force.
	ErrDestNotEmpty = errors.New("destination directory is not empty, aborting")

	// ErrNotFound indicates the repository or ref does not exist.
	ErrNotFound = errors.New("repository or ref not found")

	// ErrIllegalPath indicates an archive entry escaping the destination.
	ErrIllegalPath = errors.New("illegal file path in archive")

	// ErrSubdirNotFound indicates the requested subdirectory is not in the archive.
	ErrSubdirNotFound = errors.New("subdirectory not found in archive")
)

// Stage names the step of a clone that failed.
type Stage string

const (
	StageSource      Stage = "source"
	StageDestination Stage = "destination"
	StageDownload    Stage = "download"
	StageExtract     Stage = "extract"
)

// Error is a failed template acquisition.
type Error struct {
	Stage  Stage
	Source string
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("fetch %s (%s): %v", e.Source, e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// StatusError is an unexpected HTTP response status.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %s", e.URL, e.Status)
}

// Unwrap maps 404 to ErrNotFound.
func (e *StatusError) Unwrap() error {
	if e.Code == 404 {
		return ErrNotFound
	}
	return nil
}

// IsClientError reports a 4xx status, which is not retried.
func (e *StatusError) IsClientError() bool {
	return e.Code >= 400 && e.Code < 500
}
