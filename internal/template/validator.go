package template

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathIssue describes a problem with one path of a deployment.
type PathIssue struct {
	Path    string
	Message string
}

// Error implements the error interface.
func (p PathIssue) Error() string {
	return fmt.Sprintf("%s: %s", p.Path, p.Message)
}

// ValidationReport summarizes a post-deployment check.
type ValidationReport struct {
	Valid        bool
	FilesChecked int
	Errors       []PathIssue
	Warnings     []PathIssue
}

// Validator checks composed and deployed template output.
type Validator interface {
	// ValidateJSON reports whether data is well-formed JSON.
	ValidateJSON(data []byte) error

	// ValidatePaths returns one issue per path escaping root.
	ValidatePaths(root string, files []string) []PathIssue

	// ValidateDeployment checks that every file exists under root and that
	// .json files parse.
	ValidateDeployment(root string, files []string) *ValidationReport
}

type validator struct{}

// NewValidator creates a Validator.
func NewValidator() Validator {
	return &validator{}
}

// ValidateJSON implements Validator.
func (v *validator) ValidateJSON(data []byte) error {
	if len(data) == 0 || !json.Valid(data) {
		return ErrInvalidJSON
	}
	return nil
}

// ValidatePaths implements Validator.
func (v *validator) ValidatePaths(root string, files []string) []PathIssue {
	var issues []PathIssue
	for _, f := range files {
		if err := validateDeployPath(root, f); err != nil {
			issues = append(issues, PathIssue{Path: f, Message: err.Error()})
		}
	}
	return issues
}

// ValidateDeployment implements Validator.
func (v *validator) ValidateDeployment(root string, files []string) *ValidationReport {
	report := &ValidationReport{Valid: true}

	for _, f := range files {
		report.FilesChecked++
		abs := filepath.Join(root, filepath.FromSlash(f))

		info, err := os.Stat(abs)
		if err != nil {
			report.Errors = append(report.Errors, PathIssue{Path: f, Message: "missing after deployment"})
			continue
		}
		if info.IsDir() {
			report.Warnings = append(report.Warnings, PathIssue{Path: f, Message: "is a directory"})
			continue
		}

		if strings.HasSuffix(f, ".json") {
			data, err := os.ReadFile(abs)
			if err != nil {
				report.Errors = append(report.Errors, PathIssue{Path: f, Message: err.Error()})
				continue
			}
			if err := v.ValidateJSON(data); err != nil {
				report.Errors = append(report.Errors, PathIssue{Path: f, Message: err.Error()})
			}
		}
	}

	report.Valid = len(report.Errors) == 0
	return report
}
