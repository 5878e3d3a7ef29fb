package models

import (
	"errors"
	"fmt"
	"path/filepath"
)

// SelectionMode defines how optional capabilities are chosen.
type SelectionMode string

const (
	// SelectionFeatures asks one toggle per feature (default).
	SelectionFeatures SelectionMode = "features"

	// SelectionTemplate asks for a single template identifier.
	SelectionTemplate SelectionMode = "template"
)

// IsValid checks if the selection mode is a known value.
func (m SelectionMode) IsValid() bool {
	switch m {
	case SelectionFeatures, SelectionTemplate:
		return true
	}
	return false
}

// E2ERunner identifies the end-to-end test tool.
type E2ERunner string

const (
	E2ENone       E2ERunner = ""
	E2ECypress    E2ERunner = "cypress"
	E2EPlaywright E2ERunner = "playwright"
)

// IsValid checks if the runner is a known value. The empty runner is valid.
func (r E2ERunner) IsValid() bool {
	switch r {
	case E2ENone, E2ECypress, E2EPlaywright:
		return true
	}
	return false
}

// BuiltinTemplate is the template identifier of the embedded layered template.
const BuiltinTemplate = "default"

// FeatureSet holds the optional capabilities of the generated project.
type FeatureSet struct {
	TypeScript bool      `yaml:"typescript" json:"typescript"`
	JSX        bool      `yaml:"jsx" json:"jsx"`
	Router     bool      `yaml:"router" json:"router"`
	Pinia      bool      `yaml:"pinia" json:"pinia"`
	Vitest     bool      `yaml:"vitest" json:"vitest"`
	E2E        E2ERunner `yaml:"e2e" json:"e2e"`
	ESLint     bool      `yaml:"eslint" json:"eslint"`
	Prettier   bool      `yaml:"prettier" json:"prettier"`
}

// Names returns the enabled feature names in layering order.
func (f FeatureSet) Names() []string {
	var names []string
	if f.TypeScript {
		names = append(names, "typescript")
	}
	if f.JSX {
		names = append(names, "jsx")
	}
	if f.Router {
		names = append(names, "router")
	}
	if f.Pinia {
		names = append(names, "pinia")
	}
	if f.Vitest {
		names = append(names, "vitest")
	}
	if f.E2E != E2ENone {
		names = append(names, string(f.E2E))
	}
	if f.ESLint {
		names = append(names, "eslint")
	}
	if f.Prettier {
		names = append(names, "prettier")
	}
	return names
}

// ResolvedConfig is the fully populated set of decisions driving a run.
type ResolvedConfig struct {
	ProjectName     string        `yaml:"project_name" json:"project_name"`
	PackageName     string        `yaml:"package_name" json:"package_name"`
	TargetDir       string        `yaml:"target_dir" json:"target_dir"` // as typed by the user, relative to the working directory
	Root            string        `yaml:"root" json:"root"`             // absolute project root
	ShouldOverwrite bool          `yaml:"should_overwrite" json:"should_overwrite"`
	Mode            SelectionMode `yaml:"mode" json:"mode"`
	Template        string        `yaml:"template" json:"template"`
	Features        FeatureSet    `yaml:"features" json:"features"`
}

// ErrIncompleteConfig indicates a ResolvedConfig field was left empty.
var ErrIncompleteConfig = errors.New("models: incomplete resolved configuration")

// IsBuiltin reports whether the builtin layered template is selected.
func (c *ResolvedConfig) IsBuiltin() bool {
	return c.Template == BuiltinTemplate
}

// Validate checks that every field holds a concrete value.
func (c *ResolvedConfig) Validate() error {
	switch {
	case c.ProjectName == "":
		return fmt.Errorf("%w: project name", ErrIncompleteConfig)
	case c.PackageName == "":
		return fmt.Errorf("%w: package name", ErrIncompleteConfig)
	case c.TargetDir == "":
		return fmt.Errorf("%w: target directory", ErrIncompleteConfig)
	case c.Root == "" || !filepath.IsAbs(c.Root):
		return fmt.Errorf("%w: root must be absolute, got %q", ErrIncompleteConfig, c.Root)
	case !c.Mode.IsValid():
		return fmt.Errorf("%w: selection mode %q", ErrIncompleteConfig, c.Mode)
	case c.Template == "":
		return fmt.Errorf("%w: template", ErrIncompleteConfig)
	case !c.Features.E2E.IsValid():
		return fmt.Errorf("%w: e2e runner %q", ErrIncompleteConfig, c.Features.E2E)
	}
	return nil
}
