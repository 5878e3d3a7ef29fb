// Package resolve merges command-line feature flags with interactive answers
// into a single models.ResolvedConfig. Flags and feature prompts are mutually
// exclusive per run: once any feature flag is supplied, no feature prompt is
// asked and the flags alone decide the feature set.
package resolve

import (
	"strings"

	"github.com/kaywahmatch/create-project/internal/defs"
	"github.com/kaywahmatch/create-project/pkg/models"
)

// FeatureFlags holds the parsed command-line options. Boolean options are
// tri-state: nil means the flag was not supplied.
type FeatureFlags struct {
	Default            *bool
	TypeScript         *bool
	JSX                *bool
	Router             *bool
	Pinia              *bool
	WithTests          *bool
	Vitest             *bool
	Cypress            *bool
	Playwright         *bool
	ESLint             *bool
	ESLintWithPrettier *bool

	// Force skips the overwrite confirmation.
	Force bool

	// Template names a template identifier; empty when not supplied.
	Template string
}

// IsFeatureFlagsUsed reports whether any feature-selecting flag was supplied.
// When true, every feature or template prompt is skipped.
func (f FeatureFlags) IsFeatureFlagsUsed() bool {
	for _, p := range f.featurePointers() {
		if p != nil {
			return true
		}
	}
	return f.Template != ""
}

func (f FeatureFlags) featurePointers() []*bool {
	return []*bool{
		f.Default, f.TypeScript, f.JSX, f.Router, f.Pinia, f.WithTests,
		f.Vitest, f.Cypress, f.Playwright, f.ESLint, f.ESLintWithPrettier,
	}
}

// Features derives the feature set from the flags alone.
func (f FeatureFlags) Features() models.FeatureSet {
	fs := models.FeatureSet{
		TypeScript: isSet(f.TypeScript),
		JSX:        isSet(f.JSX),
		Router:     isSet(f.Router),
		Pinia:      isSet(f.Pinia),
		Vitest:     isSet(f.Vitest) || isSet(f.WithTests),
		ESLint:     isSet(f.ESLint) || isSet(f.ESLintWithPrettier),
		Prettier:   isSet(f.ESLintWithPrettier),
	}
	switch {
	case isSet(f.Cypress) || isSet(f.WithTests):
		fs.E2E = models.E2ECypress
	case isSet(f.Playwright):
		fs.E2E = models.E2EPlaywright
	}
	return fs
}

// Bool returns a pointer to v, for building FeatureFlags literals.
func Bool(v bool) *bool {
	return &v
}

func isSet(p *bool) bool {
	return p != nil && *p
}

// DefaultProjectName returns the positional target directory argument, or the
// fallback project name when none was given.
func DefaultProjectName(targetDir string) string {
	if t := strings.TrimSpace(targetDir); t != "" {
		return t
	}
	return defs.DefaultProjectName
}
