package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kaywahmatch/create-project/internal/core/resolve"
	"github.com/kaywahmatch/create-project/internal/template"
	"github.com/kaywahmatch/create-project/pkg/models"
)

// boolFlag describes a feature flag and the FeatureFlags field it sets.
// Aliases set the same field.
type boolFlag struct {
	name    string
	aliases []string
	usage   string
	field   func(*resolve.FeatureFlags) **bool
}

var featureFlags = []boolFlag{
	{"default", nil, "Use the default feature set without prompting", func(f *resolve.FeatureFlags) **bool { return &f.Default }},
	{"typescript", []string{"ts"}, "Add TypeScript", func(f *resolve.FeatureFlags) **bool { return &f.TypeScript }},
	{"jsx", nil, "Add JSX support", func(f *resolve.FeatureFlags) **bool { return &f.JSX }},
	{"router", []string{"vue-router"}, "Add Vue Router for single page applications", func(f *resolve.FeatureFlags) **bool { return &f.Router }},
	{"pinia", nil, "Add Pinia for state management", func(f *resolve.FeatureFlags) **bool { return &f.Pinia }},
	{"with-tests", []string{"tests"}, "Add both unit testing (Vitest) and end-to-end testing (Cypress)", func(f *resolve.FeatureFlags) **bool { return &f.WithTests }},
	{"vitest", nil, "Add Vitest for unit testing", func(f *resolve.FeatureFlags) **bool { return &f.Vitest }},
	{"cypress", nil, "Add Cypress for end-to-end testing", func(f *resolve.FeatureFlags) **bool { return &f.Cypress }},
	{"playwright", nil, "Add Playwright for end-to-end testing", func(f *resolve.FeatureFlags) **bool { return &f.Playwright }},
	{"eslint", nil, "Add ESLint for code quality", func(f *resolve.FeatureFlags) **bool { return &f.ESLint }},
	{"eslint-with-prettier", nil, "Add ESLint and Prettier for code quality and formatting", func(f *resolve.FeatureFlags) **bool { return &f.ESLintWithPrettier }},
}

// registerFlags adds every create flag to fs.
func registerFlags(fs *pflag.FlagSet) {
	for _, f := range featureFlags {
		fs.Bool(f.name, false, f.usage)
		for _, alias := range f.aliases {
			fs.Bool(alias, false, fmt.Sprintf("Alias for --%s", f.name))
		}
	}
	fs.Bool("force", false, "Overwrite a non-empty target directory without asking")
	fs.String("template", "", "Create the project from a named template")
	fs.BoolP("verbose", "v", false, "Print debug logs")
}

// readFeatureFlags converts the parsed flags into resolve.FeatureFlags.
// Only flags that were supplied on the command line are set, so an
// explicit --ts=false still counts as a feature flag.
func readFeatureFlags(cmd *cobra.Command) resolve.FeatureFlags {
	var out resolve.FeatureFlags
	fs := cmd.Flags()

	for _, f := range featureFlags {
		for _, name := range append([]string{f.name}, f.aliases...) {
			if !fs.Changed(name) {
				continue
			}
			v, err := fs.GetBool(name)
			if err != nil {
				continue
			}
			ptr := f.field(&out)
			// any alias set to true wins
			if *ptr == nil || v {
				*ptr = resolve.Bool(v)
			}
		}
	}

	out.Force = getBoolFlag(cmd, "force")
	out.Template = strings.TrimSpace(getStringFlag(cmd, "template"))
	return out
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}

// validateTemplateFlag rejects a --template name that is neither the
// builtin template nor registered.
func validateTemplateFlag(name string, registry *template.Registry) error {
	if name == "" || registry.Has(name) {
		return nil
	}
	names := append([]string{models.BuiltinTemplate}, registry.Names()...)
	return fmt.Errorf("invalid --template value %q: must be one of: %s", name, strings.Join(names, ", "))
}
