package template

import (
	"github.com/kaywahmatch/create-project/pkg/models"
)

// TemplateContext provides data for rendering .tmpl files.
// All fields are exported for use with Go's text/template package.
type TemplateContext struct {
	// Project
	ProjectName string
	PackageName string

	// Features selects the optional layers and guards conditional blocks.
	Features models.FeatureSet

	// ScriptExt is "ts" when TypeScript is enabled, "js" otherwise.
	ScriptExt string

	// Meta
	Version string // create-project version
}

// ContextOption configures a TemplateContext.
type ContextOption func(*TemplateContext)

// NewTemplateContext creates a TemplateContext with defaults, then applies
// any provided options.
func NewTemplateContext(opts ...ContextOption) *TemplateContext {
	ctx := &TemplateContext{
		ScriptExt: "js",
		Version:   "dev",
	}
	for _, opt := range opts {
		opt(ctx)
	}
	return ctx
}

// ContextFromConfig builds the rendering context of a resolved configuration.
func ContextFromConfig(cfg *models.ResolvedConfig, opts ...ContextOption) *TemplateContext {
	base := []ContextOption{
		WithProject(cfg.ProjectName, cfg.PackageName),
		WithFeatures(cfg.Features),
	}
	return NewTemplateContext(append(base, opts...)...)
}

// WithProject sets the project and package names.
func WithProject(name, packageName string) ContextOption {
	return func(c *TemplateContext) {
		c.ProjectName = name
		c.PackageName = packageName
	}
}

// WithFeatures sets the feature set and the matching script extension.
func WithFeatures(f models.FeatureSet) ContextOption {
	return func(c *TemplateContext) {
		c.Features = f
		c.ScriptExt = "js"
		if f.TypeScript {
			c.ScriptExt = "ts"
		}
	}
}

// WithVersion sets the tool version.
func WithVersion(version string) ContextOption {
	return func(c *TemplateContext) {
		if version != "" {
			c.Version = version
		}
	}
}
