package resolve

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/kaywahmatch/create-project/internal/cli/wizard"
	"github.com/kaywahmatch/create-project/pkg/models"
)

// Invocation is the raw input of a run.
type Invocation struct {
	// TargetDir is the positional argument; empty when omitted.
	TargetDir string
	Flags     FeatureFlags
	// Cwd anchors a relative TargetDir.
	Cwd string
}

// Options configures a Resolver.
type Options struct {
	// Mode selects between feature toggles and a template choice.
	Mode models.SelectionMode
	// Templates lists the named templates offered in template mode, in
	// addition to the builtin one.
	Templates []wizard.Option
	Logger    *slog.Logger
}

// Resolver turns an Invocation into a ResolvedConfig.
type Resolver struct {
	prompter  wizard.Prompter
	mode      models.SelectionMode
	templates []wizard.Option
	logger    *slog.Logger
}

// New creates a Resolver asking its questions through p.
func New(p wizard.Prompter, opts Options) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	mode := opts.Mode
	if mode == "" {
		mode = models.SelectionFeatures
	}
	return &Resolver{
		prompter:  p,
		mode:      mode,
		templates: opts.Templates,
		logger:    logger,
	}
}

// Resolve runs the prompt sequence and merges its answers with the flags.
// A declined overwrite or an aborted prompt yields an error matching
// wizard.ErrCancelled; no filesystem change has happened at that point.
func (r *Resolver) Resolve(ctx context.Context, inv Invocation) (*models.ResolvedConfig, error) {
	if inv.Cwd == "" {
		return nil, fmt.Errorf("resolve: working directory is required")
	}
	if !r.mode.IsValid() {
		return nil, fmt.Errorf("resolve: invalid selection mode %q", r.mode)
	}

	s := &session{inv: inv, mode: r.mode, templates: r.templates}

	r.logger.Debug("resolving configuration",
		"target", inv.TargetDir,
		"mode", r.mode,
		"feature_flags_used", inv.Flags.IsFeatureFlagsUsed(),
		"force", inv.Flags.Force,
	)

	answers, err := wizard.NewRunner(r.prompter, r.logger).Run(ctx, s.questions())
	if err != nil {
		return nil, err
	}

	cfg := merge(s, answers)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}

	r.logger.Debug("configuration resolved",
		"root", cfg.Root,
		"package", cfg.PackageName,
		"overwrite", cfg.ShouldOverwrite,
		"template", cfg.Template,
		"features", cfg.Features.Names(),
	)
	return cfg, nil
}

// merge combines answers with flag-derived values. Answers win where present;
// anything skipped is filled from the flags or the computed default.
func merge(s *session, a wizard.Answers) *models.ResolvedConfig {
	root := s.root(a)
	cfg := &models.ResolvedConfig{
		ProjectName:     filepath.Base(root),
		TargetDir:       s.targetDir(a),
		Root:            root,
		ShouldOverwrite: s.inv.Flags.Force,
		Mode:            s.mode,
		Template:        models.BuiltinTemplate,
	}

	if v, ok := a.Bool(QShouldOverwrite); ok {
		cfg.ShouldOverwrite = v
	}

	if v, ok := a.String(QPackageName); ok {
		cfg.PackageName = v
	} else {
		// Skipped only when the directory name is already valid.
		cfg.PackageName = s.nameSource(a)
	}

	if s.inv.Flags.Template != "" {
		cfg.Template = s.inv.Flags.Template
	} else if v, ok := a.String(QTemplate); ok && v != "" {
		cfg.Template = v
	}

	if s.inv.Flags.IsFeatureFlagsUsed() {
		cfg.Features = s.inv.Flags.Features()
	} else {
		cfg.Features = featuresFromAnswers(a)
	}
	return cfg
}

func featuresFromAnswers(a wizard.Answers) models.FeatureSet {
	b := func(name string) bool {
		v, _ := a.Bool(name)
		return v
	}
	e2e, _ := a.String(QE2E)
	return models.FeatureSet{
		TypeScript: b(QTypeScript),
		JSX:        b(QJSX),
		Router:     b(QRouter),
		Pinia:      b(QPinia),
		Vitest:     b(QVitest),
		E2E:        models.E2ERunner(e2e),
		ESLint:     b(QESLint),
		Prettier:   b(QESLint) && b(QPrettier),
	}
}
