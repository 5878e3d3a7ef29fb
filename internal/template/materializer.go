package template

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kaywahmatch/create-project/internal/defs"
	"github.com/kaywahmatch/create-project/internal/fetch"
	"github.com/kaywahmatch/create-project/pkg/models"
)

// EventKind classifies a materialization event.
type EventKind int

const (
	// EventInfo is a lifecycle message, such as a fetch notification.
	EventInfo EventKind = iota
	// EventFile reports one written file of the builtin strategy.
	EventFile
	// EventDone marks completion.
	EventDone
)

// Event is a progress notification of a materialization.
type Event struct {
	Kind    EventKind
	Code    string
	Message string
	Path    string
	Done    int
	Total   int
}

// Observer receives materialization events.
type Observer func(Event)

// Result describes a finished materialization.
type Result struct {
	Strategy string
	Source   string
	Files    []string // builtin strategy only
}

// Strategy writes a template into cfg.Root.
type Strategy interface {
	Name() string
	Materialize(ctx context.Context, cfg *models.ResolvedConfig, observe Observer) (*Result, error)
}

// Cloner is the remote archive transport.
type Cloner interface {
	Clone(ctx context.Context, src, dest string, opts fetch.Options, onEvent fetch.EventFunc) error
}

// BuiltinStrategy composes the embedded layer tree.
type BuiltinStrategy struct {
	deployer  Deployer
	validator Validator
	version   string
}

// Name implements Strategy.
func (s *BuiltinStrategy) Name() string { return "builtin" }

// Materialize implements Strategy.
func (s *BuiltinStrategy) Materialize(ctx context.Context, cfg *models.ResolvedConfig, observe Observer) (*Result, error) {
	tmplCtx := ContextFromConfig(cfg, WithVersion(s.version))

	observe(Event{Kind: EventInfo, Code: "LAYERS", Message: fmt.Sprintf("layers: %v", Layers(cfg.Features))})

	files, err := s.deployer.Deploy(ctx, cfg.Root, tmplCtx, func(done, total int, path string) {
		observe(Event{Kind: EventFile, Path: path, Done: done, Total: total})
	})
	if err != nil {
		return nil, err
	}

	if report := s.validator.ValidateDeployment(cfg.Root, files); !report.Valid {
		return nil, fmt.Errorf("builtin template validation: %w", errors.Join(issuesToErrors(report.Errors)...))
	}

	return &Result{Strategy: s.Name(), Source: models.BuiltinTemplate, Files: files}, nil
}

// RemoteStrategy fetches a registered template archive.
type RemoteStrategy struct {
	cloner Cloner
	entry  Entry
	opts   fetch.Options
	logger *slog.Logger
}

// Name implements Strategy.
func (s *RemoteStrategy) Name() string { return "remote" }

// Materialize implements Strategy. The fetched package.json, if any, gets
// the resolved package name.
func (s *RemoteStrategy) Materialize(ctx context.Context, cfg *models.ResolvedConfig, observe Observer) (*Result, error) {
	err := s.cloner.Clone(ctx, s.entry.Source, cfg.Root, s.opts, func(e fetch.Event) {
		observe(Event{Kind: EventInfo, Code: e.Code, Message: e.Message})
	})
	if err != nil {
		return nil, err
	}

	if err := renamePackage(cfg.Root, cfg.PackageName); err != nil {
		s.logger.Warn("could not set package name", "root", cfg.Root, "error", err)
	}
	return &Result{Strategy: s.Name(), Source: s.entry.Source}, nil
}

// Materializer picks a strategy for a resolved configuration and runs it.
type Materializer struct {
	deployer  Deployer
	registry  *Registry
	cloner    Cloner
	fetchOpts fetch.Options
	version   string
	logger    *slog.Logger
}

// MaterializerOption configures a Materializer.
type MaterializerOption func(*Materializer)

// WithCloner sets the remote transport and its options.
func WithCloner(c Cloner, opts fetch.Options) MaterializerOption {
	return func(m *Materializer) {
		m.cloner = c
		m.fetchOpts = opts
	}
}

// WithToolVersion sets the version exposed to templates.
func WithToolVersion(v string) MaterializerOption {
	return func(m *Materializer) { m.version = v }
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *slog.Logger) MaterializerOption {
	return func(m *Materializer) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewMaterializer creates a Materializer.
func NewMaterializer(deployer Deployer, registry *Registry, opts ...MaterializerOption) *Materializer {
	m := &Materializer{
		deployer: deployer,
		registry: registry,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = &Registry{}
	}
	return m
}

// StrategyFor returns the strategy serving cfg.Template.
func (m *Materializer) StrategyFor(cfg *models.ResolvedConfig) (Strategy, error) {
	if cfg.IsBuiltin() {
		return &BuiltinStrategy{deployer: m.deployer, validator: NewValidator(), version: m.version}, nil
	}

	entry, ok := m.registry.Lookup(cfg.Template)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, cfg.Template)
	}
	if m.cloner == nil {
		return nil, ErrNoFetcher
	}
	return &RemoteStrategy{cloner: m.cloner, entry: entry, opts: m.fetchOpts, logger: m.logger}, nil
}

// Materialize writes the selected template into cfg.Root, which must already
// exist. Events are delivered to observe, which may be nil.
func (m *Materializer) Materialize(ctx context.Context, cfg *models.ResolvedConfig, observe Observer) (*Result, error) {
	if observe == nil {
		observe = func(Event) {}
	}

	strategy, err := m.StrategyFor(cfg)
	if err != nil {
		return nil, err
	}
	m.logger.Debug("materializing template", "strategy", strategy.Name(), "template", cfg.Template, "root", cfg.Root)

	result, err := strategy.Materialize(ctx, cfg, observe)
	if err != nil {
		return nil, err
	}

	observe(Event{Kind: EventDone, Code: "DONE", Message: "done"})
	m.logger.Debug("template materialized", "strategy", result.Strategy, "files", len(result.Files))
	return result, nil
}

// ReadReadme returns the generated README, if any.
func ReadReadme(root string) ([]byte, error) {
	return os.ReadFile(filepath.Join(root, defs.ReadmeMD))
}

// renamePackage sets the name field of root/package.json. A missing file is
// not an error.
func renamePackage(root, name string) error {
	p := filepath.Join(root, defs.PackageJSON)
	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidJSON, defs.PackageJSON, err)
	}
	out, err := encodePackageJSON(doc, name)
	if err != nil {
		return err
	}
	return os.WriteFile(p, out, defs.FilePerm)
}

func issuesToErrors(issues []PathIssue) []error {
	errs := make([]error, len(issues))
	for i, issue := range issues {
		errs[i] = issue
	}
	return errs
}
