// Package cli provides the create-project command and the composition root
// wiring configuration, prompts, the resolver, directory preparation and
// template materialization together.
package cli

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/kaywahmatch/create-project/internal/cli/wizard"
	"github.com/kaywahmatch/create-project/internal/config"
	"github.com/kaywahmatch/create-project/internal/fetch"
	"github.com/kaywahmatch/create-project/internal/logging"
	"github.com/kaywahmatch/create-project/internal/template"
	"github.com/kaywahmatch/create-project/internal/ui"
)

// Dependencies holds the services used by the create command. This is the
// only place where concrete types are instantiated and wired together.
type Dependencies struct {
	Config    *config.Config
	Logger    *slog.Logger
	Headless  *ui.HeadlessManager
	Theme     *ui.Theme
	Prompter  wizard.Prompter
	Registry  *template.Registry
	Templates fs.FS
	Cloner    template.Cloner
	Getwd     func() (string, error)
}

// NewDependencies loads the environment configuration and builds the
// default services. Logs go to logw.
func NewDependencies(logw io.Writer, verbose bool) (*Dependencies, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	verbose = verbose || cfg.Verbose
	cfg.Verbose = verbose

	registry, err := template.DefaultRegistry()
	if err != nil {
		return nil, fmt.Errorf("load template registry: %w", err)
	}
	templates, err := template.EmbeddedTemplates()
	if err != nil {
		return nil, fmt.Errorf("load embedded templates: %w", err)
	}

	logger := logging.New(logw, verbose)
	headless := ui.NewHeadlessManager()

	var prompter wizard.Prompter
	if headless.IsHeadless() {
		logger.Debug("stdin is not a terminal, answering prompts with defaults")
		prompter = wizard.NewHeadlessPrompter()
	} else {
		prompter = wizard.NewHuhPrompter(os.Getenv("ACCESSIBLE") != "")
	}

	return &Dependencies{
		Config:    cfg,
		Logger:    logger,
		Headless:  headless,
		Theme:     ui.NewTheme(cfg.NoColor),
		Prompter:  prompter,
		Registry:  registry,
		Templates: templates,
		Cloner: fetch.NewClient(
			fetch.WithBaseURL(cfg.ArchiveBaseURL),
			fetch.WithCacheDir(cfg.CacheDir),
			fetch.WithLogger(logger),
		),
		Getwd: os.Getwd,
	}, nil
}
