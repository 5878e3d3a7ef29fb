package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/kaywahmatch/create-project/internal/cli/wizard"
	"github.com/kaywahmatch/create-project/internal/core/project"
	"github.com/kaywahmatch/create-project/internal/core/resolve"
	"github.com/kaywahmatch/create-project/internal/fetch"
	"github.com/kaywahmatch/create-project/internal/template"
	"github.com/kaywahmatch/create-project/internal/ui"
	"github.com/kaywahmatch/create-project/pkg/models"
	"github.com/kaywahmatch/create-project/pkg/version"
)

// NewRootCommand builds the create-project command. A nil d makes the
// command build its dependencies from the environment once flags are parsed.
func NewRootCommand(d *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-project [target-dir]",
		Short: "Scaffold a new Vue.js project",
		Long: heredoc.Doc(`
			Scaffold a new Vue.js project into target-dir.

			Without feature flags the optional features are asked interactively.
			Supplying any feature flag skips every feature prompt and the flags
			alone decide the feature set.

			Environment:
			  CREATE_PROJECT_SELECTION_MODE    features (default) or template
			  CREATE_PROJECT_CACHE_DIR         remote template cache directory
			  CREATE_PROJECT_ARCHIVE_BASE_URL  remote template archive host
			  CREATE_PROJECT_VERBOSE           print debug logs
			  CREATE_PROJECT_NO_COLOR          disable colors and animations
		`),
		Example: heredoc.Doc(`
			create-project
			create-project my-app --ts --router --pinia
			create-project . --force --default
			create-project my-app --template vue-ts-router-pinia
		`),
		Version:       version.GetVersion(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate(fmt.Sprintf("create-project %s\n", version.GetFullVersion()))
	registerFlags(cmd.Flags())

	cmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
		if d == nil {
			built, err := NewDependencies(cmd.ErrOrStderr(), getBoolFlag(cmd, "verbose"))
			if err != nil {
				return err
			}
			d = built
		}
		return validateTemplateFlag(getStringFlag(cmd, "template"), d.Registry)
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCreate(cmd, args, d)
	}
	return cmd
}

// Execute runs the command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCommand(nil).ExecuteContext(ctx)
}

// FormatError renders err for the terminal. Cancellations print their
// reason alone.
func FormatError(err error) string {
	if errors.Is(err, wizard.ErrCancelled) {
		return cliError.Render(err.Error())
	}
	return cliError.Render("Error: " + err.Error())
}

// runCreate executes the scaffolding workflow: resolve, prepare, materialize.
func runCreate(cmd *cobra.Command, args []string, d *Dependencies) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	cwd, err := d.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	inv := resolve.Invocation{Flags: readFeatureFlags(cmd), Cwd: cwd}
	if len(args) > 0 {
		inv.TargetDir = args[0]
	}

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, renderBanner(version.GetVersion()))
	_, _ = fmt.Fprintln(out)

	resolver := resolve.New(d.Prompter, resolve.Options{
		Mode:      d.Config.SelectionMode,
		Templates: templateOptions(d.Registry),
		Logger:    d.Logger,
	})
	cfg, err := resolver.Resolve(ctx, inv)
	if err != nil {
		return err
	}
	d.Logger.Debug("configuration resolved",
		"root", cfg.Root, "package", cfg.PackageName, "template", cfg.Template, "features", cfg.Features.Names())

	action, err := project.Prepare(cfg.Root, cfg.ShouldOverwrite)
	if err != nil {
		return fmt.Errorf("prepare target directory: %w", err)
	}
	d.Logger.Debug("target directory prepared", "root", cfg.Root, "action", action.String())

	_, _ = fmt.Fprintf(out, "\nScaffolding project in %s...\n", cfg.Root)

	result, err := materialize(ctx, cmd, d, cfg)
	if err != nil {
		return err
	}
	d.Logger.Debug("scaffolding finished", "strategy", result.Strategy, "source", result.Source)

	cdPath, err := filepath.Rel(cwd, cfg.Root)
	if err != nil {
		cdPath = cfg.Root
	}
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, renderSuccessCard("Done. Now run:", nextSteps(cdPath)...))

	if d.Headless.IsTerminalOutput() {
		showReadme(cmd, d, cfg.Root)
	}
	return nil
}

// materialize writes the selected template with progress shown on stdout.
func materialize(ctx context.Context, cmd *cobra.Command, d *Dependencies, cfg *models.ResolvedConfig) (*template.Result, error) {
	opts := []template.MaterializerOption{
		template.WithToolVersion(version.GetVersion()),
		template.WithLogger(d.Logger),
	}
	if d.Cloner != nil {
		// the target was prepared above, so the fetcher may write into it
		opts = append(opts, template.WithCloner(d.Cloner, fetch.Options{
			Cache:   true,
			Force:   true,
			Verbose: d.Config.Verbose,
		}))
	}
	m := template.NewMaterializer(template.NewDeployer(d.Templates), d.Registry, opts...)

	reporter := ui.NewReporter(ui.NewProgress(d.Theme, d.Headless, cmd.OutOrStdout()), "Scaffolding")
	defer reporter.Close()

	result, err := m.Materialize(ctx, cfg, reporter.Observe)
	if err != nil {
		return nil, fmt.Errorf("scaffold project: %w", err)
	}
	return result, nil
}

// showReadme prints the generated README. Failures are logged only.
func showReadme(cmd *cobra.Command, d *Dependencies, root string) {
	readme, err := template.ReadReadme(root)
	if err != nil {
		d.Logger.Warn("could not read README", "root", root, "error", err)
		return
	}
	rendered, err := ui.RenderMarkdown(readme, min(d.Headless.OutputWidth(ui.DefaultMarkdownWidth), 120), d.Theme.NoColor)
	if err != nil {
		d.Logger.Warn("could not render README", "error", err)
		return
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), rendered)
}

// templateOptions lists the registered templates for the template prompt.
func templateOptions(r *template.Registry) []wizard.Option {
	if r == nil {
		return nil
	}
	names := r.Names()
	opts := make([]wizard.Option, 0, len(names))
	for _, name := range names {
		e, _ := r.Lookup(name)
		opts = append(opts, wizard.Option{Label: name, Value: name, Desc: e.Description})
	}
	return opts
}
