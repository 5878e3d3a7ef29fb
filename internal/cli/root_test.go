package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kaywahmatch/create-project/internal/cli/wizard"
	"github.com/kaywahmatch/create-project/internal/config"
	"github.com/kaywahmatch/create-project/internal/core/resolve"
	"github.com/kaywahmatch/create-project/internal/fetch"
	"github.com/kaywahmatch/create-project/internal/logging"
	"github.com/kaywahmatch/create-project/internal/template"
	"github.com/kaywahmatch/create-project/internal/ui"
	"github.com/kaywahmatch/create-project/pkg/models"
)

// fakeCloner writes a fixed package.json instead of downloading.
type fakeCloner struct {
	src  string
	opts fetch.Options
}

func (f *fakeCloner) Clone(_ context.Context, src, dest string, opts fetch.Options, onEvent fetch.EventFunc) error {
	f.src = src
	f.opts = opts
	onEvent(fetch.Event{Level: fetch.LevelInfo, Code: fetch.CodeDownloading, Message: "downloading " + src})
	return os.WriteFile(filepath.Join(dest, "package.json"), []byte(`{"name":"remote"}`), 0o644)
}

func testDeps(t *testing.T, cwd string, p wizard.Prompter) *Dependencies {
	t.Helper()
	templates, err := template.EmbeddedTemplates()
	if err != nil {
		t.Fatalf("EmbeddedTemplates error: %v", err)
	}
	hm := ui.NewHeadlessManager()
	hm.ForceHeadless(true)
	if p == nil {
		p = wizard.NewHeadlessPrompter()
	}
	return &Dependencies{
		Config:    config.NewDefaultConfig(),
		Logger:    logging.Discard(),
		Headless:  hm,
		Theme:     ui.NewTheme(true),
		Prompter:  p,
		Registry:  &template.Registry{Templates: []template.Entry{{Name: "remote-one", Source: "user/repo/one"}}},
		Templates: templates,
		Cloner:    &fakeCloner{},
		Getwd:     func() (string, error) { return cwd, nil },
	}
}

func execute(t *testing.T, d *Dependencies, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(d)
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func readPackageName(t *testing.T, root string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	var pkg struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		t.Fatalf("package.json invalid: %v", err)
	}
	return pkg.Name
}

func TestRootCommand_HasFlags(t *testing.T) {
	cmd := NewRootCommand(nil)
	for _, name := range []string{
		"default", "typescript", "ts", "jsx", "router", "vue-router", "pinia",
		"with-tests", "tests", "vitest", "cypress", "playwright", "eslint",
		"eslint-with-prettier", "force", "template", "verbose",
	} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("command should have --%s flag", name)
		}
	}
	if cmd.Use != "create-project [target-dir]" {
		t.Errorf("Use = %q", cmd.Use)
	}
}

func TestReadFeatureFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want func(t *testing.T, f resolve.FeatureFlags)
	}{
		{
			name: "none",
			args: nil,
			want: func(t *testing.T, f resolve.FeatureFlags) {
				if f.IsFeatureFlagsUsed() {
					t.Error("no flags should not count as feature flags")
				}
			},
		},
		{
			name: "aliases",
			args: []string{"--ts", "--vue-router", "--tests"},
			want: func(t *testing.T, f resolve.FeatureFlags) {
				if f.TypeScript == nil || !*f.TypeScript || f.Router == nil || !*f.Router || f.WithTests == nil || !*f.WithTests {
					t.Errorf("aliases not applied: %+v", f)
				}
			},
		},
		{
			name: "explicit_false_counts",
			args: []string{"--typescript=false"},
			want: func(t *testing.T, f resolve.FeatureFlags) {
				if f.TypeScript == nil || *f.TypeScript {
					t.Errorf("TypeScript = %v, want explicit false", f.TypeScript)
				}
				if !f.IsFeatureFlagsUsed() {
					t.Error("explicit false should count as a feature flag")
				}
			},
		},
		{
			name: "alias_true_wins",
			args: []string{"--typescript=false", "--ts"},
			want: func(t *testing.T, f resolve.FeatureFlags) {
				if f.TypeScript == nil || !*f.TypeScript {
					t.Errorf("TypeScript = %v, want true", f.TypeScript)
				}
			},
		},
		{
			name: "force_and_template",
			args: []string{"--force", "--template", " remote-one "},
			want: func(t *testing.T, f resolve.FeatureFlags) {
				if !f.Force || f.Template != "remote-one" {
					t.Errorf("got %+v", f)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRootCommand(nil)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags error: %v", err)
			}
			tt.want(t, readFeatureFlags(cmd))
		})
	}
}

func TestRunCreate_HeadlessDefaults(t *testing.T) {
	cwd := t.TempDir()
	out, err := execute(t, testDeps(t, cwd, nil), "my-app")
	if err != nil {
		t.Fatalf("execute error: %v\n%s", err, out)
	}

	root := filepath.Join(cwd, "my-app")
	for _, want := range []string{"Scaffolding project in " + root, "Done. Now run:", "cd my-app", "npm install", "npm run dev"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if got := readPackageName(t, root); got != "my-app" {
		t.Errorf("package name = %q, want my-app", got)
	}
	if _, err := os.Stat(filepath.Join(root, "src", "main.js")); err != nil {
		t.Errorf("src/main.js missing: %v", err)
	}
}

func TestRunCreate_FlagsSkipFeaturePrompts(t *testing.T) {
	cwd := t.TempDir()
	var asked []string
	p := wizard.PrompterFunc(func(ctx context.Context, pr wizard.Prompt) (any, error) {
		asked = append(asked, pr.Name)
		return wizard.NewHeadlessPrompter().Ask(ctx, pr)
	})

	out, err := execute(t, testDeps(t, cwd, p), "My App!", "--ts", "--router")
	if err != nil {
		t.Fatalf("execute error: %v\n%s", err, out)
	}

	if strings.Join(asked, ",") != resolve.QPackageName {
		t.Errorf("asked = %v, want only the package name", asked)
	}
	root := filepath.Join(cwd, "My App!")
	if got := readPackageName(t, root); got != "my-app" {
		t.Errorf("package name = %q, want my-app", got)
	}
	for _, f := range []string{"src/main.ts", "src/router/index.ts", "tsconfig.json"} {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(f))); err != nil {
			t.Errorf("%s missing: %v", f, err)
		}
	}
	if !strings.Contains(out, `cd "My App!"`) {
		t.Errorf("cd path with a space should be quoted:\n%s", out)
	}
}

func TestRunCreate_DeclinedOverwrite(t *testing.T) {
	cwd := t.TempDir()
	root := filepath.Join(cwd, "existing")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	keep := filepath.Join(root, "keep.txt")
	if err := os.WriteFile(keep, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := &wizard.HeadlessPrompter{Overrides: map[string]any{resolve.QShouldOverwrite: false}}
	_, err := execute(t, testDeps(t, cwd, p), "existing")
	if !errors.Is(err, wizard.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got: %v", err)
	}
	if !strings.Contains(FormatError(err), resolve.CancelledMessage) {
		t.Errorf("FormatError = %q", FormatError(err))
	}
	if _, err := os.Stat(keep); err != nil {
		t.Errorf("existing file should survive a declined overwrite: %v", err)
	}
}

func TestRunCreate_ForceEmptiesTarget(t *testing.T) {
	cwd := t.TempDir()
	stale := filepath.Join(cwd, "stale.txt")
	if err := os.WriteFile(stale, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(cwd, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, testDeps(t, cwd, nil), ".", "--force", "--default")
	if err != nil {
		t.Fatalf("execute error: %v\n%s", err, out)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("stale file should be removed, stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(cwd, ".git")); err != nil {
		t.Errorf(".git should be kept: %v", err)
	}
	if strings.Contains(out, "cd ") {
		t.Errorf("no cd step expected when scaffolding in place:\n%s", out)
	}
}

func TestRunCreate_RemoteTemplate(t *testing.T) {
	cwd := t.TempDir()
	d := testDeps(t, cwd, nil)
	d.Config.SelectionMode = models.SelectionTemplate
	d.Config.Verbose = true

	out, err := execute(t, d, "remote-app", "--template", "remote-one")
	if err != nil {
		t.Fatalf("execute error: %v\n%s", err, out)
	}

	cloner := d.Cloner.(*fakeCloner)
	if cloner.src != "user/repo/one" {
		t.Errorf("cloned %q", cloner.src)
	}
	if want := (fetch.Options{Cache: true, Force: true, Verbose: true}); cloner.opts != want {
		t.Errorf("fetch options = %+v, want %+v", cloner.opts, want)
	}
	if !strings.Contains(out, "downloading user/repo/one") {
		t.Errorf("fetch event not shown:\n%s", out)
	}
	if got := readPackageName(t, filepath.Join(cwd, "remote-app")); got != "remote-app" {
		t.Errorf("package name = %q, want remote-app", got)
	}
}

func TestRunCreate_InvalidTemplateFlag(t *testing.T) {
	cwd := t.TempDir()
	_, err := execute(t, testDeps(t, cwd, nil), "x", "--template", "nope")
	if err == nil || !strings.Contains(err.Error(), `invalid --template value "nope"`) {
		t.Fatalf("expected template validation error, got: %v", err)
	}
	if entries, _ := os.ReadDir(cwd); len(entries) != 0 {
		t.Errorf("nothing should be created, got %d entries", len(entries))
	}
}

func TestRunCreate_TooManyArgs(t *testing.T) {
	if _, err := execute(t, testDeps(t, t.TempDir(), nil), "a", "b"); err == nil {
		t.Error("expected an error for two positional arguments")
	}
}

func TestNextSteps(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{".", []string{"npm install", "npm run dev"}},
		{"", []string{"npm install", "npm run dev"}},
		{"my-app", []string{"cd my-app", "npm install", "npm run dev"}},
		{"my app", []string{`cd "my app"`, "npm install", "npm run dev"}},
	}
	for _, tt := range tests {
		got := nextSteps(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("nextSteps(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if !strings.Contains(got[i], tt.want[i]) {
				t.Errorf("nextSteps(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestFormatError(t *testing.T) {
	if got := FormatError(errors.New("boom")); !strings.Contains(got, "Error: boom") {
		t.Errorf("FormatError = %q", got)
	}
	if got := FormatError(wizard.Cancel("✖ Operation cancelled")); strings.Contains(got, "Error:") {
		t.Errorf("cancellation should print the reason alone: %q", got)
	}
}

func TestTemplateOptions(t *testing.T) {
	r := &template.Registry{Templates: []template.Entry{
		{Name: "b", Source: "u/r", Description: "second"},
		{Name: "a", Source: "u/r/a", Description: "first"},
	}}
	got := templateOptions(r)
	if len(got) != 2 || got[0].Value != "a" || got[0].Desc != "first" {
		t.Errorf("templateOptions = %+v", got)
	}
	if templateOptions(nil) != nil {
		t.Error("nil registry should yield no options")
	}
}
