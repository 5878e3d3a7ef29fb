package template

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kaywahmatch/create-project/internal/defs"
)

// ProgressFunc is called after each file is written, with the running count.
type ProgressFunc func(done, total int, path string)

// Deployer composes the builtin layer tree and writes it to a project root.
type Deployer interface {
	// Plan composes the layers selected by tmplCtx.Features without writing.
	Plan(tmplCtx *TemplateContext) ([]File, error)

	// Deploy writes the composed files under projectRoot and returns the
	// written relative paths. Existing files at the same paths are replaced.
	Deploy(ctx context.Context, projectRoot string, tmplCtx *TemplateContext, progress ProgressFunc) ([]string, error)

	// ExtractTemplate returns the raw content of a single template by name.
	ExtractTemplate(name string) ([]byte, error)

	// ListTemplates returns the relative paths of all files in the tree.
	ListTemplates() []string
}

// deployer is the concrete implementation of Deployer.
type deployer struct {
	fsys     fs.FS
	renderer Renderer
}

// NewDeployer creates a Deployer backed by the given filesystem.
// In production the fs.FS comes from go:embed; in tests use testing/fstest.MapFS.
func NewDeployer(fsys fs.FS) Deployer {
	return &deployer{fsys: fsys, renderer: NewRenderer(fsys)}
}

// NewDeployerWithRenderer creates a Deployer that renders .tmpl files using the given Renderer.
func NewDeployerWithRenderer(fsys fs.FS, renderer Renderer) Deployer {
	return &deployer{fsys: fsys, renderer: renderer}
}

// Plan implements Deployer.
func (d *deployer) Plan(tmplCtx *TemplateContext) ([]File, error) {
	if tmplCtx == nil {
		tmplCtx = NewTemplateContext()
	}
	return compose(d.fsys, d.renderer, Layers(tmplCtx.Features), tmplCtx)
}

// Deploy implements Deployer. Context cancellation is checked before each
// file; files written so far stay on disk.
func (d *deployer) Deploy(ctx context.Context, projectRoot string, tmplCtx *TemplateContext, progress ProgressFunc) ([]string, error) {
	projectRoot = filepath.Clean(projectRoot)

	files, err := d.Plan(tmplCtx)
	if err != nil {
		return nil, err
	}

	written := make([]string, 0, len(files))
	for i, f := range files {
		select {
		case <-ctx.Done():
			return written, ctx.Err()
		default:
		}

		if err := validateDeployPath(projectRoot, f.Path); err != nil {
			return written, err
		}

		destPath := filepath.Join(projectRoot, filepath.FromSlash(f.Path))
		destDir := filepath.Dir(destPath)
		if err := os.MkdirAll(destDir, defs.DirPerm); err != nil {
			return written, fmt.Errorf("template deploy mkdir %q: %w", destDir, err)
		}
		if err := os.WriteFile(destPath, f.Data, f.Mode); err != nil {
			return written, fmt.Errorf("template deploy write %q: %w", destPath, err)
		}

		written = append(written, f.Path)
		if progress != nil {
			progress(i+1, len(files), f.Path)
		}
	}
	return written, nil
}

// ExtractTemplate returns the content of a single named template.
func (d *deployer) ExtractTemplate(name string) ([]byte, error) {
	data, err := fs.ReadFile(d.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return data, nil
}

// ListTemplates returns sorted relative paths of all files in the tree.
func (d *deployer) ListTemplates() []string {
	var list []string

	_ = fs.WalkDir(d.fsys, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip errors during listing
		}
		if path == "." || entry.IsDir() {
			return nil
		}
		list = append(list, path)
		return nil
	})

	return list
}

// validateDeployPath ensures a relative path does not escape projectRoot.
func validateDeployPath(projectRoot, relPath string) error {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))

	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("%w: absolute path %q", ErrPathTraversal, relPath)
	}

	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: parent reference in %q", ErrPathTraversal, relPath)
	}

	absProjectRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return fmt.Errorf("resolve project root: %w", err)
	}

	absPath := filepath.Join(absProjectRoot, cleaned)
	if !strings.HasPrefix(absPath, absProjectRoot+string(filepath.Separator)) && absPath != absProjectRoot {
		return fmt.Errorf("%w: %q escapes project root", ErrPathTraversal, relPath)
	}

	return nil
}
