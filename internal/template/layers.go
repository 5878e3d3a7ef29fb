package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"reflect"
	"sort"
	"strings"

	"github.com/kaywahmatch/create-project/internal/defs"
	"github.com/kaywahmatch/create-project/pkg/models"
)

// Layer directories of the builtin tree.
const (
	BaseLayer   = "base"
	ConfigLayer = "config"
	EntryLayer  = "entry"
)

// File is a composed output file, relative to the project root.
type File struct {
	Path string // slash-separated
	Data []byte
	Mode fs.FileMode
}

// Layers returns the layer directories applied for a feature set, in order.
func Layers(f models.FeatureSet) []string {
	layers := []string{BaseLayer}
	for _, name := range f.Names() {
		layers = append(layers, path.Join(ConfigLayer, name))
	}
	return append(layers, EntryLayer)
}

// compose overlays the layers and returns the files sorted by path. Later
// layers replace earlier files, except package.json which is deep-merged.
func compose(fsys fs.FS, r Renderer, layers []string, tmplCtx *TemplateContext) ([]File, error) {
	files := make(map[string]File)
	var pkg map[string]any

	for _, layer := range layers {
		if _, err := fs.Stat(fsys, layer); err != nil {
			// Features without files of their own have no layer directory.
			continue
		}

		err := fs.WalkDir(fsys, layer, func(p string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}

			rel := strings.TrimPrefix(p, layer+"/")
			content, err := readLayerFile(fsys, r, p, tmplCtx)
			if err != nil {
				return err
			}
			dest := destPath(rel, tmplCtx.Features.TypeScript)

			if dest == defs.PackageJSON {
				var doc map[string]any
				if err := json.Unmarshal(content, &doc); err != nil {
					return fmt.Errorf("%w: %s: %v", ErrInvalidJSON, p, err)
				}
				pkg = deepMerge(pkg, doc)
				return nil
			}

			files[dest] = File{Path: dest, Data: content, Mode: fileMode(dest)}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("compose layer %q: %w", layer, err)
		}
	}

	if pkg != nil {
		data, err := encodePackageJSON(pkg, tmplCtx.PackageName)
		if err != nil {
			return nil, err
		}
		files[defs.PackageJSON] = File{Path: defs.PackageJSON, Data: data, Mode: defs.FilePerm}
	}

	out := make([]File, 0, len(files))
	for _, f := range files {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// readLayerFile returns the content of a layer file, rendering .tmpl files.
func readLayerFile(fsys fs.FS, r Renderer, p string, tmplCtx *TemplateContext) ([]byte, error) {
	if strings.HasSuffix(p, ".tmpl") {
		rendered, err := r.Render(p, tmplCtx)
		if err != nil {
			return nil, fmt.Errorf("template render %q: %w", p, err)
		}
		return rendered, nil
	}
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, fmt.Errorf("template read %q: %w", p, err)
	}
	return data, nil
}

// destPath maps a layer-relative path to its output path: the .tmpl suffix
// is dropped, a single leading underscore in the file name becomes a dot,
// and .js becomes .ts for TypeScript projects.
func destPath(rel string, typescript bool) string {
	rel = strings.TrimSuffix(rel, ".tmpl")

	dir, name := path.Split(rel)
	if strings.HasPrefix(name, "_") && !strings.HasPrefix(name, "__") {
		name = "." + name[1:]
	}
	if typescript && strings.HasSuffix(name, ".js") && !strings.HasPrefix(dir, "public/") {
		name = strings.TrimSuffix(name, ".js") + ".ts"
	}
	return dir + name
}

func fileMode(dest string) fs.FileMode {
	if strings.HasSuffix(dest, ".sh") {
		return defs.ExecPerm
	}
	return defs.FilePerm
}

// deepMerge merges src into dst. Objects merge recursively, arrays are
// unioned in order, anything else is replaced by src.
func deepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, sv := range src {
		dv, ok := dst[k]
		if !ok {
			dst[k] = sv
			continue
		}
		switch s := sv.(type) {
		case map[string]any:
			if d, ok := dv.(map[string]any); ok {
				dst[k] = deepMerge(d, s)
				continue
			}
		case []any:
			if d, ok := dv.([]any); ok {
				dst[k] = unionSlices(d, s)
				continue
			}
		}
		dst[k] = sv
	}
	return dst
}

func unionSlices(a, b []any) []any {
	out := append([]any(nil), a...)
	for _, v := range b {
		found := false
		for _, existing := range out {
			if reflect.DeepEqual(existing, v) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, v)
		}
	}
	return out
}

// encodePackageJSON sets the package name and encodes the document with
// two-space indentation and a trailing newline. Keys are sorted, with name
// and version first as npm writes them.
func encodePackageJSON(doc map[string]any, name string) ([]byte, error) {
	if name != "" {
		doc["name"] = name
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		pi, pj := keyPriority(keys[i]), keyPriority(keys[j])
		if pi != pj {
			return pi < pj
		}
		return keys[i] < keys[j]
	})

	for i, k := range keys {
		kb, err := marshalJSON(k, "")
		if err != nil {
			return nil, fmt.Errorf("encode package.json key %q: %w", k, err)
		}
		v, err := marshalJSON(doc[k], "  ")
		if err != nil {
			return nil, fmt.Errorf("encode package.json key %q: %w", k, err)
		}
		buf.WriteString("  ")
		buf.Write(kb)
		buf.WriteString(": ")
		buf.Write(v)
		if i < len(keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// marshalJSON encodes v without HTML escaping, so scripts keep "&&" intact.
func marshalJSON(v any, prefix string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(prefix, "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func keyPriority(k string) int {
	switch k {
	case "name":
		return 0
	case "version":
		return 1
	case "private":
		return 2
	case "type":
		return 3
	case "scripts":
		return 4
	}
	return 5
}
