package template

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var embedded embed.FS

//go:embed registry.yaml
var registryYAML []byte

// EmbeddedTemplates returns the builtin layer tree rooted at its layer
// directories (base, config, entry).
func EmbeddedTemplates() (fs.FS, error) {
	return fs.Sub(embedded, "templates")
}
