package template

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/kaywahmatch/create-project/pkg/models"
)

// Entry is a named remote template.
type Entry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Source      string `yaml:"source"`
}

// Registry lists the named templates available in template selection mode.
type Registry struct {
	Templates []Entry `yaml:"templates"`
}

// LoadRegistry parses a registry document.
func LoadRegistry(data []byte) (*Registry, error) {
	var r Registry
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse template registry: %w", err)
	}

	seen := make(map[string]bool, len(r.Templates))
	for i, e := range r.Templates {
		switch {
		case e.Name == "":
			return nil, fmt.Errorf("template registry entry %d: empty name", i)
		case e.Name == models.BuiltinTemplate:
			return nil, fmt.Errorf("template registry entry %q: name is reserved", e.Name)
		case e.Source == "":
			return nil, fmt.Errorf("template registry entry %q: empty source", e.Name)
		case seen[e.Name]:
			return nil, fmt.Errorf("template registry entry %q: duplicate name", e.Name)
		}
		seen[e.Name] = true
	}
	return &r, nil
}

// DefaultRegistry returns the registry embedded in the binary.
func DefaultRegistry() (*Registry, error) {
	return LoadRegistry(registryYAML)
}

// Lookup finds a template by name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	for _, e := range r.Templates {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Names returns the sorted template names, without the builtin one.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.Templates))
	for _, e := range r.Templates {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is the builtin template or a registered one.
func (r *Registry) Has(name string) bool {
	if name == models.BuiltinTemplate {
		return true
	}
	_, ok := r.Lookup(name)
	return ok
}
