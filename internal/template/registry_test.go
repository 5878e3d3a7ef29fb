package template

import (
	"reflect"
	"strings"
	"testing"

	"github.com/kaywahmatch/create-project/pkg/models"
)

func TestDefaultRegistry(t *testing.T) {
	r, err := DefaultRegistry()
	if err != nil {
		t.Fatalf("DefaultRegistry error: %v", err)
	}

	e, ok := r.Lookup("vue-ts-router-pinia")
	if !ok {
		t.Fatal("vue-ts-router-pinia not registered")
	}
	if e.Source != "kaywahmatch/create-project-template/vue-ts-router-pinia" {
		t.Errorf("Source = %q", e.Source)
	}
	if !r.Has(models.BuiltinTemplate) {
		t.Error("builtin template should always be available")
	}
	if r.Has("nope") {
		t.Error("Has(nope) = true")
	}
}

func TestLoadRegistry(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"valid", "templates:\n  - name: b\n    source: u/r\n  - name: a\n    source: u/r/a\n", ""},
		{"empty", "", ""},
		{"bad_yaml", "templates: [", "parse template registry"},
		{"empty_name", "templates:\n  - source: u/r\n", "empty name"},
		{"reserved", "templates:\n  - name: default\n    source: u/r\n", "reserved"},
		{"no_source", "templates:\n  - name: a\n", "empty source"},
		{"duplicate", "templates:\n  - name: a\n    source: u/r\n  - name: a\n    source: u/s\n", "duplicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := LoadRegistry([]byte(tt.doc))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadRegistry error: %v", err)
			}
			if tt.name == "valid" && !reflect.DeepEqual(r.Names(), []string{"a", "b"}) {
				t.Errorf("Names() = %v, want sorted [a b]", r.Names())
			}
		})
	}
}
