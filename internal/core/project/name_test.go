package project

import (
	"errors"
	"strings"
	"testing"
)

func TestIsValidPackageName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"my-app", true},
		{"vue-project", true},
		{"app2", true},
		{"vue.js", true},
		{"snake_case", true},
		{"@scope/pkg", true},
		{"@my-org/my-app", true},
		{"", false},
		{"My-App", false},
		{".hidden", false},
		{"_private", false},
		{"-leading", false},
		{"trailing-", false},
		{"double--dash", false},
		{"with space", false},
		{"bang!", false},
		{"tilde~", false},
		{"quote'", false},
		{"paren()", false},
		{"star*", false},
		{"@scope/", false},
		{"@/pkg", false},
		{"a/b", false},
		{strings.Repeat("a", MaxPackageNameLength), true},
		{strings.Repeat("a", MaxPackageNameLength+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidPackageName(tt.name); got != tt.want {
				t.Errorf("IsValidPackageName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestToValidPackageName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"My App!", "my-app"},
		{"  demo  ", "demo"},
		{"Hello   World", "hello-world"},
		{".hidden", "hidden"},
		{"__init__", "init"},
		{"a--b", "a-b"},
		{"a - b", "a-b"},
		{"vue.js", "vue.js"},
		{"snake_case", "snake_case"},
		{"Café Crème", "cafe-creme"},
		{"@Scope/My Pkg", "@scope/my-pkg"},
		{"@/pkg", "pkg"},
		{"@scope/", "scope"},
		{"foo/bar", "foo-bar"},
		{"", ""},
		{"!!!", ""},
		{"日本語", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ToValidPackageName(tt.in); got != tt.want {
				t.Errorf("ToValidPackageName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToValidPackageName_YieldsValidOrEmpty(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"My App!", "...", "-x-", "@a/b", "@@a//b", "UPPER", "tab\tsep", "a.-.b",
		strings.Repeat("x-", 200), "@" + strings.Repeat("s", 250) + "/name",
	}
	for _, in := range inputs {
		out := ToValidPackageName(in)
		if out == "" {
			continue
		}
		if !IsValidPackageName(out) {
			t.Errorf("ToValidPackageName(%q) = %q, which is not valid", in, out)
		}
	}
}

func TestValidatePackageName(t *testing.T) {
	t.Parallel()

	if err := ValidatePackageName("my-app"); err != nil {
		t.Errorf("ValidatePackageName(valid) = %v", err)
	}

	err := ValidatePackageName("My App")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if !errors.Is(err, ErrInvalidPackageName) {
		t.Error("ValidationError should unwrap to ErrInvalidPackageName")
	}
}

func FuzzToValidPackageName(f *testing.F) {
	for _, seed := range []string{"My App!", "@scope/pkg", "", "..a..", "Ünïcödé"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, in string) {
		once := ToValidPackageName(in)
		if twice := ToValidPackageName(once); twice != once {
			t.Fatalf("not idempotent: %q -> %q -> %q", in, once, twice)
		}
		if once != "" && !IsValidPackageName(once) {
			t.Fatalf("ToValidPackageName(%q) = %q is invalid", in, once)
		}
	})
}
