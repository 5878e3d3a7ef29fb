package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// mkTree creates files (and their parent directories) under root.
func mkTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("MkdirAll error: %v", err)
		}
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile error: %v", err)
		}
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	t.Run("absent", func(t *testing.T) {
		got, err := Classify(filepath.Join(t.TempDir(), "missing"))
		if err != nil {
			t.Fatalf("Classify error: %v", err)
		}
		if got != StateAbsent {
			t.Errorf("Classify = %v, want absent", got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		got, err := Classify(t.TempDir())
		if err != nil {
			t.Fatalf("Classify error: %v", err)
		}
		if got != StateEmpty {
			t.Errorf("Classify = %v, want empty", got)
		}
	})

	t.Run("ignorable_only", func(t *testing.T) {
		root := t.TempDir()
		mkTree(t, root, ".git/HEAD", ".editorconfig")
		got, err := Classify(root)
		if err != nil {
			t.Fatalf("Classify error: %v", err)
		}
		if got != StateIgnorableOnly {
			t.Errorf("Classify = %v, want ignorable-only", got)
		}
	})

	t.Run("has_content", func(t *testing.T) {
		root := t.TempDir()
		mkTree(t, root, ".git/HEAD", "index.html")
		got, err := Classify(root)
		if err != nil {
			t.Fatalf("Classify error: %v", err)
		}
		if got != StateHasContent {
			t.Errorf("Classify = %v, want has-content", got)
		}
	})

	t.Run("regular_file", func(t *testing.T) {
		root := t.TempDir()
		mkTree(t, root, "file")
		_, err := Classify(filepath.Join(root, "file"))
		if !errors.Is(err, ErrNotDirectory) {
			t.Errorf("Classify(file) error = %v, want ErrNotDirectory", err)
		}
		var ioErr *IOError
		if !errors.As(err, &ioErr) {
			t.Errorf("expected *IOError, got %T", err)
		}
	})
}

func TestCanSkipEmptying(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if !CanSkipEmptying(filepath.Join(root, "nope")) {
		t.Error("non-existent path should be skippable")
	}
	if !CanSkipEmptying(root) {
		t.Error("empty directory should be skippable")
	}

	mkTree(t, root, ".git/config")
	if !CanSkipEmptying(root) {
		t.Error("directory with only .git should be skippable")
	}

	mkTree(t, root, ".editorconfig")
	if !CanSkipEmptying(root) {
		t.Error("directory with only ignorable entries should be skippable")
	}

	mkTree(t, root, "notes.txt")
	if CanSkipEmptying(root) {
		t.Error("directory with other content should not be skippable")
	}
}

func TestEmptyDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mkTree(t, root,
		".git/HEAD",
		".git/objects/ab/cdef",
		".editorconfig",
		"README.md",
		".env",
		"src/deep/nested/dir/file.js",
		"node_modules/pkg/index.js",
	)

	if err := EmptyDir(root); err != nil {
		t.Fatalf("EmptyDir error: %v", err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("ReadDir error: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if len(names) != 2 {
		t.Fatalf("remaining entries = %v, want only .editorconfig and .git", names)
	}
	for _, keep := range []string{".git/HEAD", ".git/objects/ab/cdef", ".editorconfig"} {
		if _, err := os.Stat(filepath.Join(root, keep)); err != nil {
			t.Errorf("ignorable entry %q was removed: %v", keep, err)
		}
	}
}

func TestEmptyDir_MissingIsNoop(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing")
	if err := EmptyDir(missing); err != nil {
		t.Fatalf("EmptyDir(missing) error: %v", err)
	}
	if _, err := os.Stat(missing); !os.IsNotExist(err) {
		t.Error("EmptyDir must not create a missing directory")
	}
}

func TestPrepare(t *testing.T) {
	t.Parallel()

	t.Run("creates_absent_root", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "a", "b")
		action, err := Prepare(root, false)
		if err != nil {
			t.Fatalf("Prepare error: %v", err)
		}
		if action != ActionCreated {
			t.Errorf("action = %v, want created", action)
		}
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			t.Errorf("root should be a directory: %v", err)
		}
	})

	t.Run("empties_when_overwrite", func(t *testing.T) {
		root := t.TempDir()
		mkTree(t, root, "old.txt", ".git/HEAD")
		action, err := Prepare(root, true)
		if err != nil {
			t.Fatalf("Prepare error: %v", err)
		}
		if action != ActionEmptied {
			t.Errorf("action = %v, want emptied", action)
		}
		if _, err := os.Stat(filepath.Join(root, "old.txt")); !os.IsNotExist(err) {
			t.Error("old.txt should be removed")
		}
		if _, err := os.Stat(filepath.Join(root, ".git", "HEAD")); err != nil {
			t.Error(".git should survive")
		}
	})

	t.Run("ignorable_only_with_force_is_noop", func(t *testing.T) {
		root := t.TempDir()
		mkTree(t, root, ".git/HEAD")
		action, err := Prepare(root, true)
		if err != nil {
			t.Fatalf("Prepare error: %v", err)
		}
		if action != ActionReused {
			t.Errorf("action = %v, want reused", action)
		}
	})

	t.Run("keeps_content_without_overwrite", func(t *testing.T) {
		root := t.TempDir()
		mkTree(t, root, "keep.txt")
		action, err := Prepare(root, false)
		if err != nil {
			t.Fatalf("Prepare error: %v", err)
		}
		if action != ActionReused {
			t.Errorf("action = %v, want reused", action)
		}
		if _, err := os.Stat(filepath.Join(root, "keep.txt")); err != nil {
			t.Error("keep.txt should survive")
		}
	})
}
