package defs

import "io/fs"

// Entries whose sole presence does not block reusing a target directory.
// They are never removed when a directory is emptied.
const (
	// GitDir is the version-control metadata directory.
	GitDir = ".git"

	// EditorConfig is the editor configuration file.
	EditorConfig = ".editorconfig"
)

// IgnorableEntries is the allow-list of entries preserved by directory emptying.
var IgnorableEntries = []string{GitDir, EditorConfig}

// IsIgnorable reports whether name is on the ignorable allow-list.
func IsIgnorable(name string) bool {
	for _, e := range IgnorableEntries {
		if e == name {
			return true
		}
	}
	return false
}

// Fallback names.
const (
	// DefaultProjectName is used when no target directory argument is given.
	DefaultProjectName = "vue-project"

	// FallbackPackageName replaces names made only of disallowed characters.
	FallbackPackageName = "vue-project"
)

// Common file names of generated projects.
const (
	PackageJSON = "package.json"
	ReadmeMD    = "README.md"
)

// Permissions for created directories and files.
const (
	DirPerm  fs.FileMode = 0o755
	FilePerm fs.FileMode = 0o644
	ExecPerm fs.FileMode = 0o755
)
