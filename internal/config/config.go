package config

import (
	"os"
	"path/filepath"

	"github.com/kaywahmatch/create-project/internal/fetch"
	"github.com/kaywahmatch/create-project/pkg/models"
)

// Default values.
const (
	DefaultCacheDirName   = "create-project"
	DefaultArchiveBaseURL = fetch.DefaultBaseURL
	DefaultSelectionMode  = models.SelectionFeatures
)

// Config holds the tool settings.
type Config struct {
	CacheDir       string               `mapstructure:"cache_dir"`
	ArchiveBaseURL string               `mapstructure:"archive_base_url"`
	SelectionMode  models.SelectionMode `mapstructure:"selection_mode"`
	Verbose        bool                 `mapstructure:"verbose"`
	NoColor        bool                 `mapstructure:"no_color"`
}

// NewDefaultConfig returns a Config populated with defaults.
func NewDefaultConfig() *Config {
	return &Config{
		CacheDir:       DefaultCacheDir(),
		ArchiveBaseURL: DefaultArchiveBaseURL,
		SelectionMode:  DefaultSelectionMode,
	}
}

// DefaultCacheDir returns <user cache dir>/create-project, falling back to
// the temp dir when the user cache dir is unknown.
func DefaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil || base == "" {
		base = os.TempDir()
	}
	return filepath.Join(base, DefaultCacheDirName)
}
