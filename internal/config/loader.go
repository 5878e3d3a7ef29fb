package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the environment variable prefix for all settings.
const EnvPrefix = "CREATE_PROJECT"

// Setting keys.
const (
	KeyCacheDir       = "cache_dir"
	KeyArchiveBaseURL = "archive_base_url"
	KeySelectionMode  = "selection_mode"
	KeyVerbose        = "verbose"
	KeyNoColor        = "no_color"
)

// Loader reads settings from the environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a Loader bound to the CREATE_PROJECT_* variables.
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := NewDefaultConfig()
	v.SetDefault(KeyCacheDir, d.CacheDir)
	v.SetDefault(KeyArchiveBaseURL, d.ArchiveBaseURL)
	v.SetDefault(KeySelectionMode, string(d.SelectionMode))
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyNoColor, false)

	for _, key := range []string{KeyCacheDir, KeyArchiveBaseURL, KeySelectionMode, KeyVerbose, KeyNoColor} {
		_ = v.BindEnv(key)
	}

	return &Loader{v: v}
}

// Load reads, normalizes and validates the settings.
func (l *Loader) Load() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.SelectionMode = normalizeMode(cfg.SelectionMode)
	cfg.ArchiveBaseURL = strings.TrimRight(strings.TrimSpace(cfg.ArchiveBaseURL), "/")
	if strings.TrimSpace(cfg.CacheDir) == "" {
		cfg.CacheDir = DefaultCacheDir()
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads the settings with a fresh Loader.
func Load() (*Config, error) {
	return NewLoader().Load()
}
