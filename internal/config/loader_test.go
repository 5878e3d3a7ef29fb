package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaywahmatch/create-project/pkg/models"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{KeyCacheDir, KeyArchiveBaseURL, KeySelectionMode, KeyVerbose, KeyNoColor} {
		t.Setenv(EnvPrefix+"_"+strings.ToUpper(key), "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	t.Setenv("HOME", "/tmp/home")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultArchiveBaseURL, cfg.ArchiveBaseURL)
	assert.Equal(t, models.SelectionFeatures, cfg.SelectionMode)
	assert.Equal(t, DefaultCacheDirName, filepath.Base(cfg.CacheDir))
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.NoColor)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CREATE_PROJECT_CACHE_DIR", "/var/cache/cp")
	t.Setenv("CREATE_PROJECT_ARCHIVE_BASE_URL", "http://127.0.0.1:8080/")
	t.Setenv("CREATE_PROJECT_SELECTION_MODE", " Template ")
	t.Setenv("CREATE_PROJECT_VERBOSE", "1")
	t.Setenv("CREATE_PROJECT_NO_COLOR", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/var/cache/cp", cfg.CacheDir)
	assert.Equal(t, "http://127.0.0.1:8080", cfg.ArchiveBaseURL)
	assert.Equal(t, models.SelectionTemplate, cfg.SelectionMode)
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.NoColor)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("CREATE_PROJECT_SELECTION_MODE", "wizard")
	t.Setenv("CREATE_PROJECT_ARCHIVE_BASE_URL", "codeload.github.com")

	_, err := Load()
	require.Error(t, err)

	var verrs *ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs.Errors, 2)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, ErrInvalidSelectionMode)
	assert.ErrorIs(t, err, ErrInvalidBaseURL)
	assert.Contains(t, err.Error(), `field "selection_mode"`)
}

func TestValidationErrorFormatting(t *testing.T) {
	assert.Equal(t, "validation: no errors", (&ValidationErrors{}).Error())

	ve := &ValidationError{Field: "x", Message: "bad", Wrapped: ErrInvalidConfig}
	assert.Equal(t, `validation error: field "x": bad`, ve.Error())
	assert.ErrorIs(t, ve, ErrInvalidConfig)

	ve.Value = 3
	assert.Equal(t, `validation error: field "x": bad (got: 3)`, ve.Error())
}
