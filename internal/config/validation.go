package config

import (
	"net/url"
	"strings"

	"github.com/kaywahmatch/create-project/pkg/models"
)

// Validate checks the configuration for correctness.
func Validate(cfg *Config) error {
	var errs []ValidationError

	errs = append(errs, validateSelectionMode(cfg.SelectionMode)...)
	errs = append(errs, validateBaseURL(cfg.ArchiveBaseURL)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

func validateSelectionMode(mode models.SelectionMode) []ValidationError {
	if mode.IsValid() {
		return nil
	}
	return []ValidationError{{
		Field:   KeySelectionMode,
		Message: "must be one of: features, template",
		Value:   string(mode),
		Wrapped: ErrInvalidSelectionMode,
	}}
}

func validateBaseURL(raw string) []ValidationError {
	u, err := url.Parse(raw)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return nil
	}
	return []ValidationError{{
		Field:   KeyArchiveBaseURL,
		Message: "must be an absolute http(s) URL",
		Value:   raw,
		Wrapped: ErrInvalidBaseURL,
	}}
}

func normalizeMode(mode models.SelectionMode) models.SelectionMode {
	return models.SelectionMode(strings.ToLower(strings.TrimSpace(string(mode))))
}
