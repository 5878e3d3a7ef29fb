// Package models provides the shared data model of create-project.
//
// # Selection Modes
//
// A run picks its optional capabilities in one of two ways:
//   - [SelectionFeatures]: discrete feature toggles (TypeScript, router, ...)
//     driving the builtin layered template
//   - [SelectionTemplate]: a single named template identifier, either
//     [BuiltinTemplate] or an entry of the remote template registry
//
// # Resolved Configuration
//
// [ResolvedConfig] is the write-once result of configuration resolution.
// It is produced by the resolver and consumed, read-only, by directory
// preparation and template materialization:
//
//	cfg := &models.ResolvedConfig{ProjectName: "demo", PackageName: "demo"}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package models
