// Package template materializes a project tree into a target directory.
//
// Two strategies exist. The builtin strategy composes layers of an embedded
// file tree (a base layer, one layer per enabled feature, and an entry layer),
// deep-merging package.json along the way. The remote strategy fetches a named
// template archive through the fetch transport. Neither strategy stages its
// output: a failure can leave the target partially written.
package template

import "errors"

// Sentinel errors for the template package.
var (
	// ErrTemplateNotFound indicates a template file does not exist in the tree.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrMissingTemplateKey indicates rendering referenced an unknown key.
	ErrMissingTemplateKey = errors.New("missing template key")

	// ErrUnexpandedToken indicates rendered output still holds template syntax.
	ErrUnexpandedToken = errors.New("unexpanded template token")

	// ErrPathTraversal indicates a path would escape the project root.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrInvalidJSON indicates a JSON file failed to parse.
	ErrInvalidJSON = errors.New("invalid JSON")

	// ErrUnknownTemplate indicates a template identifier missing from the registry.
	ErrUnknownTemplate = errors.New("unknown template")

	// ErrNoFetcher indicates a remote template was requested without a transport.
	ErrNoFetcher = errors.New("no fetch transport configured")
)
