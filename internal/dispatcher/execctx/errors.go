package execctx

import "errors"

// Context validation errors.
var (
	// ErrMissingWindow indicates the host window is required but not set.
	ErrMissingWindow = errors.New("execution context: window is required")

	// ErrNoEditor indicates there is no active editor.
	ErrNoEditor = errors.New("execution context: no active editor")

	// ErrReadOnly indicates the active editor is read-only.
	ErrReadOnly = errors.New("execution context: editor is read-only")
)
