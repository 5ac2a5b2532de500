package extension

import "errors"

// Extension lifecycle errors.
var (
	// ErrAlreadyActive is returned when activating an active extension.
	ErrAlreadyActive = errors.New("extension: already active")

	// ErrNotActive is returned when deactivating an inactive extension.
	ErrNotActive = errors.New("extension: not active")

	// ErrNoDispatcher is returned when activating without a dispatcher.
	ErrNoDispatcher = errors.New("extension: context has no dispatcher")
)
