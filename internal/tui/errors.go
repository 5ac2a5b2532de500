package tui

import "errors"

var (
	// ErrInvalidKeyBinding indicates a key binding string could not be parsed.
	ErrInvalidKeyBinding = errors.New("invalid key binding")

	// ErrNoDocument indicates the session was started without an active editor.
	ErrNoDocument = errors.New("no document to edit")
)
