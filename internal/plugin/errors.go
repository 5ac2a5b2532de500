package plugin

import "errors"

// Plugin system errors.
var (
	// ErrPluginNotFound is returned when a script is not loaded in the manager.
	ErrPluginNotFound = errors.New("plugin not found")

	// ErrAlreadyLoaded is returned when attempting to load an already loaded script.
	ErrAlreadyLoaded = errors.New("plugin is already loaded")

	// ErrNotLoaded is returned when attempting to use an unloaded script.
	ErrNotLoaded = errors.New("plugin is not loaded")

	// ErrInvalidPlugin is returned when a script path is not a Lua file.
	ErrInvalidPlugin = errors.New("invalid plugin")
)
