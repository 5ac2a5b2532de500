package plugin

// State represents the lifecycle state of a plugin or extension.
type State int

// Lifecycle states.
const (
	// StateUnloaded - Code is not loaded.
	StateUnloaded State = iota

	// StateLoaded - Code is loaded but not activated.
	StateLoaded

	// StateActivating - Activation is in progress.
	StateActivating

	// StateActive - Active and running.
	StateActive

	// StateDeactivating - Deactivation is in progress.
	StateDeactivating

	// StateError - Activation or loading failed.
	StateError
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoaded:
		return "loaded"
	case StateActivating:
		return "activating"
	case StateActive:
		return "active"
	case StateDeactivating:
		return "deactivating"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// IsUsable returns true if the code can be called (loaded or active).
func (s State) IsUsable() bool {
	return s == StateLoaded || s == StateActive
}
