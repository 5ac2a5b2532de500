package app

import "errors"

var (
	// ErrShutdown indicates the application has already been shut down.
	ErrShutdown = errors.New("application shut down")

	// ErrWatching indicates a config watcher is already running.
	ErrWatching = errors.New("config watcher already running")
)

// InitError reports which component failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}
