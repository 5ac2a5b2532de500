package host

import (
	"errors"
	"fmt"
)

// Host errors.
var (
	// ErrClosed indicates the document's edit loop has stopped.
	ErrClosed = errors.New("document closed")

	// ErrReadOnly indicates the document rejects edits.
	ErrReadOnly = errors.New("document is read-only")

	// ErrEditsOverlap indicates two edits in one transaction overlap.
	ErrEditsOverlap = errors.New("edits overlap")
)

// OperationError records a failed host operation.
type OperationError struct {
	Op     string // Operation name (e.g., "edit", "setSelection")
	Target string // Document the operation ran against
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *OperationError) Unwrap() error {
	return e.Err
}
