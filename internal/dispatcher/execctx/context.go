// Package execctx provides the execution context for action handlers.
package execctx

import (
	"context"

	"github.com/dshills/hspace/internal/host"
	"github.com/dshills/hspace/internal/logging"
)

// readOnlyEditor is implemented by editors that can refuse edits.
type readOnlyEditor interface {
	IsReadOnly() bool
}

// ExecutionContext provides context for action execution.
type ExecutionContext struct {
	// Context bounds blocking host calls such as edit application.
	Context context.Context

	// Window provides the active editor and user messages.
	Window host.Window

	// Logger is the handler logger.
	Logger *logging.Logger

	// Count is the repeat count (1 if not specified).
	Count int

	// Data holds handler-specific context data.
	Data map[string]any
}

// New creates a new execution context.
func New() *ExecutionContext {
	return &ExecutionContext{
		Context: context.Background(),
		Logger:  logging.Null(),
		Count:   1,
		Data:    make(map[string]any),
	}
}

// WithContext returns the context with the Go context set.
func (ctx *ExecutionContext) WithContext(c context.Context) *ExecutionContext {
	if c != nil {
		ctx.Context = c
	}
	return ctx
}

// WithWindow returns the context with the window set.
func (ctx *ExecutionContext) WithWindow(w host.Window) *ExecutionContext {
	ctx.Window = w
	return ctx
}

// WithLogger returns the context with the logger set.
func (ctx *ExecutionContext) WithLogger(l *logging.Logger) *ExecutionContext {
	ctx.Logger = logging.OrNull(l)
	return ctx
}

// WithCount returns the context with repeat count set.
func (ctx *ExecutionContext) WithCount(count int) *ExecutionContext {
	if count > 0 {
		ctx.Count = count
	}
	return ctx
}

// GetCount returns the repeat count, defaulting to 1.
func (ctx *ExecutionContext) GetCount() int {
	if ctx.Count <= 0 {
		return 1
	}
	return ctx.Count
}

// Ctx returns the Go context, never nil.
func (ctx *ExecutionContext) Ctx() context.Context {
	if ctx.Context == nil {
		return context.Background()
	}
	return ctx.Context
}

// Log returns the logger, never nil.
func (ctx *ExecutionContext) Log() *logging.Logger {
	return logging.OrNull(ctx.Logger)
}

// ActiveEditor returns the window's active editor, or nil.
func (ctx *ExecutionContext) ActiveEditor() host.Editor {
	if ctx.Window == nil {
		return nil
	}
	return ctx.Window.ActiveEditor()
}

// SetData sets a context data value.
func (ctx *ExecutionContext) SetData(key string, value any) {
	if ctx.Data == nil {
		ctx.Data = make(map[string]any)
	}
	ctx.Data[key] = value
}

// GetData retrieves a context data value.
func (ctx *ExecutionContext) GetData(key string) (any, bool) {
	if ctx.Data == nil {
		return nil, false
	}
	v, ok := ctx.Data[key]
	return v, ok
}

// Validate checks that the context has all required components.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Window == nil {
		return ErrMissingWindow
	}
	return nil
}

// ValidateForEdit checks that the context has a writable active editor.
func (ctx *ExecutionContext) ValidateForEdit() error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	ed := ctx.ActiveEditor()
	if ed == nil {
		return ErrNoEditor
	}
	if ro, ok := ed.(readOnlyEditor); ok && ro.IsReadOnly() {
		return ErrReadOnly
	}
	return nil
}
