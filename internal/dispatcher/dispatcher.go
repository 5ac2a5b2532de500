package dispatcher

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/dshills/hspace/internal/dispatcher/execctx"
	"github.com/dshills/hspace/internal/dispatcher/handler"
	"github.com/dshills/hspace/internal/host"
	"github.com/dshills/hspace/internal/input"
	"github.com/dshills/hspace/internal/logging"
)

// Dispatcher routes actions to handlers and coordinates execution.
type Dispatcher struct {
	mu sync.RWMutex

	registry *Registry
	config   Config
	metrics  *Metrics

	window host.Window
	logger *logging.Logger
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	d := &Dispatcher{
		registry: NewRegistry(),
		config:   config,
		logger:   logging.Null(),
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetWindow sets the host window handlers act on.
func (d *Dispatcher) SetWindow(w host.Window) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.window = w
}

// Window returns the host window.
func (d *Dispatcher) Window() host.Window {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.window
}

// SetLogger sets the dispatcher logger.
func (d *Dispatcher) SetLogger(l *logging.Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger = logging.OrNull(l).WithComponent("dispatcher")
}

// Logger returns the dispatcher logger.
func (d *Dispatcher) Logger() *logging.Logger {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.logger
}

// Metrics returns the metrics collector, or nil when disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// RegisterHandler registers a handler for an exact action name.
func (d *Dispatcher) RegisterHandler(actionName string, h handler.Handler) {
	d.registry.Register(actionName, h)
}

// RegisterHandlerFunc registers a function for an exact action name.
func (d *Dispatcher) RegisterHandlerFunc(actionName string, fn func(input.Action, *execctx.ExecutionContext) handler.Result) handler.Handler {
	h := handler.NewHandlerFunc(fn)
	d.registry.Register(actionName, h)
	return h
}

// RegisterNamespace registers a namespace handler and returns the adapter
// it was registered as, for later removal with UnregisterHandler.
func (d *Dispatcher) RegisterNamespace(h handler.NamespaceHandler) handler.Handler {
	adapter := handler.NewNamespaceAdapter(h)
	d.registry.RegisterNamespace(h.Namespace(), adapter)
	return adapter
}

// UnregisterHandler removes a handler registered for actionName or as a
// namespace handler.
func (d *Dispatcher) UnregisterHandler(actionName string, h handler.Handler) {
	d.registry.UnregisterHandler(actionName, h)
}

// CanDispatch returns true if some handler accepts the action name.
func (d *Dispatcher) CanDispatch(actionName string) bool {
	return d.registry.Resolve(actionName, input.Action{Name: actionName}.Namespace()) != nil
}

// Dispatch executes an action and returns the handler result.
func (d *Dispatcher) Dispatch(ctx context.Context, action input.Action) handler.Result {
	start := time.Now()
	log := d.Logger().WithFields(map[string]any{
		"action": action.Name,
		"source": action.Source,
	})

	result := d.dispatch(ctx, action, log)

	if d.metrics != nil {
		d.metrics.RecordDispatch(action.Name, time.Since(start), result.Status)
	}

	switch result.Status {
	case handler.StatusError:
		log.Error("action failed: %v", result.Error)
	case handler.StatusNoOp:
		log.Debug("no-op %s", result.Message)
	default:
		log.Debug("ok in %s", time.Since(start))
	}
	return result
}

func (d *Dispatcher) dispatch(ctx context.Context, action input.Action, log *logging.Logger) handler.Result {
	if action.Name == "" {
		return handler.Error(ErrInvalidAction)
	}

	h := d.registry.Resolve(action.Name, action.Namespace())
	if h == nil {
		return handler.Error(fmt.Errorf("%w: %s", ErrNoHandler, action.Name))
	}

	count := action.Count
	if d.config.MaxRepeatCount > 0 && count > d.config.MaxRepeatCount {
		count = d.config.MaxRepeatCount
	}

	execCtx := execctx.New().
		WithContext(ctx).
		WithWindow(d.Window()).
		WithLogger(log).
		WithCount(count)

	if !d.config.RecoverFromPanic {
		return h.Handle(action, execCtx)
	}
	return d.executeWithRecovery(h, action, execCtx)
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, action input.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			ctx.Log().Error("handler panic: %v\n%s", r, buf[:n])

			if d.metrics != nil {
				d.metrics.RecordPanic(action.Name)
			}
			result = handler.Error(fmt.Errorf("%w: %v", ErrPanic, r))
		}
	}()
	return h.Handle(action, ctx)
}
