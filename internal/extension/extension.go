package extension

import (
	"context"
	"fmt"
	"sync"

	"github.com/dshills/hspace/internal/dispatcher/handlers/editor"
	"github.com/dshills/hspace/internal/logging"
	"github.com/dshills/hspace/internal/plugin"
	"github.com/dshills/hspace/internal/plugin/api"
)

// Extension is the delete-horizontal-space extension.
type Extension struct {
	mu    sync.Mutex
	state plugin.State
	ctx   *Context
	log   *logging.Logger

	plugins *plugin.Manager
}

// New creates an inactive extension.
func New() *Extension {
	return &Extension{state: plugin.StateUnloaded, log: logging.Null()}
}

// State returns the lifecycle state.
func (e *Extension) State() plugin.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Plugins returns the script manager, or nil when inactive.
func (e *Extension) Plugins() *plugin.Manager {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.plugins
}

// Activate registers the command and starts the configured scripts.
// On failure everything registered so far is disposed and the extension
// is left in the error state.
func (e *Extension) Activate(ctx *Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == plugin.StateActive {
		return ErrAlreadyActive
	}
	if ctx == nil || ctx.Dispatcher == nil {
		return ErrNoDispatcher
	}
	if ctx.Subscriptions == nil {
		ctx.Subscriptions = &Subscriptions{}
	}

	e.state = plugin.StateActivating
	e.ctx = ctx
	e.log = logging.OrNull(ctx.Logger).WithComponent("extension")

	d := ctx.Dispatcher
	adapter := d.RegisterNamespace(editor.NewHorizontalSpaceHandler())
	ctx.Subscriptions.Push(DisposableFunc(func() {
		d.UnregisterHandler(editor.ActionDeleteHorizontalSpace, adapter)
	}))

	if len(ctx.Scripts) > 0 {
		if err := e.startScripts(ctx); err != nil {
			ctx.Subscriptions.Dispose()
			e.state = plugin.StateError
			return err
		}
	}

	e.state = plugin.StateActive
	e.log.Info("activated extension")
	return nil
}

// startScripts loads and activates ctx.Scripts. Callers hold e.mu.
func (e *Extension) startScripts(ctx *Context) error {
	modules := api.NewRegistry()
	if err := modules.Register(api.NewHSpaceModule(ctx.Dispatcher)); err != nil {
		return err
	}

	m := plugin.NewManager(modules, plugin.WithLogger(ctx.Logger))
	ctx.Subscriptions.Push(m)
	ctx.Subscriptions.Push(DisposableFunc(func() {
		e.plugins = nil
	}))

	bg := context.Background()
	for _, path := range ctx.Scripts {
		if _, err := m.Load(bg, path); err != nil {
			return fmt.Errorf("load script: %w", err)
		}
	}
	if err := m.ActivateAll(bg); err != nil {
		return err
	}
	e.plugins = m
	return nil
}

// Deactivate disposes everything registered during activation.
func (e *Extension) Deactivate() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != plugin.StateActive {
		return ErrNotActive
	}

	e.state = plugin.StateDeactivating
	e.ctx.Subscriptions.Dispose()
	e.state = plugin.StateUnloaded
	e.log.Info("deactivated extension")
	return nil
}
