package plugin

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/hspace/internal/logging"
	"github.com/dshills/hspace/internal/plugin/api"
	plua "github.com/dshills/hspace/internal/plugin/lua"
)

// Host manages a single script's Lua state and lifecycle.
type Host struct {
	mu sync.RWMutex

	name string
	path string

	modules *api.Registry
	logger  *logging.Logger
	timeout time.Duration

	state  *plua.State
	bridge *plua.Bridge

	pluginState State
	err         error
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithHostLogger sets the logger for the script and its print output.
func WithHostLogger(l *logging.Logger) HostOption {
	return func(h *Host) {
		h.logger = logging.OrNull(l)
	}
}

// WithHostExecutionTimeout sets the execution timeout for script calls.
func WithHostExecutionTimeout(d time.Duration) HostOption {
	return func(h *Host) {
		h.timeout = d
	}
}

// WithHostModules sets the API modules injected on load.
func WithHostModules(r *api.Registry) HostOption {
	return func(h *Host) {
		h.modules = r
	}
}

// NewHost creates a host for the script at path. The script is named
// after its file name without the .lua extension.
func NewHost(path string, opts ...HostOption) (*Host, error) {
	if filepath.Ext(path) != ".lua" {
		return nil, fmt.Errorf("%w: %q is not a .lua file", ErrInvalidPlugin, path)
	}

	h := &Host{
		name:        strings.TrimSuffix(filepath.Base(path), ".lua"),
		path:        path,
		logger:      logging.Null(),
		timeout:     plua.DefaultExecutionTimeout,
		pluginState: StateUnloaded,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.WithField("plugin", h.name)
	return h, nil
}

// Name returns the script name.
func (h *Host) Name() string {
	return h.name
}

// Path returns the script path.
func (h *Host) Path() string {
	return h.path
}

// State returns the current lifecycle state.
func (h *Host) State() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.pluginState
}

// Error returns the last lifecycle error.
func (h *Host) Error() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.err
}

// Load creates the Lua state, injects the API modules and runs the script.
func (h *Host) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pluginState != StateUnloaded {
		return ErrAlreadyLoaded
	}

	state, err := plua.NewState(
		plua.WithExecutionTimeout(h.timeout),
		plua.WithLogger(h.logger),
	)
	if err != nil {
		return h.fail(err)
	}

	if h.modules != nil {
		if err := state.WithLState(h.modules.InjectAll); err != nil {
			_ = state.Close()
			return h.fail(err)
		}
	}

	if err := state.DoFile(h.path); err != nil {
		_ = state.Close()
		return h.fail(fmt.Errorf("failed to load plugin %s: %w", h.name, err))
	}

	h.state = state
	h.bridge = plua.NewBridge(state.LuaState())
	h.pluginState = StateLoaded
	h.err = nil
	h.logger.Debug("loaded %s", h.path)
	return nil
}

// fail records err and moves to the error state. Callers hold h.mu.
func (h *Host) fail(err error) error {
	h.pluginState = StateError
	h.err = err
	return err
}

// Activate calls the script's activate function, if any.
func (h *Host) Activate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pluginState != StateLoaded {
		return ErrNotLoaded
	}

	h.pluginState = StateActivating
	if err := h.callOptional("activate"); err != nil {
		return h.fail(err)
	}

	h.pluginState = StateActive
	h.err = nil
	return nil
}

// Deactivate calls the script's deactivate function, if any. The script
// stays loaded.
func (h *Host) Deactivate(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pluginState != StateActive {
		return nil
	}

	h.pluginState = StateDeactivating
	if err := h.callOptional("deactivate"); err != nil {
		h.logger.Warn("deactivate failed: %v", err)
		h.err = err
	}

	h.pluginState = StateLoaded
	return nil
}

// callOptional calls a global lifecycle function when the script defines
// one. Callers hold h.mu.
func (h *Host) callOptional(fn string) error {
	if !h.state.HasFunction(fn) {
		return nil
	}
	_, err := h.state.Call(fn)
	return err
}

// Unload deactivates the script if needed and closes its Lua state.
func (h *Host) Unload(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pluginState == StateUnloaded {
		return nil
	}

	if h.pluginState == StateActive {
		h.pluginState = StateDeactivating
		_ = h.callOptional("deactivate")
	}

	if h.state != nil {
		_ = h.state.Close()
		h.state = nil
	}
	h.bridge = nil
	h.pluginState = StateUnloaded
	h.err = nil
	return nil
}

// Reload unloads and reloads the script, reactivating it if it was active.
func (h *Host) Reload(ctx context.Context) error {
	wasActive := h.State() == StateActive

	if err := h.Unload(ctx); err != nil {
		return err
	}
	if err := h.Load(ctx); err != nil {
		return err
	}
	if wasActive {
		return h.Activate(ctx)
	}
	return nil
}

// Call calls a global Lua function in the script, converting arguments
// and results between Go and Lua.
func (h *Host) Call(fn string, args ...any) ([]any, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.state == nil {
		return nil, ErrNotLoaded
	}

	luaArgs := make([]lua.LValue, len(args))
	for i, arg := range args {
		luaArgs[i] = h.bridge.ToLuaValue(arg)
	}

	results, err := h.state.Call(fn, luaArgs...)
	if err != nil {
		return nil, err
	}

	out := make([]any, len(results))
	for i, r := range results {
		out[i] = h.bridge.ToGoValue(r)
	}
	return out, nil
}

// HasFunction returns true if the script defines the named global function.
func (h *Host) HasFunction(name string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.state == nil {
		return false
	}
	return h.state.HasFunction(name)
}
