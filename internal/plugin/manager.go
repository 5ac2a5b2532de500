package plugin

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dshills/hspace/internal/logging"
	"github.com/dshills/hspace/internal/plugin/api"
	plua "github.com/dshills/hspace/internal/plugin/lua"
)

// Manager manages the lifecycle of all loaded scripts.
type Manager struct {
	mu sync.RWMutex

	modules *api.Registry
	logger  *logging.Logger
	timeout time.Duration

	// Loaded scripts by name
	plugins map[string]*Host

	// Load order (for deterministic iteration)
	loadOrder []string
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the manager logger.
func WithLogger(l *logging.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logging.OrNull(l)
	}
}

// WithExecutionTimeout sets the execution timeout for every script.
func WithExecutionTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.timeout = d
	}
}

// NewManager creates a manager that injects modules into every script.
func NewManager(modules *api.Registry, opts ...ManagerOption) *Manager {
	m := &Manager{
		modules: modules,
		logger:  logging.Null(),
		timeout: plua.DefaultExecutionTimeout,
		plugins: make(map[string]*Host),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.WithComponent("plugin")
	return m
}

// Load creates a host for path and loads it.
func (m *Manager) Load(ctx context.Context, path string) (*Host, error) {
	h, err := NewHost(path,
		WithHostModules(m.modules),
		WithHostLogger(m.logger),
		WithHostExecutionTimeout(m.timeout),
	)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if _, exists := m.plugins[h.Name()]; exists {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrAlreadyLoaded, h.Name())
	}
	m.plugins[h.Name()] = h
	m.loadOrder = append(m.loadOrder, h.Name())
	m.mu.Unlock()

	if err := h.Load(ctx); err != nil {
		m.remove(h.Name())
		return nil, err
	}
	m.logger.Info("loaded plugin %s", h.Name())
	return h, nil
}

func (m *Manager) remove(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.plugins, name)
	for i, n := range m.loadOrder {
		if n == name {
			m.loadOrder = append(m.loadOrder[:i], m.loadOrder[i+1:]...)
			break
		}
	}
}

// Get returns a loaded script by name.
func (m *Manager) Get(name string) (*Host, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.plugins[name]
	return h, ok
}

// List returns the names of loaded scripts in load order.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.loadOrder...)
}

func (m *Manager) hosts() []*Host {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hosts := make([]*Host, 0, len(m.loadOrder))
	for _, name := range m.loadOrder {
		hosts = append(hosts, m.plugins[name])
	}
	return hosts
}

// Activate activates one loaded script.
func (m *Manager) Activate(ctx context.Context, name string) error {
	h, ok := m.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPluginNotFound, name)
	}
	return h.Activate(ctx)
}

// ActivateAll activates every loaded script in load order. A failing
// script does not stop the others; all failures are returned joined.
func (m *Manager) ActivateAll(ctx context.Context) error {
	var errs []error
	for _, h := range m.hosts() {
		if h.State() != StateLoaded {
			continue
		}
		if err := h.Activate(ctx); err != nil {
			m.logger.Error("activate %s: %v", h.Name(), err)
			errs = append(errs, fmt.Errorf("activate %s: %w", h.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// DeactivateAll deactivates every active script in reverse load order.
func (m *Manager) DeactivateAll(ctx context.Context) {
	hosts := m.hosts()
	for i := len(hosts) - 1; i >= 0; i-- {
		_ = hosts[i].Deactivate(ctx)
	}
}

// UnloadAll unloads every script in reverse load order and forgets them.
func (m *Manager) UnloadAll(ctx context.Context) {
	hosts := m.hosts()
	for i := len(hosts) - 1; i >= 0; i-- {
		_ = hosts[i].Unload(ctx)
	}

	m.mu.Lock()
	m.plugins = make(map[string]*Host)
	m.loadOrder = nil
	m.mu.Unlock()
}

// Dispose unloads every script.
func (m *Manager) Dispose() {
	m.UnloadAll(context.Background())
}
