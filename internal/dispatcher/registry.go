package dispatcher

import (
	"sort"
	"sync"

	"github.com/dshills/hspace/internal/dispatcher/handler"
)

// Registry manages handler registration by exact action name and by
// namespace.
type Registry struct {
	mu         sync.RWMutex
	handlers   map[string][]handler.Handler // action name -> handlers (sorted by priority)
	namespaces map[string][]handler.Handler // namespace -> handlers
}

// NewRegistry creates a new handler registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers:   make(map[string][]handler.Handler),
		namespaces: make(map[string][]handler.Handler),
	}
}

// Register adds a handler for an action name.
// Multiple handlers can be registered for the same action; they are sorted by priority.
func (r *Registry) Register(actionName string, h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	handlers := append(r.handlers[actionName], h)
	sort.SliceStable(handlers, func(i, j int) bool {
		return handlers[i].Priority() > handlers[j].Priority()
	})
	r.handlers[actionName] = handlers
}

// RegisterNamespace adds a handler consulted for actions in namespace that
// have no exact registration.
func (r *Registry) RegisterNamespace(namespace string, h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.namespaces[namespace] = append(r.namespaces[namespace], h)
}

// Unregister removes all exact handlers for an action name.
func (r *Registry) Unregister(actionName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, actionName)
}

// UnregisterHandler removes a specific handler from an action name and
// from every namespace it was registered in.
func (r *Registry) UnregisterHandler(actionName string, h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers[actionName] = without(r.handlers[actionName], h)
	if len(r.handlers[actionName]) == 0 {
		delete(r.handlers, actionName)
	}
	for ns, hs := range r.namespaces {
		r.namespaces[ns] = without(hs, h)
		if len(r.namespaces[ns]) == 0 {
			delete(r.namespaces, ns)
		}
	}
}

func without(hs []handler.Handler, h handler.Handler) []handler.Handler {
	out := hs[:0:0]
	for _, existing := range hs {
		if existing != h {
			out = append(out, existing)
		}
	}
	return out
}

// Resolve returns the handler for an action: the highest priority exact
// handler, else the first namespace handler that accepts the action.
// Returns nil if none is registered.
func (r *Registry) Resolve(actionName, namespace string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if hs := r.handlers[actionName]; len(hs) > 0 {
		return hs[0]
	}
	for _, h := range r.namespaces[namespace] {
		if h.CanHandle(actionName) {
			return h
		}
	}
	return nil
}

// Has returns true if a handler is registered for the exact action name.
func (r *Registry) Has(actionName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers[actionName]) > 0
}

// List returns all exactly registered action names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of exactly registered actions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// Clear removes all registered handlers.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = make(map[string][]handler.Handler)
	r.namespaces = make(map[string][]handler.Handler)
}
