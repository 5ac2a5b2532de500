package extension

import (
	"sync"

	"github.com/dshills/hspace/internal/dispatcher"
	"github.com/dshills/hspace/internal/logging"
)

// Disposable releases something acquired during activation.
type Disposable interface {
	Dispose()
}

// DisposableFunc adapts a function to Disposable.
type DisposableFunc func()

// Dispose implements Disposable.
func (f DisposableFunc) Dispose() {
	f()
}

// Subscriptions collects disposables to release on deactivation.
type Subscriptions struct {
	mu    sync.Mutex
	items []Disposable
}

// Push adds disposables.
func (s *Subscriptions) Push(items ...Disposable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, items...)
}

// Len returns the number of pending disposables.
func (s *Subscriptions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Dispose releases every disposable in reverse order and empties the list.
func (s *Subscriptions) Dispose() {
	s.mu.Lock()
	items := s.items
	s.items = nil
	s.mu.Unlock()

	for i := len(items) - 1; i >= 0; i-- {
		items[i].Dispose()
	}
}

// Context is what the host hands an extension on activation.
type Context struct {
	Dispatcher    *dispatcher.Dispatcher
	Logger        *logging.Logger
	Subscriptions *Subscriptions

	// Scripts are Lua files loaded and activated after the command is
	// registered.
	Scripts []string
}

// NewContext creates an activation context.
func NewContext(d *dispatcher.Dispatcher, logger *logging.Logger) *Context {
	return &Context{
		Dispatcher:    d,
		Logger:        logging.OrNull(logger),
		Subscriptions: &Subscriptions{},
	}
}

// WithScripts returns the context with scripts set.
func (c *Context) WithScripts(paths []string) *Context {
	c.Scripts = append([]string(nil), paths...)
	return c
}
