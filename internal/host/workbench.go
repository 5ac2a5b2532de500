package host

import (
	"sync"

	"github.com/dshills/hspace/internal/logging"
)

// Workbench is an in-memory Window.
type Workbench struct {
	mu       sync.Mutex
	active   Editor
	messages []string
	logger   *logging.Logger
}

// NewWorkbench creates a window with no active editor.
func NewWorkbench(logger *logging.Logger) *Workbench {
	return &Workbench{logger: logging.OrNull(logger).WithComponent("window")}
}

// SetActive focuses e. Passing nil leaves the window without an editor.
func (w *Workbench) SetActive(e Editor) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.active = e
}

// ActiveEditor implements Window.
func (w *Workbench) ActiveEditor() Editor {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

// ShowInformationMessage implements Window.
func (w *Workbench) ShowInformationMessage(msg string) {
	w.mu.Lock()
	w.messages = append(w.messages, msg)
	w.mu.Unlock()
	w.logger.Info("%s", msg)
}

// Messages returns every message shown so far.
func (w *Workbench) Messages() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.messages))
	copy(out, w.messages)
	return out
}

// LastMessage returns the most recent message, or "".
func (w *Workbench) LastMessage() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.messages) == 0 {
		return ""
	}
	return w.messages[len(w.messages)-1]
}
