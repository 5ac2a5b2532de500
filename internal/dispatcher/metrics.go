package dispatcher

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/hspace/internal/dispatcher/handler"
)

// Metrics collects dispatch statistics.
type Metrics struct {
	mu sync.RWMutex

	actions map[string]*ActionMetrics

	totalDispatches uint64
	totalErrors     uint64
	totalPanics     uint64
}

// ActionMetrics holds metrics for a specific action.
type ActionMetrics struct {
	Name          string
	DispatchCount uint64
	NoOpCount     uint64
	ErrorCount    uint64
	TotalDuration time.Duration
	LastStatus    handler.ResultStatus
	LastDispatch  time.Time
}

// Stats is a snapshot of the collected metrics.
type Stats struct {
	TotalDispatches uint64
	TotalErrors     uint64
	TotalPanics     uint64
	Actions         []ActionMetrics
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{actions: make(map[string]*ActionMetrics)}
}

// RecordDispatch records a dispatch event.
func (m *Metrics) RecordDispatch(actionName string, duration time.Duration, status handler.ResultStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	if status == handler.StatusError {
		m.totalErrors++
	}

	am := m.actions[actionName]
	if am == nil {
		am = &ActionMetrics{Name: actionName}
		m.actions[actionName] = am
	}
	am.DispatchCount++
	am.TotalDuration += duration
	am.LastStatus = status
	am.LastDispatch = time.Now()
	switch status {
	case handler.StatusError:
		am.ErrorCount++
	case handler.StatusNoOp:
		am.NoOpCount++
	}
}

// RecordPanic records a recovered handler panic.
func (m *Metrics) RecordPanic(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalPanics++
}

// Stats returns a snapshot sorted by action name.
func (m *Metrics) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Stats{
		TotalDispatches: m.totalDispatches,
		TotalErrors:     m.totalErrors,
		TotalPanics:     m.totalPanics,
		Actions:         make([]ActionMetrics, 0, len(m.actions)),
	}
	for _, am := range m.actions {
		s.Actions = append(s.Actions, *am)
	}
	sort.Slice(s.Actions, func(i, j int) bool {
		return s.Actions[i].Name < s.Actions[j].Name
	})
	return s
}

// Action returns the metrics of one action.
func (m *Metrics) Action(name string) (ActionMetrics, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	am, ok := m.actions[name]
	if !ok {
		return ActionMetrics{}, false
	}
	return *am, true
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = make(map[string]*ActionMetrics)
	m.totalDispatches = 0
	m.totalErrors = 0
	m.totalPanics = 0
}
