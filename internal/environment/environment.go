// Package environment provides the reference ports.EnvironmentManager
// implementation: an insertion-order-independent, thread-safe string map
// scoped to a single pipeline execution (spec section 3, "global
// environment ... map of string->string, insertion order irrelevant").
package environment

import (
	"sort"
	"sync"

	"github.com/pipeforge/core/internal/ports"
)

// Manager is a concurrency-safe key/value environment.
type Manager struct {
	mu   sync.RWMutex
	vars map[string]string
}

var _ ports.EnvironmentManager = (*Manager)(nil)

// New constructs a Manager seeded with the given initial variables. The
// caller's map is copied defensively.
func New(initial map[string]string) *Manager {
	m := &Manager{vars: make(map[string]string, len(initial))}
	for k, v := range initial {
		m.vars[k] = v
	}
	return m
}

// Get returns the value for name, or defaultValue if unset.
func (m *Manager) Get(name string, defaultValue string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.vars[name]; ok {
		return v
	}
	return defaultValue
}

// Set assigns value to name.
func (m *Manager) Set(name, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vars[name] = value
}

// Remove deletes name, if present.
func (m *Manager) Remove(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.vars, name)
}

// Snapshot returns a defensive copy of the current environment, suitable
// for embedding in a JobResult (spec 3, "final env snapshot").
func (m *Manager) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.vars))
	for k, v := range m.vars {
		out[k] = v
	}
	return out
}

// Keys returns the currently-set variable names, sorted for deterministic
// iteration (e.g. when rendering a dashboard or log line).
func (m *Manager) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.vars))
	for k := range m.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
