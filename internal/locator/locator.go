// Package locator implements the typed, process-wide service registry
// described in spec section 4.D. It is modelled on the teacher's
// internal/plugin registry (a name-keyed map guarded by a sync.RWMutex) but
// generalized to key on (reflect.Type, qualifier) so any manager interface —
// ParameterManager, EnvironmentManager, SecretManager, WorkspaceManager,
// LoggerManager, EventBus, StateHolder — can be registered and resolved.
package locator

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Priority orders component setup during the registration phase. It has no
// effect on lookup; it exists purely so a launcher can configure managers in
// a deterministic order (spec 4.D, spec 9 "two-phase lifecycle").
type Priority int

const (
	PriorityLowest Priority = iota
	PriorityLow
	PriorityNormal
	PriorityHigh
	PriorityHighest
)

type key struct {
	typ       reflect.Type
	qualifier string
}

type entry struct {
	value    interface{}
	priority Priority
}

// Locator is a typed, thread-safe, process-wide-registrable registry.
// Registration may run concurrently with lookups (spec 5).
type Locator struct {
	mu      sync.RWMutex
	entries map[key]entry
}

// New constructs an empty Locator.
func New() *Locator {
	return &Locator{entries: make(map[key]entry)}
}

// Register binds a value to the type of the supplied pointer-to-interface
// target T under an optional qualifier. Example:
//
//	locator.Register[ports.Logger](loc, myLogger, "")
func Register[T any](l *Locator, value T, qualifier string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[key{typ: typeOf[T](), qualifier: qualifier}] = entry{value: value}
}

// RegisterWithPriority is Register plus a configuration priority used only
// during initialization ordering (spec 4.D).
func RegisterWithPriority[T any](l *Locator, value T, qualifier string, priority Priority) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[key{typ: typeOf[T](), qualifier: qualifier}] = entry{value: value, priority: priority}
}

// Get resolves a previously registered value of type T. It returns a
// *NotFoundError ("no such service") naming the requested type and
// qualifier when nothing matches (spec 4.D, 7).
func Get[T any](l *Locator, qualifier string) (T, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var zero T
	e, ok := l.entries[key{typ: typeOf[T](), qualifier: qualifier}]
	if !ok {
		return zero, newMissingServiceError(typeOf[T](), qualifier)
	}
	v, ok := e.value.(T)
	if !ok {
		return zero, newMissingServiceError(typeOf[T](), qualifier)
	}
	return v, nil
}

// MustGet panics if the service cannot be resolved. Intended for
// initialization paths where a missing core manager is a programmer error.
func MustGet[T any](l *Locator, qualifier string) T {
	v, err := Get[T](l, qualifier)
	if err != nil {
		panic(err)
	}
	return v
}

// Has reports whether a value of type T is registered under qualifier.
func Has[T any](l *Locator, qualifier string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.entries[key{typ: typeOf[T](), qualifier: qualifier}]
	return ok
}

// InitializationOrder returns the registered qualifiers for type T ordered
// from PriorityHighest to PriorityLowest, for use by a launcher performing
// the "configure-in-priority-order" phase (spec 9).
func InitializationOrder[T any](l *Locator) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	t := typeOf[T]()
	type row struct {
		qualifier string
		priority  Priority
	}
	var rows []row
	for k, e := range l.entries {
		if k.typ == t {
			rows = append(rows, row{qualifier: k.qualifier, priority: e.priority})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].priority != rows[j].priority {
			return rows[i].priority > rows[j].priority
		}
		return rows[i].qualifier < rows[j].qualifier
	})

	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.qualifier
	}
	return out
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func newMissingServiceError(t reflect.Type, qualifier string) error {
	name := "<nil>"
	if t != nil {
		name = t.String()
	}
	return &NotFoundError{TypeName: name, Qualifier: qualifier}
}

// NotFoundError is returned by Get when no matching service is registered.
type NotFoundError struct {
	TypeName  string
	Qualifier string
}

func (e *NotFoundError) Error() string {
	if e.Qualifier == "" {
		return fmt.Sprintf("no such service: %s", e.TypeName)
	}
	return fmt.Sprintf("no such service: %s (qualifier=%q)", e.TypeName, e.Qualifier)
}
