package pipelinectx

import "sync"

type memoEntry struct {
	once  sync.Once
	value interface{}
	err   error
}

// StateHolder is the ephemeral, per-execution accessor described in spec
// section 4.E: memoized computation via Remember, scoped dynamic values via
// Provide/Consume, and Invalidate to drop cached computations.
type StateHolder struct {
	mu     sync.Mutex
	memo   map[string]*memoEntry
	scopes map[string][]interface{}
}

// NewStateHolder constructs an empty StateHolder.
func NewStateHolder() *StateHolder {
	return &StateHolder{
		memo:   make(map[string]*memoEntry),
		scopes: make(map[string][]interface{}),
	}
}

// Remember computes a value once per key and returns the cached result on
// every subsequent call, even if compute would return a different value.
func (s *StateHolder) Remember(key string, compute func() (interface{}, error)) (interface{}, error) {
	s.mu.Lock()
	entry, ok := s.memo[key]
	if !ok {
		entry = &memoEntry{}
		s.memo[key] = entry
	}
	s.mu.Unlock()

	entry.once.Do(func() {
		entry.value, entry.err = compute()
	})
	return entry.value, entry.err
}

// Invalidate drops every memoized computation, allowing the next Remember
// call for each key to recompute.
func (s *StateHolder) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memo = make(map[string]*memoEntry)
}

// Provide pushes value onto the scoped stack for key, runs block, then pops
// it — value is visible to Consume calls made anywhere during block's
// lexical extent (including nested goroutines that share this StateHolder).
func (s *StateHolder) Provide(key string, value interface{}, block func()) {
	s.mu.Lock()
	s.scopes[key] = append(s.scopes[key], value)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		stack := s.scopes[key]
		if len(stack) > 0 {
			s.scopes[key] = stack[:len(stack)-1]
		}
		s.mu.Unlock()
	}()

	block()
}

// Consume returns the topmost value provided for key, or nil if none is
// currently in scope.
func (s *StateHolder) Consume(key string) interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	stack := s.scopes[key]
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}
