package logging

import "sync"

// eventPool is the bounded object pool spec 4.A's architecture section
// requires: emitters obtain a MutableLogEvent from it instead of allocating,
// and the consumer loop returns events to it after every registered
// consumer has observed them, so steady-state dispatch allocates nothing on
// the heap once the pool is warm.
type eventPool struct {
	pool sync.Pool
}

func newEventPool() *eventPool {
	return &eventPool{
		pool: sync.Pool{New: func() interface{} { return &MutableLogEvent{Context: make(map[string]interface{}, 4)} }},
	}
}

func (p *eventPool) get() *MutableLogEvent {
	return p.pool.Get().(*MutableLogEvent)
}

func (p *eventPool) put(e *MutableLogEvent) {
	e.reset()
	p.pool.Put(e)
}
