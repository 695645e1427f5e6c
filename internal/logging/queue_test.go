package logging

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueRoundsCapacityToPowerOfTwo(t *testing.T) {
	q := newQueue(5)
	assert.Equal(t, 8, len(q.buffer))
}

func TestQueueFIFOOrder(t *testing.T) {
	q := newQueue(4)
	for i := 0; i < 4; i++ {
		ok := q.enqueue(&MutableLogEvent{Message: string(rune('a' + i))})
		require.True(t, ok)
	}

	for i := 0; i < 4; i++ {
		e, ok := q.dequeue()
		require.True(t, ok)
		assert.Equal(t, string(rune('a'+i)), e.Message)
	}

	_, ok := q.dequeue()
	assert.False(t, ok)
}

func TestQueueRejectsWhenFull(t *testing.T) {
	q := newQueue(2)
	assert.True(t, q.enqueue(&MutableLogEvent{}))
	assert.True(t, q.enqueue(&MutableLogEvent{}))
	assert.False(t, q.enqueue(&MutableLogEvent{}))
}

func TestQueueConcurrentProducersSingleConsumer(t *testing.T) {
	q := newQueue(1024)
	const producers = 8
	const perProducer = 500

	var wg sync.WaitGroup
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				for !q.enqueue(&MutableLogEvent{}) {
					// spin until a slot frees up; consumer races alongside.
				}
			}
		}()
	}

	received := 0
	done := make(chan struct{})
	go func() {
		for received < producers*perProducer {
			if _, ok := q.dequeue(); ok {
				received++
			}
		}
		close(done)
	}()

	wg.Wait()
	<-done
	assert.Equal(t, producers*perProducer, received)
}
