package eventbus

import (
	"context"
	"sort"
	"sync"

	"github.com/pipeforge/core/internal/ports"
)

// Bus is the process-wide event publisher. It supports subscription both by
// exact event type (required by ports.EventPublisher) and by an arbitrary
// predicate over the event (spec 4.B's "subscribe(type-predicate)"), and
// optionally renders every publish through a structured logger the way the
// teacher's LoggingPublisher always did — generalized here to be optional
// since not every Bus (e.g. one built for a unit test) needs a logger
// wired in.
type Bus struct {
	logger ports.Logger

	mu     sync.RWMutex
	subs   []subscriptionEntry
	nextID int
}

type subscriptionEntry struct {
	id        int
	predicate func(ports.DomainEvent) bool
	handler   ports.EventHandler
}

// New constructs a Bus. logger may be nil to skip structured logging of
// every publish.
func New(logger ports.Logger) *Bus {
	return &Bus{logger: logger}
}

var _ ports.EventPublisher = (*Bus)(nil)

// Publish delivers event to every matching subscriber synchronously and
// never blocks on slow subscriber work beyond that — a subscriber that
// needs to do slow work is expected to hand off to its own goroutine
// (spec 4.B, "single-threaded cooperative delivery").
func (b *Bus) Publish(ctx context.Context, event ports.DomainEvent) error {
	if event == nil {
		return nil
	}

	b.mu.RLock()
	matching := make([]subscriptionEntry, 0, len(b.subs))
	for _, entry := range b.subs {
		if entry.predicate(event) {
			matching = append(matching, entry)
		}
	}
	b.mu.RUnlock()

	if b.logger != nil {
		b.logger.Info(ctx, "domain event", eventFields(event)...)
	}

	for _, entry := range matching {
		if err := entry.handler(ctx, event); err != nil && b.logger != nil {
			b.logger.Warn(ctx, "event handler failed", "event_type", event.EventType(), "error", err)
		}
	}
	return nil
}

// Subscribe registers a handler for exactly the given event type,
// satisfying ports.EventPublisher.
func (b *Bus) Subscribe(eventType string, handler ports.EventHandler) (ports.Subscription, error) {
	return b.SubscribeMatching(func(e ports.DomainEvent) bool { return e.EventType() == eventType }, handler)
}

// SubscribeMatching registers a handler invoked for every event satisfying
// predicate — the general form spec 4.B describes as "subscribe(type-
// predicate) -> lazy sequence of matching events", realized here as a
// pushed callback rather than a pull sequence since Go has no built-in
// lazy sequence type that composes with select/context cancellation as
// cleanly as a callback does.
func (b *Bus) SubscribeMatching(predicate func(ports.DomainEvent) bool, handler ports.EventHandler) (ports.Subscription, error) {
	if predicate == nil || handler == nil {
		return noopSubscription{}, nil
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscriptionEntry{id: id, predicate: predicate, handler: handler})
	b.mu.Unlock()

	return subscription{cancel: func() { b.unsubscribe(id) }}, nil
}

func (b *Bus) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, entry := range b.subs {
		if entry.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// SubscriberCount reports how many active subscriptions are registered;
// useful for tests and diagnostics.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func eventFields(event ports.DomainEvent) []interface{} {
	fields := []interface{}{"event_type", event.EventType()}
	switch payload := event.Payload().(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(payload))
		for k := range payload {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fields = append(fields, k, payload[k])
		}
	case nil:
	default:
		fields = append(fields, "payload", payload)
	}
	return fields
}

type noopSubscription struct{}

func (noopSubscription) Unsubscribe() {}

type subscription struct {
	cancel func()
}

func (s subscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
	}
}
