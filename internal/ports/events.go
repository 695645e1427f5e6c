package ports

import "context"

const (
	// EventStageStart is emitted when a stage begins execution (spec 4.B).
	EventStageStart = "stage.start"
	// EventStageEnd is emitted when a stage finishes, successfully or not.
	EventStageEnd = "stage.end"
	// EventFileCreated is emitted by the workspace watcher when a file appears.
	EventFileCreated = "workspace.file_created"
	// EventFileModified is emitted when a watched file's contents change.
	EventFileModified = "workspace.file_modified"
	// EventFileDeleted is emitted when a watched file is removed.
	EventFileDeleted = "workspace.file_deleted"
	// EventResourceAlert is emitted when the resource monitor crosses a
	// warning threshold or detects a hard violation (spec 4.C).
	EventResourceAlert = "resource.alert"
)

// DomainEvent represents a significant occurrence within the pipeline runtime.
// Events carry structured payloads that downstream subscribers (the logging
// core, a dashboard, metrics exporters) use for observability.
type DomainEvent interface {
	EventType() string
	Payload() interface{}
}

// EventPublisher distributes events to interested subscribers. Dispatch is
// synchronous — Publish blocks until all handlers run — so observability
// signals are recorded before the publishing goroutine continues. Handlers
// that need to do slow work should spawn their own goroutine. Implementations
// must be thread-safe.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
}

// EventHandler processes an event of a specific type. Handlers should avoid
// panicking; failures should be surfaced via returned errors so the publisher
// can log diagnostics and continue delivering to remaining subscribers.
type EventHandler func(context.Context, DomainEvent) error

// Subscription represents a registered handler. Callers must invoke
// Unsubscribe to stop receiving events and release resources.
type Subscription interface {
	Unsubscribe()
}
