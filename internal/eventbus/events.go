// Package eventbus implements the typed publish/subscribe core (spec
// 4.B): domain events flow from stage transitions, the workspace watcher,
// and the resource monitor to any interested subscriber (the dashboard,
// metrics exporters, the logging core). Grounded on the teacher's
// internal/infrastructure/events.LoggingPublisher for the subscription-
// table shape (mutex-guarded, id-based unsubscribe), kept as one slice of
// entries and generalized with a predicate form per spec 4.B's "subscribe(type-
// predicate)" contract.
package eventbus

import (
	"time"

	"github.com/pipeforge/core/internal/ports"
)

// StageStart is published when a stage begins execution.
type StageStart struct {
	Stage string
	At    time.Time
}

func (e StageStart) EventType() string   { return ports.EventStageStart }
func (e StageStart) Payload() interface{} { return e }

// StageEnd is published when a stage finishes, successfully or not.
type StageEnd struct {
	Stage      string
	At         time.Time
	DurationMs int64
	Status     string
}

func (e StageEnd) EventType() string   { return ports.EventStageEnd }
func (e StageEnd) Payload() interface{} { return e }

// FileCreated is published by the workspace watcher when a file appears.
type FileCreated struct {
	Path         string
	Size         int64
	CreatedTime  time.Time
	LastModified time.Time
}

func (e FileCreated) EventType() string   { return ports.EventFileCreated }
func (e FileCreated) Payload() interface{} { return e }

// FileModified is published when a watched file's contents change.
type FileModified struct {
	Path         string
	Size         int64
	CreatedTime  time.Time
	LastModified time.Time
}

func (e FileModified) EventType() string   { return ports.EventFileModified }
func (e FileModified) Payload() interface{} { return e }

// FileDeleted is published when a watched file is removed.
type FileDeleted struct {
	Path         string
	CreatedTime  time.Time
	LastModified time.Time
}

func (e FileDeleted) EventType() string   { return ports.EventFileDeleted }
func (e FileDeleted) Payload() interface{} { return e }

// ViolationType names the resource dimension a limit was defined over
// (spec 3, "Resource limits").
type ViolationType string

const (
	ViolationMemory         ViolationType = "Memory"
	ViolationCpuTime        ViolationType = "CpuTime"
	ViolationWallTime       ViolationType = "WallTime"
	ViolationThreads        ViolationType = "Threads"
	ViolationFileHandles    ViolationType = "FileHandles"
	ViolationExecutionError ViolationType = "ExecutionError"
)

// ResourceAlert carries either a threshold warning or a hard violation
// (spec 4.C); exactly one of Warning/Violation is non-nil.
type ResourceAlert struct {
	ExecutionID string
	At          time.Time
	Warning     *ResourceLimitWarning
	Violation   *ResourceLimitViolated
}

func (e ResourceAlert) EventType() string   { return ports.EventResourceAlert }
func (e ResourceAlert) Payload() interface{} { return e }

// ResourceLimitWarning is emitted when usage crosses a configured
// threshold fraction of a limit, before the limit itself is exceeded.
type ResourceLimitWarning struct {
	Type         ViolationType
	Current      float64
	Limit        float64
	ThresholdPct float64
}

// ResourceLimitViolated is emitted when a limit is exceeded outright.
type ResourceLimitViolated struct {
	Type    ViolationType
	Current float64
	Limit   float64
}

var (
	_ ports.DomainEvent = StageStart{}
	_ ports.DomainEvent = StageEnd{}
	_ ports.DomainEvent = FileCreated{}
	_ ports.DomainEvent = FileModified{}
	_ ports.DomainEvent = FileDeleted{}
	_ ports.DomainEvent = ResourceAlert{}
)
