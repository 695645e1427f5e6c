package resource

import "github.com/pipeforge/core/internal/eventbus"

// Result is the tagged outcome of an operation executed under the monitor
// (spec 4.C, "Result wrapping"): exactly one of Success/Failure holds.
type Result[T any] struct {
	ok        bool
	value     T
	stats     UsageUpdate
	violation *eventbus.ResourceLimitViolated
}

// Success wraps a completed value together with the final usage stats.
func Success[T any](value T, stats UsageUpdate) Result[T] {
	return Result[T]{ok: true, value: value, stats: stats}
}

// Failure wraps a hard limit violation that short-circuited the operation.
func Failure[T any](violation eventbus.ResourceLimitViolated) Result[T] {
	return Result[T]{ok: false, violation: &violation}
}

func (r Result[T]) IsSuccess() bool { return r.ok }

// Value returns the wrapped value; on a Failure it returns T's zero value,
// so IsSuccess tells the two cases apart.
func (r Result[T]) Value() T { return r.value }

func (r Result[T]) Stats() UsageUpdate { return r.stats }

// Violation returns the recorded violation, or nil on success.
func (r Result[T]) Violation() *eventbus.ResourceLimitViolated { return r.violation }
