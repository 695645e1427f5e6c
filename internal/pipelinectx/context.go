// Package pipelinectx implements the Pipeline Context described in spec
// section 4.E: the bundle passed to every step, carrying pipeline identity,
// the service locator, and an ephemeral state holder. Because Go goroutines
// have no first-class coroutine-local storage, the "suspendable accessor"
// the spec calls for is implemented the way spec section 9 sanctions when a
// runtime offers no first-class mechanism: context.Context carries the
// pipeline context explicitly, and every suspension point (every call that
// takes a context.Context) propagates it for free.
package pipelinectx

import (
	"context"

	"github.com/pipeforge/core/internal/locator"
)

// Context is the per-execution bundle owned exclusively by one execution
// (spec 3, "Lifecycle & ownership").
type Context struct {
	PipelineName  string
	ExecutionID   string
	WorkspaceRoot string
	Locator       *locator.Locator
	State         *StateHolder
}

// New creates a Context for the named pipeline execution.
func New(pipelineName, executionID, workspaceRoot string, loc *locator.Locator) *Context {
	return &Context{
		PipelineName:  pipelineName,
		ExecutionID:   executionID,
		WorkspaceRoot: workspaceRoot,
		Locator:       loc,
		State:         NewStateHolder(),
	}
}

type contextKey struct{}

// WithPipelineContext returns a derived context.Context carrying pc, the
// explicit replacement spec section 5 allows via with-pipeline-context.
func WithPipelineContext(ctx context.Context, pc *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, pc)
}

// Current retrieves the pipeline context from the currently executing task
// (spec 4.E, "current-pipeline-context"). It returns nil, false if none is
// present — e.g. outside of a dispatched step call.
func Current(ctx context.Context) (*Context, bool) {
	pc, ok := ctx.Value(contextKey{}).(*Context)
	return pc, ok
}

// MustCurrent panics if no pipeline context is present. Intended for step
// implementations that are only ever invoked through registry.Dispatch,
// which always installs one.
func MustCurrent(ctx context.Context) *Context {
	pc, ok := Current(ctx)
	if !ok {
		panic("pipelinectx: no pipeline context installed on this context.Context")
	}
	return pc
}
