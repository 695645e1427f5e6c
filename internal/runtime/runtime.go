// Package runtime implements the Pipeline Runtime (spec section 4.H): the
// sequential, fail-fast stage executor that turns an already-evaluated
// pipeline.Pipeline into a pipeline.JobResult. Grounded on the teacher's
// internal/engine.Execute level-by-level loop, narrowed from DAG levels to
// strict declaration-order sequencing (spec.md 4.H, "For each stage in
// declaration order") since spec.md reserves concurrent fan-out for step
// bodies, not stage-to-stage sequencing (see parallel.go).
package runtime

import (
	"context"
	"time"

	"github.com/pipeforge/core/internal/eventbus"
	"github.com/pipeforge/core/internal/pipeline"
	"github.com/pipeforge/core/internal/pipelinectx"
	"github.com/pipeforge/core/internal/ports"
	"github.com/pipeforge/core/internal/resource"
)

// Runtime executes pipelines (spec 4.H). All dependencies are optional: a
// nil publisher/monitor/logger/postChecks degrades gracefully, which keeps
// unit tests lightweight and mirrors the teacher's habit of nil-checking
// every ambient port before use.
type Runtime struct {
	publisher  ports.EventPublisher
	monitor    *resource.Monitor
	logger     ports.Logger
	postChecks ports.PostCheckRunner
}

// New constructs a Runtime.
func New(publisher ports.EventPublisher, monitor *resource.Monitor, logger ports.Logger, postChecks ports.PostCheckRunner) *Runtime {
	return &Runtime{publisher: publisher, monitor: monitor, logger: logger, postChecks: postChecks}
}

// Execute runs p to completion under pc, implementing spec 4.H's three-step
// algorithm: sequential fail-fast stage loop, pipeline-level post hooks,
// then aggregation. env, if non-nil, is snapshotted into the returned
// JobResult's FinalEnv (spec 3, "final environment snapshot"); callers that
// don't track environment mutation may pass nil.
func (rt *Runtime) Execute(ctx context.Context, p *pipeline.Pipeline, pc *pipelinectx.Context, env ports.EnvironmentManager, limits resource.Limits) pipeline.JobResult {
	stageCtx := ctx
	if pc != nil {
		stageCtx = pipelinectx.WithPipelineContext(ctx, pc)
	}

	stageResults := make([]pipeline.StageResult, 0, len(p.Stages))

	for _, stage := range p.Stages {
		result := rt.runStage(stageCtx, stage, pc, limits)
		stageResults = append(stageResults, result)
		if result.Status == pipeline.StatusFailure {
			break
		}
	}

	overall := pipeline.OverallStatus(stageResults)
	rt.runPipelineHooks(stageCtx, p.Post, overall)

	job := pipeline.JobResult{
		Status:   overall,
		Stages:   stageResults,
		FinalEnv: nil,
	}
	if env != nil {
		job.FinalEnv = env.Snapshot()
	}

	if len(p.Validations) > 0 && rt.postChecks != nil {
		job.PostChecks = rt.runPostChecks(stageCtx, pc, p.Validations)
	}

	return job
}

// runStage times-boxes a single stage under the resource monitor (spec
// 4.H.1): emit StageStart, run the step sequence, emit StageEnd with the
// computed status and duration, then run the stage's own post hook (which
// never overrides the computed status — spec 4.H.2's "hook exceptions ...
// do not override the already-set job status" applies equally here).
func (rt *Runtime) runStage(ctx context.Context, stage pipeline.Stage, pc *pipelinectx.Context, limits resource.Limits) pipeline.StageResult {
	start := time.Now()
	rt.emit(ctx, eventbus.StageStart{Stage: stage.Name, At: start})

	executionID := ""
	if pc != nil {
		executionID = pc.ExecutionID
	}

	status := pipeline.StatusSuccess
	var stepErr error

	if stage.Steps != nil {
		outcome := rt.monitoredRun(ctx, executionID, limits, stage.Steps)
		if !outcome.IsSuccess() {
			status = pipeline.StatusFailure
			stepErr = violationError(outcome.Violation())
		}
	}

	duration := time.Since(start)
	rt.emit(ctx, eventbus.StageEnd{Stage: stage.Name, At: time.Now(), DurationMs: duration.Milliseconds(), Status: string(status)})

	if stage.Post != nil {
		if err := rt.runHook(ctx, stage.Post); err != nil {
			rt.logWarn(ctx, "stage post hook failed", "stage", stage.Name, "error", err)
		}
	}

	return pipeline.StageResult{
		Name:     stage.Name,
		Status:   status,
		WallTime: duration,
		Error:    stepErr,
	}
}

// monitoredRun wraps a StepsFunc in resource.Execute so a hard resource
// violation short-circuits the stage the same way a returned error would.
func (rt *Runtime) monitoredRun(ctx context.Context, executionID string, limits resource.Limits, steps pipeline.StepsFunc) resource.Result[struct{}] {
	if rt.monitor == nil {
		err := runStepsRecovered(ctx, steps)
		if err != nil {
			return resource.Failure[struct{}](eventbus.ResourceLimitViolated{Type: eventbus.ViolationExecutionError})
		}
		return resource.Success(struct{}{}, resource.UsageUpdate{ExecutionID: executionID})
	}
	return resource.Execute(ctx, rt.monitor, executionID, limits, func(innerCtx context.Context) (struct{}, error) {
		return struct{}{}, runStepsRecovered(innerCtx, steps)
	})
}

// runStepsRecovered invokes a stage's step sequence, converting a panic
// into an error exactly once at the stage boundary (spec 7: "unexpected
// exceptions ... caught exactly once ... converted to a Failure stage
// result"). It runs unchanged whether the caller is this goroutine or the
// goroutine resource.Execute spawns to run the operation, since recover only ever
// catches a panic within its own goroutine's call stack.
func runStepsRecovered(ctx context.Context, steps pipeline.StepsFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &pipeline.EngineError{Code: pipeline.ErrCodeExecution, Message: "stage panicked", Context: map[string]interface{}{"recovered": r}}
		}
	}()
	return steps(ctx)
}

// runPipelineHooks runs the pipeline-level post-execution hook set (spec
// 4.H.2): the success-or-failure variant first, then always, matching the
// SPEC_FULL.md open-question decision on hook ordering. Hook errors are
// logged but never change overall — it was already computed from stage
// results alone.
func (rt *Runtime) runPipelineHooks(ctx context.Context, hooks pipeline.PostHookSet, overall pipeline.StageStatus) {
	conditional := hooks.Success
	if overall == pipeline.StatusFailure {
		conditional = hooks.Failure
	}
	for _, hook := range conditional {
		if err := rt.runHook(ctx, hook); err != nil {
			rt.logWarn(ctx, "pipeline post hook failed", "error", err)
		}
	}
	for _, hook := range hooks.Always {
		if err := rt.runHook(ctx, hook); err != nil {
			rt.logWarn(ctx, "pipeline post hook failed", "error", err)
		}
	}
}

func (rt *Runtime) runHook(ctx context.Context, hook pipeline.PostHook) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &pipeline.EngineError{Code: pipeline.ErrCodeExecution, Message: "post hook panicked", Context: map[string]interface{}{"recovered": r}}
		}
	}()
	return hook(ctx)
}

func (rt *Runtime) runPostChecks(ctx context.Context, pc *pipelinectx.Context, checks []pipeline.PostCheck) []pipeline.PostCheckResult {
	workspaceRoot := ""
	if pc != nil {
		workspaceRoot = pc.WorkspaceRoot
	}

	specs := make([]ports.PostCheckSpec, len(checks))
	for i, c := range checks {
		specs[i] = ports.PostCheckSpec{Type: string(c.Type), Config: c.Config}
	}

	outcomes, err := rt.postChecks.Run(ctx, workspaceRoot, specs)
	if err != nil {
		rt.logWarn(ctx, "post-check run failed", "error", err)
		return nil
	}

	results := make([]pipeline.PostCheckResult, len(outcomes))
	for i, o := range outcomes {
		results[i] = pipeline.PostCheckResult{Type: o.Type, Passed: o.Passed, Message: o.Message, Error: o.Err}
	}
	return results
}

func (rt *Runtime) emit(ctx context.Context, event ports.DomainEvent) {
	if rt.publisher == nil {
		return
	}
	_ = rt.publisher.Publish(ctx, event)
}

func (rt *Runtime) logWarn(ctx context.Context, msg string, fields ...interface{}) {
	if rt.logger == nil {
		return
	}
	rt.logger.Warn(ctx, msg, fields...)
}

func violationError(v *eventbus.ResourceLimitViolated) error {
	if v == nil {
		return nil
	}
	return pipeline.NewEngineError(pipeline.ErrCodeResourceLimit, "resource limit violated", nil, map[string]interface{}{
		"type":    string(v.Type),
		"current": v.Current,
		"limit":   v.Limit,
	})
}
