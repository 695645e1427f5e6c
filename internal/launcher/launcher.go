// Package launcher implements the Job Launcher (spec section 4.J): the
// outer orchestrator that turns a script path into a job result by
// evaluating it, converting the result to a domain pipeline, running
// fork/join lifecycle hooks around execution, and delegating the actual
// stage loop to internal/runtime. Grounded on the teacher's
// internal/application/pipeline.ApplyUseCase — a sequential
// prepare-then-execute-then-validate orchestrator that logs and publishes
// an event at every phase boundary and returns immediately on a fatal
// phase failure.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"sync"

	"github.com/pipeforge/core/internal/logging"
	"github.com/pipeforge/core/internal/pipeline"
	"github.com/pipeforge/core/internal/pipelinectx"
	"github.com/pipeforge/core/internal/ports"
	"github.com/pipeforge/core/internal/resource"
	"github.com/pipeforge/core/internal/runtime"
)

// PreHook runs before stage execution begins, given the converted pipeline.
// All registered PreHooks run concurrently and must all complete before the
// runtime is invoked (spec 4.J).
type PreHook func(ctx context.Context, p *pipeline.Pipeline) error

// PostHook runs after the job result is known. All registered PostHooks run
// concurrently; their errors are logged but never alter the already-
// computed job result (spec 4.J, consistent with 4.H.2's hook-error
// wording).
type PostHook func(ctx context.Context, p *pipeline.Pipeline, result pipeline.JobResult) error

// Converter adapts an opaque ports.EvaluatedPipeline into the domain
// pipeline.Pipeline the runtime consumes (spec 6, "the launcher adapts it
// into a *pipeline.Pipeline via a caller-supplied conversion").
type Converter func(ports.EvaluatedPipeline) (*pipeline.Pipeline, error)

// evaluationErrorPattern extracts message/line/column from an evaluator's
// error text (spec 4.J, literal regex).
var evaluationErrorPattern = regexp.MustCompile(`ERROR (.*) \(.*:(\d+):(\d+)\)`)

// Launcher is the concrete Job Launcher. Event publication during execution
// is the runtime's responsibility (StageStart/StageEnd); the launcher only
// wraps it with evaluation and lifecycle hooks, so it holds no publisher of
// its own.
type Launcher struct {
	evaluator ports.ScriptEvaluator
	convert   Converter
	runtime   *runtime.Runtime
	logger    ports.Logger
	preHooks  []PreHook
	postHooks []PostHook
}

// New constructs a Launcher. preHooks/postHooks may be nil.
func New(evaluator ports.ScriptEvaluator, convert Converter, rt *runtime.Runtime, logger ports.Logger, preHooks []PreHook, postHooks []PostHook) *Launcher {
	return &Launcher{
		evaluator: evaluator,
		convert:   convert,
		runtime:   rt,
		logger:    logger,
		preHooks:  preHooks,
		postHooks: postHooks,
	}
}

// Launch evaluates scriptPath, runs it through the runtime under pc, and
// returns the resulting job result (spec 4.J).
func (l *Launcher) Launch(ctx context.Context, scriptPath string, pc *pipelinectx.Context, env ports.EnvironmentManager, limits resource.Limits) pipeline.JobResult {
	evaluated, err := l.evaluator.Evaluate(ctx, scriptPath)
	if err == nil && !evaluated.IsPipeline() {
		err = errors.New("script did not evaluate to a pipeline")
	}
	if err != nil {
		return l.evaluationFailure(ctx, err)
	}

	p, err := l.convert(evaluated)
	if err != nil {
		return l.evaluationFailure(ctx, err)
	}

	if err := l.runPreHooks(ctx, p); err != nil {
		return l.evaluationFailure(ctx, err)
	}

	result := l.runtime.Execute(ctx, p, pc, env, limits)

	l.runPostHooks(ctx, p, result)

	return result
}

// runPreHooks fans out every PreHook concurrently and joins their errors,
// waiting for all to finish before returning (spec 4.J, "must all complete
// before stage execution begins").
func (l *Launcher) runPreHooks(ctx context.Context, p *pipeline.Pipeline) error {
	if len(l.preHooks) == 0 {
		return nil
	}

	errs := make([]error, len(l.preHooks))
	var wg sync.WaitGroup
	for i, hook := range l.preHooks {
		wg.Add(1)
		go func(i int, hook PreHook) {
			defer wg.Done()
			errs[i] = runGuarded(func() error { return hook(ctx, p) })
		}(i, hook)
	}
	wg.Wait()

	return errors.Join(errs...)
}

// runPostHooks fans out every PostHook concurrently and waits for all to
// finish before returning (spec 4.J, "awaited before return"). Errors are
// logged, never surfaced — the job result was already final when these ran.
func (l *Launcher) runPostHooks(ctx context.Context, p *pipeline.Pipeline, result pipeline.JobResult) {
	if len(l.postHooks) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, hook := range l.postHooks {
		wg.Add(1)
		go func(hook PostHook) {
			defer wg.Done()
			if err := runGuarded(func() error { return hook(ctx, p, result) }); err != nil {
				l.logWarn(ctx, "post-execute hook failed", "error", err)
			}
		}(hook)
	}
	wg.Wait()
}

func runGuarded(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("hook panicked: %v", r)
		}
	}()
	return fn()
}

// evaluationFailure builds the pretty error banner spec 4.J calls for and
// returns a Failure job result with an empty stage list.
func (l *Launcher) evaluationFailure(ctx context.Context, err error) pipeline.JobResult {
	message, line, column := parseEvaluationError(err)
	banner := formatBanner(message, line, column)

	l.logError(ctx, "evaluation error", "message", message, "line", line, "column", column)

	return pipeline.JobResult{
		Status:  pipeline.StatusFailure,
		Stages:  nil,
		LogsRef: banner,
	}
}

func parseEvaluationError(err error) (message string, line, column int) {
	matches := evaluationErrorPattern.FindStringSubmatch(err.Error())
	if matches == nil {
		return err.Error(), 0, 0
	}
	line, _ = strconv.Atoi(matches[2])
	column, _ = strconv.Atoi(matches[3])
	return matches[1], line, column
}

// formatBanner renders the evaluation-error text and delegates the
// three-line ASCII framing to internal/logging's shared banner renderer
// (spec 7).
func formatBanner(message string, line, column int) string {
	if line > 0 || column > 0 {
		message = fmt.Sprintf("%s (line %d, column %d)", message, line, column)
	}
	return logging.FormatBanner(message)
}

func (l *Launcher) logError(ctx context.Context, msg string, fields ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Error(ctx, msg, fields...)
}

func (l *Launcher) logWarn(ctx context.Context, msg string, fields ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Warn(ctx, msg, fields...)
}
