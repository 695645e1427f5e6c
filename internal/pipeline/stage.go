package pipeline

import "context"

// StepsFunc is the lazily-invoked step sequence owned by a Stage. It receives
// the ambient context carrying the current pipeline context (see package
// pipelinectx) and the registry dispatcher closed over by the evaluator that
// built this pipeline description. Implementations call the registry's
// Dispatch for each step they want to run; the function itself decides ordering, branching
// and use of the parallel combinator (see internal/runtime/parallel.go).
type StepsFunc func(ctx context.Context) error

// PostHook runs after a stage or the whole pipeline completes. Hook errors
// are captured by the caller but never override an already-determined
// status (spec section 4.H, step 2).
type PostHook func(ctx context.Context) error

// Stage is an ordered execution unit within a Pipeline. It owns a step
// sequence and optionally a post hook that always runs once the sequence
// returns, regardless of outcome.
type Stage struct {
	Name  string
	Steps StepsFunc
	Post  PostHook
}

// Validate ensures the stage satisfies basic structural invariants. Full
// uniqueness-across-pipeline checks live on Pipeline.Validate.
func (s Stage) Validate() error {
	if s.Name == "" {
		return NewEngineError(ErrCodeMissing, "stage requires a name", nil, nil)
	}
	if s.Steps == nil {
		return NewEngineError(ErrCodeMissing, "stage requires a step sequence", nil, map[string]interface{}{"stage": s.Name})
	}
	return nil
}

// PostHookSet groups the pipeline-level post-execution hooks (spec 4.H.2):
// Always runs unconditionally; Success or Failure runs depending on the
// final job status. Success-or-failure runs before Always.
type PostHookSet struct {
	Always  []PostHook
	Success []PostHook
	Failure []PostHook
}

// Pipeline is the immutable, already-evaluated pipeline description (spec
// section 3). It is produced by an external ports.ScriptEvaluator and handed
// to the runtime untouched.
type Pipeline struct {
	Name   string
	Agent  Agent
	Stages []Stage
	Env    map[string]string
	Post   PostHookSet

	// Validations are an optional, supplemental set of post-execution
	// environment checks (command_exists / file_exists / path_contains),
	// generalized from the teacher's validation package; see SPEC_FULL.md
	// section 4. They run after the job result is computed.
	Validations []PostCheck
}

// Validate ensures the pipeline satisfies its structural invariants: unique,
// non-empty stage names and a valid agent descriptor.
func (p Pipeline) Validate() error {
	if p.Name == "" {
		return NewEngineError(ErrCodeMissing, "pipeline requires a name", nil, nil)
	}
	if err := p.Agent.Validate(); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(p.Stages))
	for _, stage := range p.Stages {
		if err := stage.Validate(); err != nil {
			return err
		}
		if _, ok := seen[stage.Name]; ok {
			return NewEngineError(ErrCodeDuplicate, "duplicate stage name", nil, map[string]interface{}{"stage": stage.Name})
		}
		seen[stage.Name] = struct{}{}
	}
	return nil
}

// StageByName returns the stage with the given name, or false if absent.
func (p Pipeline) StageByName(name string) (Stage, bool) {
	for _, s := range p.Stages {
		if s.Name == name {
			return s, true
		}
	}
	return Stage{}, false
}
