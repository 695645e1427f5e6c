package pipelinedoc

import (
	"context"
	"fmt"

	"github.com/pipeforge/core/internal/pipeline"
	"github.com/pipeforge/core/internal/pipelinectx"
	"github.com/pipeforge/core/internal/ports"
	"github.com/pipeforge/core/internal/registry"
)

// Dispatcher is the subset of *registry.Registry the converter needs —
// named separately so tests can supply a fake without constructing a full
// Registry.
type Dispatcher interface {
	Dispatch(ctx context.Context, pc *pipelinectx.Context, name string, args map[string]interface{}) (interface{}, error)
}

var _ Dispatcher = (*registry.Registry)(nil)

// Converter builds the launcher.Converter closure that turns an Evaluated
// document into a *pipeline.Pipeline, dispatching each StepCall against reg
// (spec 6, "the launcher adapts it into a *pipeline.Pipeline via a
// caller-supplied conversion").
func Converter(reg Dispatcher) func(ports.EvaluatedPipeline) (*pipeline.Pipeline, error) {
	return func(evaluated ports.EvaluatedPipeline) (*pipeline.Pipeline, error) {
		e, ok := evaluated.(Evaluated)
		if !ok || e.Doc == nil {
			return nil, pipeline.NewEngineError(pipeline.ErrCodeEvaluation, "evaluated result is not a pipelinedoc.Document", nil, nil)
		}
		doc := e.Doc

		p := &pipeline.Pipeline{
			Name:  doc.Name,
			Agent: convertAgent(doc.Agent),
			Env:   doc.Env,
			Post:  convertPost(reg, doc.Post),
		}
		for _, sd := range doc.Stages {
			p.Stages = append(p.Stages, pipeline.Stage{
				Name:  sd.Name,
				Steps: stepsFunc(reg, sd.Steps),
			})
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		return p, nil
	}
}

func convertAgent(a AgentDoc) pipeline.Agent {
	switch pipeline.AgentKind(a.Kind) {
	case pipeline.AgentDocker:
		return pipeline.DockerAgent(a.Image, a.Tag, a.Host)
	case pipeline.AgentKubernetes:
		return pipeline.KubernetesAgent(a.YAML, a.Label)
	default:
		return pipeline.AnyAgent()
	}
}

// stepsFunc builds the StepsFunc a Stage runs: a sequential, fail-fast
// dispatch of every named step against the current pipeline context (spec
// stage.go, "Dispatch for each step they want to run").
func stepsFunc(reg Dispatcher, calls []StepCall) pipeline.StepsFunc {
	return func(ctx context.Context) error {
		pc, _ := pipelinectx.Current(ctx)
		for _, call := range calls {
			if _, err := reg.Dispatch(ctx, pc, call.Step, call.Args); err != nil {
				return fmt.Errorf("step %q: %w", call.Step, err)
			}
		}
		return nil
	}
}

func convertPost(reg Dispatcher, doc PostDoc) pipeline.PostHookSet {
	return pipeline.PostHookSet{
		Always:  []pipeline.PostHook{postHook(reg, doc.Always)},
		Success: []pipeline.PostHook{postHook(reg, doc.Success)},
		Failure: []pipeline.PostHook{postHook(reg, doc.Failure)},
	}
}

func postHook(reg Dispatcher, calls []StepCall) pipeline.PostHook {
	return func(ctx context.Context) error {
		if len(calls) == 0 {
			return nil
		}
		pc, _ := pipelinectx.Current(ctx)
		for _, call := range calls {
			if _, err := reg.Dispatch(ctx, pc, call.Step, call.Args); err != nil {
				return fmt.Errorf("post step %q: %w", call.Step, err)
			}
		}
		return nil
	}
}
