package pipelinedoc

import (
	"context"
	"os"

	"github.com/pipeforge/core/internal/pipeline"
	"github.com/pipeforge/core/internal/ports"
)

// Evaluated wraps a parsed Document as the opaque ports.EvaluatedPipeline
// result. A zero-stage document is treated as "not a pipeline" (spec 7,
// "Evaluation error" covers scripts that evaluate to some other result).
type Evaluated struct {
	Doc *Document
}

var _ ports.EvaluatedPipeline = Evaluated{}

func (e Evaluated) IsPipeline() bool {
	return e.Doc != nil && len(e.Doc.Stages) > 0
}

// Evaluator is the reference ports.ScriptEvaluator: it reads scriptPath off
// disk and decodes it as a Document, the way the teacher's YAML config
// loader reads and decodes a file in one step.
type Evaluator struct{}

// NewEvaluator constructs an Evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

var _ ports.ScriptEvaluator = (*Evaluator)(nil)

func (ev *Evaluator) Evaluate(ctx context.Context, scriptPath string) (ports.EvaluatedPipeline, error) {
	if err := ctx.Err(); err != nil {
		return nil, pipeline.NewEngineError(pipeline.ErrCodeCancelled, "evaluation cancelled", err, nil)
	}

	raw, err := os.ReadFile(scriptPath)
	if err != nil {
		return nil, pipeline.NewEngineError(pipeline.ErrCodeEvaluation, "read script", err, map[string]interface{}{"path": scriptPath})
	}

	doc, err := Parse(raw)
	if err != nil {
		return nil, pipeline.NewEngineError(pipeline.ErrCodeEvaluation, "parse script", err, map[string]interface{}{"path": scriptPath})
	}

	return Evaluated{Doc: doc}, nil
}
