package launcher

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/pipeforge/core/internal/pipeline"
	"github.com/pipeforge/core/internal/pipelinectx"
	"github.com/pipeforge/core/internal/ports"
	"github.com/pipeforge/core/internal/resource"
	"github.com/pipeforge/core/internal/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEvaluated struct {
	isPipeline bool
}

func (f fakeEvaluated) IsPipeline() bool { return f.isPipeline }

type fakeEvaluator struct {
	evaluated ports.EvaluatedPipeline
	err       error
}

func (f *fakeEvaluator) Evaluate(context.Context, string) (ports.EvaluatedPipeline, error) {
	return f.evaluated, f.err
}

func passthroughConvert(p *pipeline.Pipeline) Converter {
	return func(ports.EvaluatedPipeline) (*pipeline.Pipeline, error) { return p, nil }
}

func newTestPipelineContext() *pipelinectx.Context {
	return pipelinectx.New("p", "exec-1", "/workspace", nil)
}

func TestLaunchRunsPipelineToSuccess(t *testing.T) {
	p := &pipeline.Pipeline{Name: "p", Stages: []pipeline.Stage{
		{Name: "a", Steps: func(context.Context) error { return nil }},
	}}
	rt := runtime.New(nil, nil, nil, nil)
	l := New(&fakeEvaluator{evaluated: fakeEvaluated{isPipeline: true}}, passthroughConvert(p), rt, nil, nil, nil)

	result := l.Launch(context.Background(), "script.pipeline", newTestPipelineContext(), nil, resource.Limits{})
	assert.Equal(t, pipeline.StatusSuccess, result.Status)
	require.Len(t, result.Stages, 1)
}

func TestLaunchSurfacesEvaluationErrorAsFailureWithEmptyStages(t *testing.T) {
	evalErr := errors.New("ERROR unexpected token (script.pipeline:3:7)")
	rt := runtime.New(nil, nil, nil, nil)
	l := New(&fakeEvaluator{err: evalErr}, nil, rt, nil, nil, nil)

	result := l.Launch(context.Background(), "script.pipeline", newTestPipelineContext(), nil, resource.Limits{})
	assert.Equal(t, pipeline.StatusFailure, result.Status)
	assert.Empty(t, result.Stages)
	assert.Contains(t, result.LogsRef, "unexpected token")
	assert.Contains(t, result.LogsRef, "line 3, column 7")
}

func TestLaunchSurfacesNonPipelineEvaluationAsFailure(t *testing.T) {
	rt := runtime.New(nil, nil, nil, nil)
	l := New(&fakeEvaluator{evaluated: fakeEvaluated{isPipeline: false}}, nil, rt, nil, nil, nil)

	result := l.Launch(context.Background(), "script.pipeline", newTestPipelineContext(), nil, resource.Limits{})
	assert.Equal(t, pipeline.StatusFailure, result.Status)
	assert.Empty(t, result.Stages)
}

func TestLaunchWaitsForAllPreHooksBeforeExecuting(t *testing.T) {
	var mu sync.Mutex
	var ran []string
	p := &pipeline.Pipeline{Name: "p", Stages: []pipeline.Stage{
		{Name: "a", Steps: func(context.Context) error {
			mu.Lock()
			ran = append(ran, "stage")
			mu.Unlock()
			return nil
		}},
	}}
	preHook := func(name string) PreHook {
		return func(context.Context, *pipeline.Pipeline) error {
			mu.Lock()
			ran = append(ran, name)
			mu.Unlock()
			return nil
		}
	}

	rt := runtime.New(nil, nil, nil, nil)
	l := New(&fakeEvaluator{evaluated: fakeEvaluated{isPipeline: true}}, passthroughConvert(p), rt, nil,
		[]PreHook{preHook("pre1"), preHook("pre2")}, nil)

	l.Launch(context.Background(), "script.pipeline", newTestPipelineContext(), nil, resource.Limits{})

	require.Len(t, ran, 3)
	assert.Equal(t, "stage", ran[2], "stage must run only after both pre-hooks complete")
	assert.ElementsMatch(t, []string{"pre1", "pre2"}, ran[:2])
}

func TestLaunchFailsWhenAPreHookErrors(t *testing.T) {
	p := &pipeline.Pipeline{Name: "p", Stages: []pipeline.Stage{
		{Name: "a", Steps: func(context.Context) error {
			t.Fatal("stage must not run when a pre-hook fails")
			return nil
		}},
	}}
	failing := func(context.Context, *pipeline.Pipeline) error { return errors.New("pre-hook boom") }

	rt := runtime.New(nil, nil, nil, nil)
	l := New(&fakeEvaluator{evaluated: fakeEvaluated{isPipeline: true}}, passthroughConvert(p), rt, nil,
		[]PreHook{failing}, nil)

	result := l.Launch(context.Background(), "script.pipeline", newTestPipelineContext(), nil, resource.Limits{})
	assert.Equal(t, pipeline.StatusFailure, result.Status)
	assert.Empty(t, result.Stages)
}

func TestLaunchRunsAllPostHooksAfterJobResultIsKnown(t *testing.T) {
	p := &pipeline.Pipeline{Name: "p", Stages: []pipeline.Stage{
		{Name: "a", Steps: func(context.Context) error { return nil }},
	}}

	var mu sync.Mutex
	var seenStatuses []pipeline.StageStatus
	postHook := func(_ context.Context, _ *pipeline.Pipeline, result pipeline.JobResult) error {
		mu.Lock()
		seenStatuses = append(seenStatuses, result.Status)
		mu.Unlock()
		return nil
	}

	rt := runtime.New(nil, nil, nil, nil)
	l := New(&fakeEvaluator{evaluated: fakeEvaluated{isPipeline: true}}, passthroughConvert(p), rt, nil,
		nil, []PostHook{postHook, postHook})

	result := l.Launch(context.Background(), "script.pipeline", newTestPipelineContext(), nil, resource.Limits{})

	require.Len(t, seenStatuses, 2)
	assert.Equal(t, pipeline.StatusSuccess, seenStatuses[0])
	assert.Equal(t, result.Status, seenStatuses[0])
}

func TestLaunchToleratesPanickingHooks(t *testing.T) {
	p := &pipeline.Pipeline{Name: "p", Stages: []pipeline.Stage{
		{Name: "a", Steps: func(context.Context) error { return nil }},
	}}
	panickingPre := func(context.Context, *pipeline.Pipeline) error { panic("pre boom") }
	panickingPost := func(context.Context, *pipeline.Pipeline, pipeline.JobResult) error { panic("post boom") }

	rt := runtime.New(nil, nil, nil, nil)
	l := New(&fakeEvaluator{evaluated: fakeEvaluated{isPipeline: true}}, passthroughConvert(p), rt, nil,
		[]PreHook{panickingPre}, []PostHook{panickingPost})

	result := l.Launch(context.Background(), "script.pipeline", newTestPipelineContext(), nil, resource.Limits{})
	// a panicking pre-hook is treated as a pre-hook error: fatal, empty stages
	assert.Equal(t, pipeline.StatusFailure, result.Status)
	assert.Empty(t, result.Stages)
}
