package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipeforge/core/internal/pipeline"
	"github.com/pipeforge/core/internal/pipelinectx"
	"github.com/pipeforge/core/internal/ports"
)

type echoStep struct {
	meta ports.StepMetadata
	fn   func(ctx context.Context, args map[string]interface{}) (interface{}, error)
}

func (s echoStep) Metadata() ports.StepMetadata { return s.meta }
func (s echoStep) Run(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return s.fn(ctx, args)
}

func newEchoStep(name string, params ...ports.ParameterSpec) echoStep {
	return echoStep{
		meta: ports.StepMetadata{Name: name, Category: ports.StepCategoryUtil, SecurityLevel: ports.SecurityLevelTrusted, Parameters: params},
		fn: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			return args, nil
		},
	}
}

func TestRegisterAndGet(t *testing.T) {
	reg := New(nil)
	require.NoError(t, reg.Register(newEchoStep("sh")))

	s, err := reg.Get("sh")
	require.NoError(t, err)
	assert.Equal(t, "sh", s.Metadata().Name)
}

func TestRegisterDuplicateFails(t *testing.T) {
	reg := New(nil)
	require.NoError(t, reg.Register(newEchoStep("sh")))

	err := reg.Register(newEchoStep("sh"))
	require.Error(t, err)
	var engErr *pipeline.EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, pipeline.ErrCodeDuplicate, engErr.Code)
}

func TestGetUnknownStep(t *testing.T) {
	reg := New(nil)
	_, err := reg.Get("nope")
	require.Error(t, err)
	var engErr *pipeline.EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, pipeline.ErrCodeUnknownStep, engErr.Code)
}

func TestDispatchUnknownStep(t *testing.T) {
	reg := New(nil)
	_, err := reg.Dispatch(context.Background(), nil, "nope", nil)
	require.Error(t, err)
	var engErr *pipeline.EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, pipeline.ErrCodeUnknownStep, engErr.Code)
}

func TestDispatchMissingRequiredArg(t *testing.T) {
	reg := New(nil)
	require.NoError(t, reg.Register(newEchoStep("sh", ports.ParameterSpec{Name: "script", Type: "string"})))

	_, err := reg.Dispatch(context.Background(), nil, "sh", nil)
	require.Error(t, err)
	var engErr *pipeline.EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, pipeline.ErrCodeBadArgs, engErr.Code)
}

func TestDispatchUnknownArg(t *testing.T) {
	reg := New(nil)
	require.NoError(t, reg.Register(newEchoStep("sh")))

	_, err := reg.Dispatch(context.Background(), nil, "sh", map[string]interface{}{"bogus": 1})
	require.Error(t, err)
	var engErr *pipeline.EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, pipeline.ErrCodeBadArgs, engErr.Code)
}

func TestDispatchTypeMismatch(t *testing.T) {
	reg := New(nil)
	require.NoError(t, reg.Register(newEchoStep("sh", ports.ParameterSpec{Name: "script", Type: "string"})))

	_, err := reg.Dispatch(context.Background(), nil, "sh", map[string]interface{}{"script": 42})
	require.Error(t, err)
	var engErr *pipeline.EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, pipeline.ErrCodeBadArgs, engErr.Code)
}

func TestDispatchInstallsContextBridge(t *testing.T) {
	reg := New(nil)

	var sawPipelineName string
	probe := echoStep{
		meta: ports.StepMetadata{Name: "probe", SecurityLevel: ports.SecurityLevelTrusted},
		fn: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			sawPipelineName = pipelinectx.MustCurrent(ctx).PipelineName
			return nil, nil
		},
	}
	require.NoError(t, reg.Register(probe))

	pc := pipelinectx.New("demo", "exec-1", "/workspace", nil)
	_, err := reg.Dispatch(context.Background(), pc, "probe", nil)
	require.NoError(t, err)
	assert.Equal(t, "demo", sawPipelineName)
}

func TestDispatchRecordsStats(t *testing.T) {
	reg := New(nil)
	require.NoError(t, reg.Register(newEchoStep("sh")))

	_, err := reg.Dispatch(context.Background(), nil, "sh", nil)
	require.NoError(t, err)

	stats, err := reg.Stats("sh")
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Total)
	assert.EqualValues(t, 1, stats.Successes)
	assert.EqualValues(t, 0, stats.Failures)
}

func TestAggregateStats(t *testing.T) {
	reg := New(nil)
	require.NoError(t, reg.Register(newEchoStep("a")))
	require.NoError(t, reg.Register(newEchoStep("b")))

	_, _ = reg.Dispatch(context.Background(), nil, "a", nil)
	_, _ = reg.Dispatch(context.Background(), nil, "a", nil)

	agg := reg.AggregateStats()
	assert.Equal(t, 2, agg.TotalSteps)
	assert.EqualValues(t, 2, agg.TotalExecutions)
	assert.Equal(t, 1.0, agg.OverallSuccessRate)
}

func TestListSortedByName(t *testing.T) {
	reg := New(nil)
	require.NoError(t, reg.Register(newEchoStep("zeta")))
	require.NoError(t, reg.Register(newEchoStep("alpha")))

	list := reg.List()
	require.Len(t, list, 2)
	assert.Equal(t, "alpha", list[0].Name)
	assert.Equal(t, "zeta", list[1].Name)
}
