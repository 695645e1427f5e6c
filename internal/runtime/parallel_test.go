package runtime

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/pipeforge/core/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutorRunsIndependentTasksConcurrently(t *testing.T) {
	var mu sync.Mutex
	var order []string
	record := func(name string) func(context.Context) error {
		return func(context.Context) error {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
			return nil
		}
	}

	e := NewExecutor()
	results, err := e.Run(context.Background(), []ports.ParallelTask{
		{Name: "a", Run: record("a")},
		{Name: "b", Run: record("b")},
	})
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.ElementsMatch(t, []string{"a", "b"}, order)
}

func TestExecutorRespectsDependencyOrdering(t *testing.T) {
	var mu sync.Mutex
	var order []string
	record := func(name string) func(context.Context) error {
		return func(context.Context) error {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
			return nil
		}
	}

	e := NewExecutor()
	_, err := e.Run(context.Background(), []ports.ParallelTask{
		{Name: "base", Run: record("base")},
		{Name: "dependent", DependsOn: []string{"base"}, Run: record("dependent")},
	})
	require.NoError(t, err)
	require.Len(t, order, 2)
	assert.Equal(t, "base", order[0])
	assert.Equal(t, "dependent", order[1])
}

func TestExecutorWaitsForAllDependenciesBeforeRunningDependent(t *testing.T) {
	var mu sync.Mutex
	finished := map[string]bool{}
	checkDeps := func(name string, deps ...string) func(context.Context) error {
		return func(context.Context) error {
			mu.Lock()
			for _, d := range deps {
				assert.True(t, finished[d], "%s ran before dependency %s finished", name, d)
			}
			finished[name] = true
			mu.Unlock()
			return nil
		}
	}

	e := NewExecutor()
	_, err := e.Run(context.Background(), []ports.ParallelTask{
		{Name: "x", Run: checkDeps("x")},
		{Name: "y", Run: checkDeps("y")},
		{Name: "z", DependsOn: []string{"x", "y"}, Run: checkDeps("z", "x", "y")},
	})
	require.NoError(t, err)
}

func TestExecutorFailsFastOnFirstError(t *testing.T) {
	boom := errors.New("boom")
	e := NewExecutor()
	results, err := e.Run(context.Background(), []ports.ParallelTask{
		{Name: "fails", Run: func(context.Context) error { return boom }},
		{Name: "never-runs", DependsOn: []string{"fails"}, Run: func(context.Context) error {
			t.Fatal("dependent of a failed task must not run")
			return nil
		}},
	})
	require.Error(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "fails", results[0].Name)
}

func TestExecutorRejectsDuplicateTaskNames(t *testing.T) {
	e := NewExecutor()
	_, err := e.Run(context.Background(), []ports.ParallelTask{
		{Name: "dup", Run: func(context.Context) error { return nil }},
		{Name: "dup", Run: func(context.Context) error { return nil }},
	})
	require.Error(t, err)
}

func TestExecutorRejectsUnknownDependency(t *testing.T) {
	e := NewExecutor()
	_, err := e.Run(context.Background(), []ports.ParallelTask{
		{Name: "a", DependsOn: []string{"missing"}, Run: func(context.Context) error { return nil }},
	})
	require.Error(t, err)
}

func TestExecutorRejectsCycle(t *testing.T) {
	e := NewExecutor()
	_, err := e.Run(context.Background(), []ports.ParallelTask{
		{Name: "a", DependsOn: []string{"b"}, Run: func(context.Context) error { return nil }},
		{Name: "b", DependsOn: []string{"a"}, Run: func(context.Context) error { return nil }},
	})
	require.Error(t, err)
}

func TestExecutorEmptyTaskListReturnsNoResults(t *testing.T) {
	e := NewExecutor()
	results, err := e.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
