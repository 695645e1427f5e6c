package pipeline

import (
	"context"
	"errors"
	"testing"
)

func noopSteps(context.Context) error { return nil }

func TestPipelineValidate(t *testing.T) {
	p := Pipeline{
		Name: "build",
		Stages: []Stage{
			{Name: "compile", Steps: noopSteps},
			{Name: "test", Steps: noopSteps},
		},
	}

	if err := p.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPipelineValidateDuplicateStage(t *testing.T) {
	p := Pipeline{
		Name: "dup",
		Stages: []Stage{
			{Name: "a", Steps: noopSteps},
			{Name: "a", Steps: noopSteps},
		},
	}

	err := p.Validate()
	if err == nil {
		t.Fatal("expected duplicate error")
	}
	var engErr *EngineError
	if !errors.As(err, &engErr) || engErr.Code != ErrCodeDuplicate {
		t.Fatalf("expected duplicate engine error, got %v", err)
	}
}

func TestPipelineValidateMissingName(t *testing.T) {
	p := Pipeline{Stages: []Stage{{Name: "a", Steps: noopSteps}}}

	err := p.Validate()
	var engErr *EngineError
	if !errors.As(err, &engErr) || engErr.Code != ErrCodeMissing {
		t.Fatalf("expected missing-field engine error, got %v", err)
	}
}

func TestPipelineValidateEmptyStageList(t *testing.T) {
	p := Pipeline{Name: "empty"}
	if err := p.Validate(); err != nil {
		t.Fatalf("empty pipeline should validate (spec 4.H edge case), got %v", err)
	}
}

func TestAgentValidate(t *testing.T) {
	tests := []struct {
		name    string
		agent   Agent
		wantErr bool
	}{
		{"any", AnyAgent(), false},
		{"docker ok", DockerAgent("golang", "1.25", ""), false},
		{"docker missing image", Agent{Kind: AgentDocker}, true},
		{"k8s ok", KubernetesAgent("apiVersion: v1", "worker"), false},
		{"k8s missing yaml", Agent{Kind: AgentKubernetes}, true},
		{"unknown kind", Agent{Kind: "weird"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.agent.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestOverallStatus(t *testing.T) {
	if got := OverallStatus(nil); got != StatusSuccess {
		t.Fatalf("empty stage list should be Success, got %s", got)
	}
	stages := []StageResult{
		{Name: "a", Status: StatusSuccess},
		{Name: "b", Status: StatusFailure},
	}
	if got := OverallStatus(stages); got != StatusFailure {
		t.Fatalf("expected Failure, got %s", got)
	}
}

func TestStageByName(t *testing.T) {
	p := Pipeline{Stages: []Stage{{Name: "build", Steps: noopSteps}}}
	if _, ok := p.StageByName("build"); !ok {
		t.Fatal("expected stage to be found")
	}
	if _, ok := p.StageByName("missing"); ok {
		t.Fatal("expected stage to be absent")
	}
}
