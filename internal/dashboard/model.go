// Package dashboard implements cmd/pipeforge's live terminal view (spec
// 4.B, "the dashboard"): a bubbletea program subscribing to the Event Bus
// and rendering stage progress, resource alerts, and a final summary.
// Grounded on the teacher's internal/tui single-execution model
// (Model/StepStartMsg/StepCompleteMsg/Update/View), generalized from
// per-step tracking to per-stage tracking since the core's unit of
// reported progress is pipeline.Stage, and from model.StepResult to
// pipeline.StageStatus.
package dashboard

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pipeforge/core/internal/pipeline"
)

// StageStartMsg indicates a stage has started executing.
type StageStartMsg struct {
	Name string
	At   time.Time
}

// StageEndMsg reports that a stage has finished, successfully or not.
type StageEndMsg struct {
	Result pipeline.StageResult
}

// ResourceAlertMsg carries a resource warning or violation for display.
type ResourceAlertMsg struct {
	Message string
	Fatal   bool
}

type tickMsg struct{}

// stageView tracks one stage's rendering state.
type stageView struct {
	name     string
	status   pipeline.StageStatus
	wallTime time.Duration
	output   string
}

// Model is the Bubbletea state for a single pipeline execution.
type Model struct {
	pipelineName string
	stages       map[string]stageView
	order        []string
	alerts       []string
	total        int
	completed    int
	finished     bool
	cancelled    bool
}

// NewModel constructs a dashboard Model for a pipeline with the given
// stage names, in execution order, known ahead of time from the evaluated
// pipeline (spec 4.H, stages run strictly in declared order).
func NewModel(pipelineName string, stageNames []string) Model {
	m := Model{
		pipelineName: pipelineName,
		stages:       make(map[string]stageView, len(stageNames)),
		order:        append([]string(nil), stageNames...),
		total:        len(stageNames),
	}
	for _, name := range stageNames {
		m.stages[name] = stageView{name: name, status: pipeline.StatusNotStarted}
	}
	return m
}

// Init schedules a single tick 100ms after start; Update does not schedule
// further ticks, so later redraws come from externally-driven messages.
func (m Model) Init() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
}

// IsFinished reports whether the dashboard has observed every stage
// complete, a failure, or cancellation.
func (m Model) IsFinished() bool {
	return m.finished
}

func (m *Model) ensureStage(name string) {
	if name == "" {
		return
	}
	if _, exists := m.stages[name]; !exists {
		m.stages[name] = stageView{name: name, status: pipeline.StatusNotStarted}
		m.order = append(m.order, name)
		m.total++
	}
}

func (m *Model) markFinishedIfComplete() {
	if m.total > 0 && m.completed >= m.total {
		m.finished = true
	}
}
