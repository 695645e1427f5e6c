package dashboard

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pipeforge/core/internal/pipeline"
)

// Update handles Bubbletea messages, mirroring the teacher's internal/tui
// Update dispatch.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, nil
	case StageStartMsg:
		m.ensureStage(msg.Name)
		sv := m.stages[msg.Name]
		sv.status = pipeline.StatusRunning
		m.stages[msg.Name] = sv
		return m, nil
	case StageEndMsg:
		name := msg.Result.Name
		if name == "" {
			return m, nil
		}
		m.ensureStage(name)
		existing := m.stages[name]
		alreadyDone := existing.status == pipeline.StatusSuccess || existing.status == pipeline.StatusFailure
		m.stages[name] = stageView{
			name:     name,
			status:   msg.Result.Status,
			wallTime: msg.Result.WallTime,
			output:   msg.Result.Output,
		}
		if !alreadyDone {
			m.completed++
			m.markFinishedIfComplete()
		}
		if msg.Result.Status == pipeline.StatusFailure {
			m.finished = true
		}
		return m, nil
	case ResourceAlertMsg:
		m.alerts = append(m.alerts, msg.Message)
		if msg.Fatal {
			m.finished = true
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancelled = true
			m.finished = true
			return m, nil
		}
	case tea.QuitMsg:
		m.finished = true
		return m, nil
	}

	return m, nil
}
