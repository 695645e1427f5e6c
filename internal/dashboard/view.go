package dashboard

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/pipeforge/core/internal/pipeline"
)

// View renders the current execution state, mirroring the teacher's
// internal/tui View composition (title, progress, per-unit list, summary).
func (m Model) View() string {
	var sections []string

	title := titleStyle.Render(fmt.Sprintf("PipeForge • %s", m.title()))
	sections = append(sections, title)

	sections = append(sections, sectionStyle.Render("Progress"), m.renderProgress())

	if len(m.order) > 0 {
		sections = append(sections, sectionStyle.Render("Stages"), m.renderStages())
	}

	if len(m.alerts) > 0 {
		sections = append(sections, sectionStyle.Render("Resource Alerts"), m.renderAlerts())
	}

	summary := m.renderSummary()
	if strings.TrimSpace(summary) != "" {
		sections = append(sections, sectionStyle.Render("Summary"), summaryStyle.Render(summary))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderProgress() string {
	ratio := 0.0
	if m.total > 0 {
		ratio = math.Min(1.0, float64(m.completed)/float64(m.total))
	}
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 30
	label := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%d/%d", m.completed, m.total))
	return lipgloss.JoinHorizontal(lipgloss.Left, label, " ", bar.ViewAs(ratio))
}

func (m Model) renderStages() string {
	var lines []string
	for _, name := range m.order {
		sv := m.stages[name]
		icon := StatusIcon(sv.status)
		line := fmt.Sprintf(" %s %s", icon, sv.name)
		if strings.TrimSpace(sv.output) != "" {
			line = fmt.Sprintf("%s — %s", line, sv.output)
		}
		if sv.wallTime > 0 {
			line = fmt.Sprintf("%s (%s)", line, sv.wallTime.Truncate(10*time.Millisecond))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderAlerts() string {
	var lines []string
	for _, a := range m.alerts {
		lines = append(lines, alertStyle.Render("⚠ "+a))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSummary() string {
	var lines []string
	if m.total > 0 {
		lines = append(lines, fmt.Sprintf("Stages: %d/%d completed", m.completed, m.total))
	}
	switch {
	case m.cancelled:
		lines = append(lines, "Execution cancelled")
	case m.finished && m.completed == m.total:
		lines = append(lines, "Execution finished successfully")
	case m.finished:
		lines = append(lines, "Execution finished with failures")
	}
	return strings.Join(lines, "\n")
}

func (m Model) title() string {
	if strings.TrimSpace(m.pipelineName) != "" {
		return m.pipelineName
	}
	return "Execution"
}

// StatusIcon returns the glyph representing a stage status (teacher's
// StatusIcon generalized from model.StepResult.Status to
// pipeline.StageStatus).
func StatusIcon(status pipeline.StageStatus) string {
	switch status {
	case pipeline.StatusSuccess:
		return successStyle.Render("✓")
	case pipeline.StatusRunning:
		return runningStyle.Render("⏳")
	case pipeline.StatusFailure, pipeline.StatusAborted:
		return failureStyle.Render("✗")
	case pipeline.StatusUnstable:
		return failureStyle.Render("!")
	case pipeline.StatusNotBuilt:
		return pendingStyle.Render("⊘")
	default:
		return pendingStyle.Render("…")
	}
}
