package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pipeforge/core/internal/dashboard"
	"github.com/pipeforge/core/internal/eventbus"
	"github.com/pipeforge/core/internal/logging"
	"github.com/pipeforge/core/internal/pipeline"
	"github.com/pipeforge/core/internal/pipelinectx"
	"github.com/pipeforge/core/internal/pipelinedoc"
	"github.com/pipeforge/core/internal/ports"
	"github.com/pipeforge/core/internal/resource"
)

// newDashboardCmd wires the Event Bus into a bubbletea program rendering
// live stage progress, grounded on cmd/streamy's apply.go interactive-mode
// wiring (spawn the program, forward domain events as tea.Msg, block until
// the launch completes, then quit the program).
func newDashboardCmd(core *logging.Core, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Execute the configured script with a live terminal dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.scriptPath == "" {
				return fmt.Errorf("--script is required")
			}
			return runDashboard(cmd, core, flags)
		},
	}
}

func runDashboard(cmd *cobra.Command, core *logging.Core, flags *rootFlags) error {
	app, err := buildApp(core, flags.configPath, flags.verbose)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	evaluated, err := pipelinedoc.NewEvaluator().Evaluate(ctx, flags.scriptPath)
	if err != nil {
		return err
	}
	doc, ok := evaluated.(pipelinedoc.Evaluated)
	if !ok || doc.Doc == nil {
		return fmt.Errorf("script did not evaluate to a pipeline")
	}

	stageNames := make([]string, 0, len(doc.Doc.Stages))
	for _, s := range doc.Doc.Stages {
		stageNames = append(stageNames, s.Name)
	}

	model := dashboard.NewModel(doc.Doc.Name, stageNames)
	program := tea.NewProgram(model)

	unsubStart, _ := app.Events.Subscribe(ports.EventStageStart, forwardStageStart(program))
	unsubEnd, _ := app.Events.Subscribe(ports.EventStageEnd, forwardStageEnd(program))
	unsubAlert, _ := app.Events.Subscribe(ports.EventResourceAlert, forwardResourceAlert(program))
	defer unsubStart.Unsubscribe()
	defer unsubEnd.Unsubscribe()
	defer unsubAlert.Unsubscribe()

	programDone := make(chan error, 1)
	go func() {
		_, runErr := program.Run()
		programDone <- runErr
	}()

	executionID := ports.GenerateCorrelationID()
	runCtx := ports.WithCorrelationID(ctx, executionID)
	pc := pipelinectx.New(doc.Doc.Name, executionID, app.EngineCfg.Workspace.Root, app.Locator)
	result := app.Launcher.Launch(runCtx, flags.scriptPath, pc, app.Env, resource.Limits{})

	program.Send(tea.QuitMsg{})
	if err := <-programDone; err != nil {
		return err
	}

	if result.Status != pipeline.StatusSuccess {
		os.Exit(1)
	}
	return nil
}

func forwardStageStart(program *tea.Program) ports.EventHandler {
	return func(_ context.Context, event ports.DomainEvent) error {
		e, ok := event.(eventbus.StageStart)
		if !ok {
			return nil
		}
		program.Send(dashboard.StageStartMsg{Name: e.Stage, At: e.At})
		return nil
	}
}

func forwardStageEnd(program *tea.Program) ports.EventHandler {
	return func(_ context.Context, event ports.DomainEvent) error {
		e, ok := event.(eventbus.StageEnd)
		if !ok {
			return nil
		}
		program.Send(dashboard.StageEndMsg{Result: pipeline.StageResult{
			Name:   e.Stage,
			Status: pipeline.StageStatus(e.Status),
		}})
		return nil
	}
}

func forwardResourceAlert(program *tea.Program) ports.EventHandler {
	return func(_ context.Context, event ports.DomainEvent) error {
		e, ok := event.(eventbus.ResourceAlert)
		if !ok {
			return nil
		}
		switch {
		case e.Violation != nil:
			program.Send(dashboard.ResourceAlertMsg{
				Message: fmt.Sprintf("%s limit violated: %.2f > %.2f", e.Violation.Type, e.Violation.Current, e.Violation.Limit),
				Fatal:   true,
			})
		case e.Warning != nil:
			program.Send(dashboard.ResourceAlertMsg{
				Message: fmt.Sprintf("%s approaching limit: %.2f / %.2f", e.Warning.Type, e.Warning.Current, e.Warning.Limit),
			})
		}
		return nil
	}
}
