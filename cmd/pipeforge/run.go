package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pipeforge/core/internal/logging"
	"github.com/pipeforge/core/internal/pipeline"
	"github.com/pipeforge/core/internal/pipelinectx"
	"github.com/pipeforge/core/internal/ports"
	"github.com/pipeforge/core/internal/resource"
)

// runScript executes flags.scriptPath non-interactively and sets the
// process exit code from the resulting job status (spec 6, "exit code 0
// for job Success, non-zero for job Failure, with stderr carrying a
// rendered error banner when script evaluation fails").
func runScript(cmd *cobra.Command, core *logging.Core, flags *rootFlags) error {
	app, err := buildApp(core, flags.configPath, flags.verbose)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	executionID := ports.GenerateCorrelationID()
	ctx = ports.WithCorrelationID(ctx, executionID)

	pc := pipelinectx.New("", executionID, app.EngineCfg.Workspace.Root, app.Locator)
	limits := resource.Limits{}

	result := app.Launcher.Launch(ctx, flags.scriptPath, pc, app.Env, limits)

	for _, stage := range result.Stages {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", stage.Name, stage.Status, stage.WallTime)
	}
	if result.LogsRef != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), result.LogsRef)
	}

	if result.Status != pipeline.StatusSuccess {
		os.Exit(1)
	}
	return nil
}
