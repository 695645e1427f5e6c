// Package builtinsteps provides the small set of ports.Step implementations
// pipeforge registers out of the box, so a pipeline document can do useful
// work without an external plugin. Grounded on
// internal/plugins/command/command.go's shell-invocation pattern
// (determine a shell, build an environment, run under the caller's
// context) and internal/scm's go-git retriever.
package builtinsteps

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/pipeforge/core/internal/pipeline"
	"github.com/pipeforge/core/internal/pipelinectx"
	"github.com/pipeforge/core/internal/ports"
)

// ShellStep runs a command line through the host shell. It is Restricted by
// default: the registry's sandbox, when configured, confines its
// filesystem access to the pipeline's workspace root.
type ShellStep struct{}

var _ ports.Step = ShellStep{}

func (ShellStep) Metadata() ports.StepMetadata {
	return ports.StepMetadata{
		Name:          "shell.run",
		Description:   "Runs a command line through the host shell in the pipeline workspace.",
		Category:      ports.StepCategoryGeneral,
		SecurityLevel: ports.SecurityLevelRestricted,
		Parameters: []ports.ParameterSpec{
			{Name: "command", Type: "string"},
			{Name: "workdir", Type: "string", HasDefault: true, Default: ""},
		},
		ReturnType: "string",
	}
}

func (ShellStep) Run(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	command, _ := args["command"].(string)
	if strings.TrimSpace(command) == "" {
		return nil, pipeline.NewBadArgsError("shell.run", "missing required argument \"command\"")
	}

	shell, shellArgs, err := determineShell()
	if err != nil {
		return nil, pipeline.NewEngineError(pipeline.ErrCodeExecution, "determine shell", err, nil)
	}

	cmd := exec.CommandContext(ctx, shell, append(shellArgs, command)...)
	cmd.Env = os.Environ()
	if workdir, _ := args["workdir"].(string); workdir != "" {
		cmd.Dir = workdir
	} else if pc, ok := pipelinectx.Current(ctx); ok && pc.WorkspaceRoot != "" {
		cmd.Dir = pc.WorkspaceRoot
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, pipeline.NewEngineError(pipeline.ErrCodeExecution, fmt.Sprintf("shell.run: %s", command), err, map[string]interface{}{
			"output": string(output),
		})
	}
	return string(output), nil
}

func determineShell() (string, []string, error) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C"}, nil
	}
	if path, err := exec.LookPath("bash"); err == nil {
		return path, []string{"-c"}, nil
	}
	if path, err := exec.LookPath("sh"); err == nil {
		return path, []string{"-c"}, nil
	}
	return "", nil, fmt.Errorf("no suitable shell found")
}
