// Package validation implements the concrete ports.PostCheckRunner:
// supplemental environment assertions (command_exists, file_exists,
// path_contains) that run after a job result is known, asserting facts
// about the environment the job produced (see SPEC_FULL.md's enrichment
// of spec 4.I). Adapted in place from the teacher's own
// internal/validation package, which ran the identical three checks
// against its config.Validation type; generalized here to
// pipeline.PostCheck/ports.PostCheckSpec and to resolve relative paths
// against the execution's workspace root rather than the process cwd.
package validation

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pipeforge/core/internal/pipeline"
	"github.com/pipeforge/core/internal/ports"
)

// Runner implements ports.PostCheckRunner over the three built-in check
// kinds.
type Runner struct{}

// New constructs a Runner.
func New() *Runner { return &Runner{} }

var _ ports.PostCheckRunner = (*Runner)(nil)

// Run executes every check and returns one outcome per check, in order.
// A failing check does not stop the remaining checks from running — the
// caller aggregates pass/fail across the full set (spec: post-checks are
// supplemental, not gating).
func (r *Runner) Run(ctx context.Context, workspaceRoot string, checks []ports.PostCheckSpec) ([]ports.PostCheckOutcome, error) {
	outcomes := make([]ports.PostCheckOutcome, 0, len(checks))
	for _, c := range checks {
		outcomes = append(outcomes, r.runOne(workspaceRoot, c))
	}
	return outcomes, nil
}

func (r *Runner) runOne(workspaceRoot string, c ports.PostCheckSpec) ports.PostCheckOutcome {
	var err error
	switch pipeline.PostCheckType(c.Type) {
	case pipeline.PostCheckCommandExists:
		err = CheckCommandExists(c.Config["command"])
	case pipeline.PostCheckFileExists:
		err = CheckFileExists(resolve(workspaceRoot, c.Config["path"]))
	case pipeline.PostCheckPathContains:
		err = CheckPathContains(resolve(workspaceRoot, c.Config["file"]), c.Config["text"])
	default:
		err = fmt.Errorf("unknown post-check type %q", c.Type)
	}

	if err != nil {
		return ports.PostCheckOutcome{Type: c.Type, Passed: false, Message: err.Error(), Err: err}
	}
	return ports.PostCheckOutcome{Type: c.Type, Passed: true, Message: "passed"}
}

func resolve(workspaceRoot, path string) string {
	if path == "" || workspaceRoot == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workspaceRoot, path)
}
