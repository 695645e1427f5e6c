package ports

import "context"

// PostCheckRunner executes post-execution validations and aggregates their
// results (spec 4.pipeline "Validations", spec 4.J). Implementations should
// run independent checks concurrently where safe.
type PostCheckRunner interface {
	Run(ctx context.Context, workspaceRoot string, checks []PostCheckSpec) ([]PostCheckOutcome, error)
}

// PostCheckSpec is the wire shape a PostCheckRunner consumes — decoupled from
// the pipeline package's own PostCheck type so ports never imports domain
// packages.
type PostCheckSpec struct {
	Type   string
	Config map[string]string
}

// PostCheckOutcome is the result of running a single PostCheckSpec.
type PostCheckOutcome struct {
	Type    string
	Passed  bool
	Message string
	Err     error
}
