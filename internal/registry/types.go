package registry

import "time"

// RegisteredStep is the registry's record for one registered step: its
// name, category and security level from the published metadata, and when
// it was registered (spec 3, "Step metadata"). Adapted from the teacher's
// registry.Pipeline — a persisted record plus runtime status — generalized
// from "a pipeline file on disk" to "a step function in memory":
// RegisteredAt replaces Pipeline.RegisteredAt. Execution stats are not part
// of this record; Registry.Stats reports them.
type RegisteredStep struct {
	Name         string
	Category     string
	SecurityLevel string
	RegisteredAt time.Time
}

// AggregateSnapshot is the JSON-friendly shape AggregateStats serializes to
// when exported to the dashboard or a metrics endpoint.
type AggregateSnapshot struct {
	TotalSteps         int            `json:"total_steps"`
	PerCategory        map[string]int `json:"per_category"`
	PerSecurityLevel   map[string]int `json:"per_security_level"`
	TotalExecutions    uint64         `json:"total_executions"`
	TotalFailures      uint64         `json:"total_failures"`
	OverallSuccessRate float64        `json:"overall_success_rate"`
}
