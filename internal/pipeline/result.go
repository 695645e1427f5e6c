package pipeline

import "time"

// StageStatus enumerates the lifecycle states of a StageResult (spec 3).
type StageStatus string

const (
	StatusNotStarted StageStatus = "NotStarted"
	StatusRunning    StageStatus = "Running"
	StatusSuccess    StageStatus = "Success"
	StatusFailure    StageStatus = "Failure"
	StatusUnstable   StageStatus = "Unstable"
	StatusAborted    StageStatus = "Aborted"
	StatusNotBuilt   StageStatus = "NotBuilt"
)

// StageResult captures the outcome of a stage that was actually started. It
// is created exactly once per started stage and appended, in execution
// order, to JobResult.Stages.
type StageResult struct {
	Name     string
	Status   StageStatus
	WallTime time.Duration
	Output   string
	Error    error
}

// IsSuccess reports whether the stage completed without failure.
func (r StageResult) IsSuccess() bool {
	return r.Status == StatusSuccess
}

// PostCheckResult captures the outcome of one supplemental post-execution
// validation (see SPEC_FULL.md section 4).
type PostCheckResult struct {
	Type    string
	Passed  bool
	Message string
	Error   error
}

// JobResult is the structured outcome of a full pipeline execution (spec 3).
type JobResult struct {
	Status     StageStatus
	Stages     []StageResult
	FinalEnv   map[string]string
	LogsRef    string
	PostChecks []PostCheckResult
}

// OverallStatus computes Failure if any stage result is Failure or Aborted,
// else Success (spec 3, "JobResult").
func OverallStatus(stages []StageResult) StageStatus {
	for _, s := range stages {
		if s.Status == StatusFailure || s.Status == StatusAborted {
			return StatusFailure
		}
	}
	return StatusSuccess
}
