// Package scriptvalidator implements the Script Validator (spec 4.G):
// static checks over pipeline script text that run ahead of execution as
// a gate, producing issues with quick-fix suggestions. Grounded on the
// teacher's internal/domain/pipeline validation style (typed issue codes,
// severity levels, stable ordering) generalized from structural
// config-field checks to free-text script scanning.
package scriptvalidator

// Severity classifies how serious an issue is.
type Severity string

const (
	SeverityError   Severity = "Error"
	SeverityWarning Severity = "Warning"
	SeverityInfo    Severity = "Info"
)

// Location pinpoints where an issue was found.
type Location struct {
	File   string
	Line   int
	Column int
}

// Issue is a single static-analysis finding (spec 3, "Validation issue").
type Issue struct {
	Code       string
	Message    string
	Severity   Severity
	Location   Location
	Suggestion string
}

// QuickFixKind enumerates the kinds of automated remediation a QuickFix
// can describe (spec 3, "Quick fix").
type QuickFixKind string

const (
	QuickFixAddText     QuickFixKind = "AddText"
	QuickFixRemoveText  QuickFixKind = "RemoveText"
	QuickFixReplaceText QuickFixKind = "ReplaceText"
	QuickFixMoveText    QuickFixKind = "MoveText"
	QuickFixReformat    QuickFixKind = "Reformat"
)

// QuickFix describes one candidate automated remediation for an Issue.
type QuickFix struct {
	Title             string
	Description       string
	Kind              QuickFixKind
	TargetLocation    *Location
	ReplacementText   string
	AdditionalChanges []QuickFix
}

// Finding pairs an Issue with its suggested QuickFix, if any.
type Finding struct {
	Issue    Issue
	QuickFix *QuickFix
}

// Report is the display-oriented validator output (spec 4.G, "Contract").
// Issues holds every finding (errors and warnings together) in stable
// (line, column) order; Warnings is the same set filtered to
// non-Error severity, for callers that only want to render those.
type Report struct {
	OK            bool
	Issues        []Finding
	Warnings      []Finding
	FormattedText string
}

// Result is the standardized gate-facing output: either Valid, or Invalid
// carrying the separated errors and warnings (spec 4.G, "Output").
type Result struct {
	Valid    bool
	Errors   []Finding
	Warnings []Finding
}

// ToResult reduces a Report to the standardized gate form, splitting
// findings by severity: Error findings gate the pipeline, Warning and Info
// findings do not.
func (r Report) ToResult() Result {
	var errs, warns []Finding
	for _, f := range r.Issues {
		if f.Issue.Severity == SeverityError {
			errs = append(errs, f)
		} else {
			warns = append(warns, f)
		}
	}
	return Result{Valid: len(errs) == 0, Errors: errs, Warnings: warns}
}
