package scriptvalidator

import (
	"sort"
	"strings"
)

// CompilationContext carries compile-time metadata a check may consult
// (e.g. which steps are registered, so an unknown-step reference could be
// flagged). Empty by default; spec 4.G names the parameter without
// specifying its shape, so it is modeled as an open extension point rather
// than a fixed struct.
type CompilationContext struct {
	Metadata map[string]interface{}
}

// ExecutionContext carries runtime metadata a check may consult (e.g. the
// workspace root, for checks that need to resolve paths). Same open-
// extension-point reasoning as CompilationContext.
type ExecutionContext struct {
	WorkspaceRoot string
	Metadata      map[string]interface{}
}

// Validate runs every static check against scriptContent and returns a
// Report with stable (line, then column) issue ordering (spec 4.G).
func Validate(scriptContent, scriptName string, _ CompilationContext, _ ExecutionContext) Report {
	lines := strings.Split(scriptContent, "\n")

	var findings []Finding
	findings = append(findings, checkBrackets(lines, scriptName)...)
	findings = append(findings, checkForbiddenAPI(lines, scriptName)...)
	findings = append(findings, checkBlockingCalls(lines, scriptName)...)
	findings = append(findings, checkStructural(scriptContent, scriptName)...)

	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i].Issue.Location, findings[j].Issue.Location
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})

	var warns []Finding
	ok := true
	for _, f := range findings {
		if f.Issue.Severity == SeverityError {
			ok = false
		} else {
			warns = append(warns, f)
		}
	}

	return Report{
		OK:            ok,
		Issues:        findings,
		Warnings:      warns,
		FormattedText: format(scriptName, findings),
	}
}
