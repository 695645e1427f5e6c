package scriptvalidator

import "strings"

const codeDangerousAPI = "DANGEROUS_API_USAGE"

// forbiddenAPIs are substrings that indicate the script is reaching past
// the sandbox to escape to the host (spec 4.G, "Forbidden API").
var forbiddenAPIs = []string{
	"System.exit(",
	"Runtime.getRuntime()",
	"ProcessBuilder(",
	"Class.forName(",
}

// checkForbiddenAPI scans for host-escape call patterns.
func checkForbiddenAPI(lines []string, scriptName string) []Finding {
	var findings []Finding
	for lineIdx, line := range lines {
		for _, api := range forbiddenAPIs {
			col := strings.Index(line, api)
			if col < 0 {
				continue
			}
			loc := Location{File: scriptName, Line: lineIdx + 1, Column: col + 1}
			findings = append(findings, Finding{
				Issue: Issue{
					Code:       codeDangerousAPI,
					Message:    "call to " + api + "..." + ") escapes the pipeline sandbox",
					Severity:   SeverityError,
					Location:   loc,
					Suggestion: "remove the host-escape call; use a registered step instead",
				},
				QuickFix: &QuickFix{
					Title:           "Remove dangerous call",
					Description:     "replace the call with a comment noting the removal",
					Kind:            QuickFixReplaceText,
					TargetLocation:  &loc,
					ReplacementText: "// removed: dangerous host-escape call",
				},
			})
		}
	}
	return findings
}

const codeBlockingSleep = "BLOCKING_SLEEP_DETECTED"

// checkBlockingCalls flags blocking primitives forbidden under the
// cooperative scheduler (spec 5, "Blocking primitives... are forbidden by
// the validator").
func checkBlockingCalls(lines []string, scriptName string) []Finding {
	const pattern = "Thread.sleep("
	var findings []Finding
	for lineIdx, line := range lines {
		col := strings.Index(line, pattern)
		if col < 0 {
			continue
		}
		loc := Location{File: scriptName, Line: lineIdx + 1, Column: col + 1}
		findings = append(findings, Finding{
			Issue: Issue{
				Code:       codeBlockingSleep,
				Message:    "Thread.sleep( blocks the scheduler thread; use the cooperative delay( primitive",
				Severity:   SeverityWarning,
				Location:   loc,
				Suggestion: "replace Thread.sleep( with delay(",
			},
			QuickFix: &QuickFix{
				Title:           "Replace with delay(",
				Description:     "use the cooperative suspension primitive instead of a blocking sleep",
				Kind:            QuickFixReplaceText,
				TargetLocation:  &loc,
				ReplacementText: "delay(",
			},
		})
	}
	return findings
}
