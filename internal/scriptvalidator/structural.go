package scriptvalidator

import "regexp"

const codeMissingPipelineBlock = "MISSING_PIPELINE_BLOCK"

var pipelineBlockPattern = regexp.MustCompile(`(?m)^\s*pipeline\s*\{`)

// checkStructural ensures the script declares a top-level pipeline block
// (spec 4.G, "Structural").
func checkStructural(content, scriptName string) []Finding {
	if pipelineBlockPattern.MatchString(content) {
		return nil
	}

	loc := Location{File: scriptName, Line: 1, Column: 1}
	return []Finding{{
		Issue: Issue{
			Code:       codeMissingPipelineBlock,
			Message:    "script has no top-level pipeline { ... } block",
			Severity:   SeverityError,
			Location:   loc,
			Suggestion: "wrap the script body in a pipeline { ... } block",
		},
		QuickFix: &QuickFix{
			Title:           "Insert pipeline skeleton",
			Description:     "insert a minimal pipeline block at the start of the script",
			Kind:            QuickFixAddText,
			TargetLocation:  &loc,
			ReplacementText: "pipeline {\n    agent any\n    stages {\n    }\n}\n",
		},
	}}
}
