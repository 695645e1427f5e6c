package scriptvalidator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validate(t *testing.T, content string) Report {
	t.Helper()
	return Validate(content, "test.pipeline", CompilationContext{}, ExecutionContext{})
}

func TestValidScriptHasNoIssues(t *testing.T) {
	r := validate(t, "pipeline {\n    agent any\n    stages {\n    }\n}\n")
	assert.True(t, r.OK)
	assert.Empty(t, r.Issues)
}

func TestMissingPipelineBlockIsFlagged(t *testing.T) {
	r := validate(t, "stage('build') { }")
	require.False(t, r.OK)
	require.Len(t, r.Issues, 1)
	assert.Equal(t, codeMissingPipelineBlock, r.Issues[0].Issue.Code)
	assert.Equal(t, 1, r.Issues[0].Issue.Location.Line)
	require.NotNil(t, r.Issues[0].QuickFix)
	assert.Equal(t, QuickFixAddText, r.Issues[0].QuickFix.Kind)
}

func TestUnmatchedOpenBraceIsFlaggedWithInsertFix(t *testing.T) {
	r := validate(t, "pipeline {\n    agent any\n")
	require.False(t, r.OK)

	var found bool
	for _, f := range r.Issues {
		if f.Issue.Code == codeUnmatchedBraces {
			found = true
			require.NotNil(t, f.QuickFix)
			assert.Equal(t, QuickFixAddText, f.QuickFix.Kind)
			assert.Equal(t, "}", f.QuickFix.ReplacementText)
		}
	}
	assert.True(t, found, "expected an UNMATCHED_BRACES finding")
}

func TestStrayClosingParenIsFlagged(t *testing.T) {
	r := validate(t, "pipeline { agent any )")
	var found bool
	for _, f := range r.Issues {
		if f.Issue.Code == codeUnmatchedParentheses {
			found = true
			assert.Equal(t, QuickFixRemoveText, f.QuickFix.Kind)
		}
	}
	assert.True(t, found)
}

func TestDangerousAPIUsageIsFlaggedAsError(t *testing.T) {
	r := validate(t, "pipeline {\n    System.exit(1)\n}\n")
	var found bool
	for _, f := range r.Issues {
		if f.Issue.Code == codeDangerousAPI {
			found = true
			assert.Equal(t, SeverityError, f.Issue.Severity)
			assert.Equal(t, 2, f.Issue.Location.Line)
		}
	}
	assert.True(t, found)
	assert.False(t, r.OK)
}

func TestBlockingSleepIsFlaggedAsWarningNotError(t *testing.T) {
	r := validate(t, "pipeline {\n    Thread.sleep(1000)\n}\n")
	require.Len(t, r.Warnings, 1)
	assert.Equal(t, codeBlockingSleep, r.Warnings[0].Issue.Code)
	assert.Equal(t, SeverityWarning, r.Warnings[0].Issue.Severity)
	// a warning alone does not fail the gate
	assert.True(t, r.ToResult().Valid)
}

func TestIssuesAreOrderedByLineThenColumn(t *testing.T) {
	content := "pipeline {\n    System.exit(1)\n    Thread.sleep(1)\n}\n"
	r := validate(t, content)
	require.GreaterOrEqual(t, len(r.Issues), 2)
	for i := 1; i < len(r.Issues); i++ {
		prev, cur := r.Issues[i-1].Issue.Location, r.Issues[i].Issue.Location
		assert.True(t, prev.Line < cur.Line || (prev.Line == cur.Line && prev.Column <= cur.Column))
	}
}

func TestToResultSeparatesErrorsAndWarnings(t *testing.T) {
	content := "stage('x') { Thread.sleep(1) }"
	r := validate(t, content)
	result := r.ToResult()
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
	assert.NotEmpty(t, result.Warnings)
}
