package scriptvalidator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckBracketsBalancedProducesNoFindings(t *testing.T) {
	lines := []string{"pipeline {", "    stages {", "        stage('a') { echo('hi') }", "    }", "}"}
	assert.Empty(t, checkBrackets(lines, "s.pipeline"))
}

func TestCheckBracketsUnmatchedOpenerAppendsAtEndOfScript(t *testing.T) {
	lines := []string{"pipeline {", "    stages {"}
	findings := checkBrackets(lines, "s.pipeline")
	require.Len(t, findings, 2)
	for _, f := range findings {
		assert.Equal(t, codeUnmatchedBraces, f.Issue.Code)
		assert.Equal(t, SeverityError, f.Issue.Severity)
		require.NotNil(t, f.QuickFix)
		assert.Equal(t, QuickFixAddText, f.QuickFix.Kind)
	}
	// closers are inserted in reverse-open order: stages' brace first, then pipeline's
	assert.Equal(t, "}", findings[0].QuickFix.ReplacementText)
}

func TestCheckBracketsStrayCloserFlaggedImmediately(t *testing.T) {
	lines := []string{"pipeline { }", "}"}
	findings := checkBrackets(lines, "s.pipeline")
	require.Len(t, findings, 1)
	assert.Equal(t, codeUnmatchedBraces, findings[0].Issue.Code)
	assert.Equal(t, 2, findings[0].Issue.Location.Line)
	assert.Equal(t, QuickFixRemoveText, findings[0].QuickFix.Kind)
}

func TestCheckBracketsMismatchedPairFlagsStrayCloserAndLeftoverOpener(t *testing.T) {
	lines := []string{"pipeline (}"}
	findings := checkBrackets(lines, "s.pipeline")
	// the '}' doesn't match the open '(' on the stack (stray closer), and the
	// '(' is then left unmatched once the scan ends (unclosed opener)
	require.Len(t, findings, 2)
	assert.Equal(t, QuickFixRemoveText, findings[0].QuickFix.Kind)
	assert.Equal(t, QuickFixAddText, findings[1].QuickFix.Kind)
}

func TestCheckBracketsParenthesesUseDistinctCode(t *testing.T) {
	lines := []string{"foo(bar"}
	findings := checkBrackets(lines, "s.pipeline")
	require.Len(t, findings, 1)
	assert.Equal(t, codeUnmatchedParentheses, findings[0].Issue.Code)
}

func TestEndOfScriptPointsPastTheFinalLine(t *testing.T) {
	line, col := endOfScript([]string{"abc", "de"})
	assert.Equal(t, 2, line)
	assert.Equal(t, 3, col)
}

func TestEndOfScriptHandlesEmptyInput(t *testing.T) {
	line, col := endOfScript(nil)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)
}
