package scriptvalidator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckForbiddenAPIFlagsEachKnownPattern(t *testing.T) {
	for _, api := range forbiddenAPIs {
		lines := []string{"    " + api + "0)"}
		findings := checkForbiddenAPI(lines, "s.pipeline")
		require.Len(t, findings, 1, api)
		assert.Equal(t, codeDangerousAPI, findings[0].Issue.Code)
		assert.Equal(t, SeverityError, findings[0].Issue.Severity)
		assert.Equal(t, QuickFixReplaceText, findings[0].QuickFix.Kind)
		assert.Equal(t, "// removed: dangerous host-escape call", findings[0].QuickFix.ReplacementText)
	}
}

func TestCheckForbiddenAPIIgnoresCleanScript(t *testing.T) {
	lines := []string{"echo('hello')", "build()"}
	assert.Empty(t, checkForbiddenAPI(lines, "s.pipeline"))
}

func TestCheckBlockingCallsFlagsThreadSleepAsWarning(t *testing.T) {
	lines := []string{"stage('wait') {", "    Thread.sleep(5000)", "}"}
	findings := checkBlockingCalls(lines, "s.pipeline")
	require.Len(t, findings, 1)
	assert.Equal(t, codeBlockingSleep, findings[0].Issue.Code)
	assert.Equal(t, SeverityWarning, findings[0].Issue.Severity)
	assert.Equal(t, 2, findings[0].Issue.Location.Line)
	assert.Equal(t, "delay(", findings[0].QuickFix.ReplacementText)
}

func TestCheckBlockingCallsIgnoresUnrelatedSleepLikeNames(t *testing.T) {
	lines := []string{"myThread.sleeper(1)"}
	assert.Empty(t, checkBlockingCalls(lines, "s.pipeline"))
}
