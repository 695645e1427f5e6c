package scriptvalidator

import (
	"fmt"
	"strings"
)

// format renders findings as human-readable text, one line per finding,
// in the order they were given (callers pass the already-sorted slice).
func format(scriptName string, findings []Finding) string {
	if len(findings) == 0 {
		return fmt.Sprintf("%s: no issues found", scriptName)
	}

	var b strings.Builder
	for _, f := range findings {
		fmt.Fprintf(&b, "%s:%d:%d: [%s] %s: %s\n",
			f.Issue.Location.File, f.Issue.Location.Line, f.Issue.Location.Column,
			f.Issue.Severity, f.Issue.Code, f.Issue.Message)
		if f.QuickFix != nil {
			fmt.Fprintf(&b, "    fix: %s\n", f.QuickFix.Description)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
