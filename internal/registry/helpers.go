package registry

import (
	"fmt"
	"regexp"
	"strings"
)

const stepNameMaxLength = 64

var stepNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*(\.[a-zA-Z][a-zA-Z0-9_]*)*$`)

// ValidateStepName ensures name is safe to use as a registry key and as a
// pipeline-script identifier. Adapted from the teacher's
// registry.ValidatePipelineID — same length-and-pattern guard, generalized
// from kebab-case file-derived IDs to the identifier syntax a step name is
// invoked with from a script: one identifier or several joined by dots, as
// in "shell.run" (spec 4.F, "name (unique)").
func ValidateStepName(name string) error {
	if name == "" {
		return fmt.Errorf("step name cannot be empty")
	}
	if len(name) > stepNameMaxLength {
		return fmt.Errorf("step name %q is too long: maximum length is %d characters", name, stepNameMaxLength)
	}
	if !stepNamePattern.MatchString(name) {
		return fmt.Errorf("invalid step name %q: must match %s", name, stepNamePattern.String())
	}
	return nil
}

// NormalizeCategory lowercases and trims a free-form category string before
// comparing it against the closed StepCategory enum.
func NormalizeCategory(raw string) string {
	return strings.TrimSpace(strings.ToLower(raw))
}
