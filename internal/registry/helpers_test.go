package registry

import (
	"strings"
	"testing"
)

func TestValidateStepName(t *testing.T) {
	valid := []string{"sh", "checkout_scm", "deployToProd", strings.Repeat("a", stepNameMaxLength)}
	for _, name := range valid {
		if err := ValidateStepName(name); err != nil {
			t.Fatalf("ValidateStepName(%q) returned error: %v", name, err)
		}
	}

	invalid := []string{"", "1leading", "has-hyphen", "has space", strings.Repeat("a", stepNameMaxLength+1)}
	for _, name := range invalid {
		if err := ValidateStepName(name); err == nil {
			t.Fatalf("ValidateStepName(%q) expected error, got nil", name)
		}
	}
}

func TestNormalizeCategory(t *testing.T) {
	if got := NormalizeCategory("  Build  "); got != "build" {
		t.Fatalf("NormalizeCategory(%q) = %q, want %q", "  Build  ", got, "build")
	}
}
