package logging

import (
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	minBannerWidth     = 20
	defaultBannerWidth = 60
)

// FormatBanner renders the three-line ASCII banner spec 7 calls for on
// high-severity, user-visible errors: a "===" rule, the message, and a
// matching closing rule. The rule is sized to the attached terminal's
// width when stderr is a TTY, falling back to a fixed width otherwise —
// grounded on golang.org/x/term, already a pack dependency for TUI sizing
// but previously only used by the bubbletea stack.
func FormatBanner(message string) string {
	rule := strings.Repeat("=", bannerWidth())
	return rule + "\n" + message + "\n" + rule
}

func bannerWidth() int {
	if w, _, err := term.GetSize(int(os.Stderr.Fd())); err == nil && w >= minBannerWidth {
		return w
	}
	return defaultBannerWidth
}
