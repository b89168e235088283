// Package preview renders a capped unified diff between an existing
// configuration and a freshly rendered replacement.
package preview

import (
	"strings"

	"github.com/aymanbagabas/go-udiff"
)

// MaxLines caps how much of a diff is shown; field configs can be thousands
// of lines and the preview is informational only.
const MaxLines = 40

// Diff returns the unified diff from current to proposed, labeled with path,
// and whether it was truncated. An empty string means no changes.
func Diff(path, current, proposed string) (string, bool) {
	if current == proposed {
		return "", false
	}
	diff := udiff.Unified(path+" (current)", path+" (new)", current, proposed)
	lines := strings.Split(strings.TrimRight(diff, "\n"), "\n")
	if len(lines) <= MaxLines {
		return diff, false
	}
	return strings.Join(lines[:MaxLines], "\n") + "\n", true
}
