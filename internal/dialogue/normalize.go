package dialogue

import (
	"regexp"
	"strings"
)

var reNewlineRun = regexp.MustCompile(`\n{2,}`)

// Normalize trims a dialogue and collapses every whitespace run, full-width
// space included, into a single ASCII space.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Serialize joins dialogues one per line and guarantees a single trailing
// newline with no blank lines in between.
func Serialize(dialogues []string) string {
	out := strings.TrimSpace(strings.Join(dialogues, "\n"))
	return reNewlineRun.ReplaceAllString(out, "\n") + "\n"
}
