package thumbnail

import (
	"regexp"
	"strings"
)

var (
	reFencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	reJSONArray  = regexp.MustCompile(`(?s)\[.*\]`)
)

// ExtractJSON pulls the JSON payload out of free-form model output: the first
// ```json fenced block, or else everything from the first '[' to the last ']'.
// It returns "" when neither is present.
func ExtractJSON(text string) string {
	if m := reFencedJSON.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := reJSONArray.FindString(text); m != "" {
		return strings.TrimSpace(m)
	}
	return ""
}
