package dialogue

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	reSpeakerTag = regexp.MustCompile(`^` + TagOpen + `[^` + TagClose + `]+` + TagClose)
	reTagOnly    = regexp.MustCompile(`^` + TagOpen + `[^` + TagClose + `]+` + TagClose + `$`)
)

// ExtractLine returns the raw dialogue spans of a single line and, when the
// line carries quote marks or text but yields nothing, the reason why.
// Spans are not normalized; Extract does that.
func ExtractLine(line string) ([]string, Reason) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, SFXPrefix) {
		return nil, ""
	}

	if strings.Count(line, string(QuoteOpen)) != strings.Count(line, string(QuoteClose)) {
		return nil, ReasonUnbalanced
	}

	if !strings.ContainsRune(line, QuoteOpen) {
		if reTagOnly.MatchString(line) {
			return nil, ""
		}
		return nil, ReasonMissing
	}

	var spans []string
	if tag := reSpeakerTag.FindString(line); tag != "" {
		if span, ok := taggedSpan(strings.TrimSpace(line[len(tag):])); ok {
			spans = append(spans, span)
		}
	} else {
		spans = balancedSpans(line)
	}

	if len(spans) == 0 {
		return nil, ReasonUnparsable
	}
	return spans, ""
}

// taggedSpan takes everything between the first open mark and the last close
// mark. Interior marks stay as literal text, so a tagged line yields at most
// one span.
func taggedSpan(s string) (string, bool) {
	start := strings.IndexRune(s, QuoteOpen)
	end := strings.LastIndex(s, string(QuoteClose))
	if start == -1 || end == -1 || start >= end {
		return "", false
	}
	return s[start+utf8.RuneLen(QuoteOpen) : end], true
}

// balancedSpans collects every top-level 「...」 span left to right. Nested
// marks belong to the enclosing span; a close mark at depth zero is ignored.
func balancedSpans(s string) []string {
	var spans []string
	depth, start := 0, -1
	for i, r := range s {
		switch r {
		case QuoteOpen:
			if depth == 0 {
				start = i + utf8.RuneLen(QuoteOpen)
			}
			depth++
		case QuoteClose:
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start != -1 {
				spans = append(spans, s[start:i])
				start = -1
			}
		}
	}
	return spans
}

// Extract processes a whole script document. Lines with warnings contribute
// no dialogue; processing always continues with the next line.
func Extract(text string) Result {
	return ExtractLines(strings.Split(text, "\n"))
}

// ExtractLines is Extract over an already split document.
func ExtractLines(lines []string) Result {
	var res Result
	for i, line := range lines {
		spans, reason := ExtractLine(line)
		if reason != "" {
			res.Warnings = append(res.Warnings, Warning{
				Line:   i + 1,
				Reason: reason,
				Text:   strings.TrimSpace(line),
			})
			continue
		}
		for _, span := range spans {
			if d := Normalize(span); d != "" {
				res.Dialogues = append(res.Dialogues, d)
			}
		}
	}
	return res
}
