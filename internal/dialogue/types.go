package dialogue

import "fmt"

// Syntax marks of a script document.
const (
	QuoteOpen  = '「'
	QuoteClose = '」'
	TagOpen    = "【"
	TagClose   = "】"
	SFXPrefix  = "SFX:"
)

// Reason explains why a line produced no dialogue.
type Reason string

const (
	ReasonUnbalanced Reason = "unbalanced quotes"
	ReasonMissing    Reason = "missing quotes"
	ReasonUnparsable Reason = "could not extract dialogue despite presence of quotes"
)

// Warning is a per-line diagnostic. Line is 1-based.
type Warning struct {
	Line   int
	Reason Reason
	Text   string
}

func (w Warning) String() string {
	return fmt.Sprintf("Line %d %s: %s", w.Line, w.Reason, w.Text)
}

// Result holds every dialogue of a document in order, plus the warnings
// collected along the way.
type Result struct {
	Dialogues []string
	Warnings  []Warning
}
