package ttsinput

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/tts-flow/internal/dialogue"
)

var (
	// ErrNoDialogue means the script parsed but not a single dialogue came out.
	ErrNoDialogue = errors.New("no dialogues were extracted")
	// ErrScriptNotFound means the issue has no script document.
	ErrScriptNotFound = errors.New("script file not found")
)

// Builder turns an issue's script document into speech synthesizer input.
type Builder interface {
	Build(ctx context.Context, issueID string, opts Options) (Report, error)
}

// Options controls a Build run.
type Options struct {
	// DryRun prints the output instead of writing any file.
	DryRun bool
	// Docx also writes a dialogue sheet next to the text output.
	Docx bool
}

// Report describes what a Build run produced.
type Report struct {
	IssueID   string
	Path      string
	DocxPath  string
	Dialogues []string
	Warnings  []dialogue.Warning
	Output    string
	Bytes     int
}
