package thumbnail

import (
	"context"
	"errors"
)

var (
	ErrNoJSON         = errors.New("could not extract valid JSON from the model output")
	ErrInvalidJSON    = errors.New("the extracted content is not valid JSON")
	ErrSchemaMismatch = errors.New("thumbnail JSON does not match the schema")
	ErrNoAPIKeys      = errors.New("no Gemini API keys configured")
)

// Generator produces thumbnail caption candidates for an issue's script.
type Generator interface {
	Generate(ctx context.Context, issueID, scriptPath string) (Result, error)
}

// Result describes a written thumbnail text file.
type Result struct {
	Path  string
	Items int
}

// model turns a prompt into raw text.
type model interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
