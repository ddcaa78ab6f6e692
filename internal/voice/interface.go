package voice

import (
	"context"
	"errors"
	"fmt"
)

var ErrMissingCredentials = errors.New("COEFONT_USER and COEFONT_PASS environment variables are not set")

// Synthesizer turns an issue's TTS input into a narration file.
type Synthesizer interface {
	Synthesize(ctx context.Context, issueID string) (Result, error)
}

// Result describes a written voice file.
type Result struct {
	Path  string
	Bytes int
}

// APIError is returned when CoeFont answers with a non-200 status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("CoeFont API request failed with status code %d: %s", e.StatusCode, e.Body)
}
