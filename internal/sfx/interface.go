package sfx

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey    = errors.New("STABILITY_API_KEY environment variable not found")
	ErrRetriesExhausted = errors.New("retries exhausted")
)

// Generator renders sound effects for a list of prompts.
type Generator interface {
	GenerateAll(ctx context.Context, req Request) (Summary, error)
}

// Request configures one generation run. Zero values fall back to config.
type Request struct {
	IssueID     string
	PromptsFile string
	OutDir      string
	Duration    int
	Seed        int
	Lang        string
}

// Entry is one line of sfx_index.jsonl.
type Entry struct {
	File      string `json:"file"`
	Prompt    string `json:"prompt"`
	Duration  int    `json:"duration"`
	Seed      int    `json:"seed"`
	SR        int    `json:"sr"`
	IssueID   string `json:"issue_id"`
	CreatedAt string `json:"created_at"`
}

// Summary reports what a run produced.
type Summary struct {
	Entries []Entry
	Failed  int
}

// APIError is returned when Stable Audio rejects a request.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("stable audio request failed with status %d: %s", e.StatusCode, e.Body)
}
