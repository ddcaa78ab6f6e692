package sfx

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

type generateRequest struct {
	Prompt   string `json:"prompt"`
	Duration string `json:"duration"`
	Format   string `json:"format"`
	Seed     int    `json:"seed,omitempty"`
}

// generate requests one clip and returns the audio and the seed used.
func (g *implGenerator) generate(ctx context.Context, prompt string, duration, seed int) ([]byte, int, error) {
	g.logger.Info(ctx, "Requesting audio for prompt: '%s' (duration: %ds)", prompt, duration)

	resp, err := g.client.R().
		SetContext(ctx).
		SetAuthToken(g.cfg.StableAudio.APIKey).
		SetHeader("Accept", "audio/*").
		SetHeader("Content-Type", "application/json").
		SetBody(generateRequest{
			Prompt:   prompt,
			Duration: strconv.Itoa(duration),
			Format:   "wav",
			Seed:     seed,
		}).
		Post("/v2beta/audio/generate")
	if err != nil {
		return nil, 0, fmt.Errorf("request audio: %w", err)
	}

	if retryable(resp, nil) {
		apiErr := &APIError{StatusCode: resp.StatusCode(), Body: resp.String()}
		return nil, 0, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, g.cfg.StableAudio.MaxRetries, apiErr)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, 0, &APIError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	actual := seed
	if v := strings.TrimSpace(resp.Header().Get("seed")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			actual = n
		}
	}

	g.logger.Info(ctx, "Successfully generated audio with seed: %d", actual)
	return resp.Body(), actual, nil
}
