package sfx

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/nguyentantai21042004/tts-flow/internal/config"
	"github.com/nguyentantai21042004/tts-flow/internal/logger"
)

const defaultOutDir = "sfx"

type implGenerator struct {
	cfg    *config.Config
	client *resty.Client
	logger logger.Logger
	now    func() time.Time
}

// New creates a Stable Audio backed Generator. Requests answered with 429 or
// a 5xx status are retried with exponential backoff.
func New(cfg *config.Config, log logger.Logger) Generator {
	sa := cfg.StableAudio

	client := resty.New().
		SetBaseURL(sa.BaseURL).
		SetTimeout(sa.Timeout).
		SetLogger(logger.NewPrintfAdapter(log)).
		SetRetryCount(max(sa.MaxRetries-1, 0)).
		SetRetryWaitTime(sa.BaseDelay).
		SetRetryMaxWaitTime(sa.MaxDelay).
		AddRetryCondition(retryable).
		AddRetryHook(func(resp *resty.Response, err error) {
			if resp != nil && resp.Request != nil {
				log.Warn(resp.Request.Context(), "Received status %d. Retrying...", resp.StatusCode())
			}
		})

	return &implGenerator{
		cfg:    cfg,
		client: client,
		logger: log,
		now:    time.Now,
	}
}

// retryable reports whether a response should be retried. Transport errors
// are not retried.
func retryable(resp *resty.Response, err error) bool {
	if err != nil || resp == nil {
		return false
	}
	code := resp.StatusCode()
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
