package voice

import (
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/nguyentantai21042004/tts-flow/internal/config"
	"github.com/nguyentantai21042004/tts-flow/internal/logger"
)

type implSynthesizer struct {
	cfg    *config.Config
	client *resty.Client
	logger logger.Logger
	now    func() time.Time
}

// New creates a CoeFont backed Synthesizer.
func New(cfg *config.Config, log logger.Logger) Synthesizer {
	client := resty.New().
		SetBaseURL(cfg.CoeFont.BaseURL).
		SetTimeout(cfg.CoeFont.Timeout).
		SetLogger(logger.NewPrintfAdapter(log))

	return &implSynthesizer{
		cfg:    cfg,
		client: client,
		logger: log,
		now:    time.Now,
	}
}
