package thumbnail

import (
	"github.com/nguyentantai21042004/tts-flow/internal/config"
	"github.com/nguyentantai21042004/tts-flow/internal/logger"
	"github.com/nguyentantai21042004/tts-flow/pkg/executor"
)

type implGenerator struct {
	cfg    *config.Config
	model  model
	logger logger.Logger
}

// New creates a Generator using the backend selected by gemini.backend.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) (Generator, error) {
	var m model
	switch cfg.Gemini.Backend {
	case "api":
		if len(cfg.Gemini.APIKeys) == 0 {
			return nil, ErrNoAPIKeys
		}
		m = newGeminiModel(cfg.Gemini.APIKeys, cfg.Gemini.Model, log)
	default:
		m = &cliModel{exec: exec, binary: cfg.Gemini.BinaryPath}
	}

	return &implGenerator{
		cfg:    cfg,
		model:  m,
		logger: log,
	}, nil
}
