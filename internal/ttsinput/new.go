package ttsinput

import (
	"io"

	"github.com/nguyentantai21042004/tts-flow/internal/config"
	"github.com/nguyentantai21042004/tts-flow/internal/logger"
)

type implBuilder struct {
	cfg    *config.Config
	logger logger.Logger
	out    io.Writer
}

// New creates a Builder. Dry-run output is written to out.
func New(cfg *config.Config, log logger.Logger, out io.Writer) Builder {
	return &implBuilder{
		cfg:    cfg,
		logger: log,
		out:    out,
	}
}
