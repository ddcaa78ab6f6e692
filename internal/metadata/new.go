package metadata

import (
	"time"

	"github.com/nguyentantai21042004/tts-flow/internal/config"
	"github.com/nguyentantai21042004/tts-flow/internal/logger"
)

type implUpdater struct {
	cfg    *config.Config
	logger logger.Logger
	now    func() time.Time
}

func New(cfg *config.Config, log logger.Logger) Updater {
	return &implUpdater{
		cfg:    cfg,
		logger: log,
		now:    time.Now,
	}
}
