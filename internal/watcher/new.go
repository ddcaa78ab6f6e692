package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/tts-flow/internal/config"
	"github.com/nguyentantai21042004/tts-flow/internal/logger"
)

const defaultSettle = 500 * time.Millisecond

// New creates a Watcher over the issues root and the script directories of
// every existing issue.
func New(paths config.PathsConfig, handler EventHandler, log logger.Logger, maxConcurrent int) (Watcher, error) {
	if err := os.MkdirAll(paths.IssuesRoot, 0755); err != nil {
		return nil, fmt.Errorf("create issues root: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Default to 2 concurrent if not specified
	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}

	w := &implWatcher{
		paths:         paths,
		scriptDir:     splitPath(filepath.Dir(filepath.Clean(paths.Script))),
		handler:       handler,
		logger:        log,
		watcher:       fsw,
		maxConcurrent: maxConcurrent,
		sem:           newSemaphore(maxConcurrent),
		settle:        defaultSettle,
		pending:       make(map[string]*time.Timer),
	}

	if err := w.addTree(context.Background(), paths.IssuesRoot, false); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

func splitPath(p string) []string {
	p = filepath.ToSlash(p)
	if p == "." || p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
