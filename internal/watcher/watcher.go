package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/tts-flow/internal/config"
	"github.com/nguyentantai21042004/tts-flow/internal/logger"
)

type implWatcher struct {
	paths         config.PathsConfig
	scriptDir     []string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	sem           *semaphore
	settle        time.Duration
	wg            sync.WaitGroup

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// Start monitors the issues tree and runs the handler for every script file
// that is created or written. Repeated writes within the settle delay are
// coalesced into one handler call.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.paths.IssuesRoot)
	w.logger.Info(ctx, "Watching for: %s", w.paths.Script)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			w.cancelPending()
			w.wg.Wait()
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			w.handleEvent(ctx, event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if w.wantsDir(event.Name) {
				if err := w.addTree(ctx, event.Name, true); err != nil {
					w.logger.Error(ctx, "Failed to watch %s: %v", event.Name, err)
				}
			}
			return
		}
	}

	if _, ok := w.paths.IssueIDFromScript(event.Name); !ok {
		w.logger.Debug(ctx, "Ignoring file: %s", event.Name)
		return
	}
	w.schedule(ctx, event.Name)
}

// schedule runs the handler for path once the file has been quiet for the
// settle delay.
func (w *implWatcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		if t.Stop() {
			// the stopped timer's slot in wg carries over to the new one
			w.pending[path] = w.newTimer(ctx, path)
			return
		}
	} else {
		w.logger.Info(ctx, "Script change detected: %s", path)
	}

	w.wg.Add(1)
	w.pending[path] = w.newTimer(ctx, path)
}

// newTimer must be called with mu held.
func (w *implWatcher) newTimer(ctx context.Context, path string) *time.Timer {
	var t *time.Timer
	t = time.AfterFunc(w.settle, func() {
		defer w.wg.Done()

		w.mu.Lock()
		if w.pending[path] == t {
			delete(w.pending, path)
		}
		w.mu.Unlock()

		if err := w.sem.acquire(ctx); err != nil {
			return
		}
		defer w.sem.release()

		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
	})
	return t
}

func (w *implWatcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for path, t := range w.pending {
		if t.Stop() {
			w.wg.Done()
		}
		delete(w.pending, path)
	}
}

// wantsDir reports whether dir is the issues root, an issue directory, or a
// directory on the way from an issue directory to its script.
func (w *implWatcher) wantsDir(dir string) bool {
	rel, err := filepath.Rel(w.paths.IssuesRoot, dir)
	if err != nil {
		return false
	}
	parts := splitPath(rel)
	if len(parts) == 0 {
		return true
	}
	if parts[0] == ".." {
		return false
	}
	rest := parts[1:]
	if len(rest) > len(w.scriptDir) {
		return false
	}
	for i, p := range rest {
		if p != w.scriptDir[i] {
			return false
		}
	}
	return true
}

// addTree watches dir and every wanted directory below it. With scan set,
// script files already present are scheduled, since they may have been
// written before the watch was in place.
func (w *implWatcher) addTree(ctx context.Context, dir string, scan bool) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			if _, ok := w.paths.IssueIDFromScript(path); ok && scan {
				w.schedule(ctx, path)
			}
			return nil
		}
		if !w.wantsDir(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("add watch path: %w", err)
		}
		return nil
	})
}
