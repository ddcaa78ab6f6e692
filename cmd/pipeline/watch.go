package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/tts-flow/internal/ttsinput"
	"github.com/nguyentantai21042004/tts-flow/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild TTS input whenever an issue script is written",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		builder := ttsinput.New(cfg, log, os.Stdout)
		handler := func(ctx context.Context, path string) error {
			issueID, ok := cfg.Paths.IssueIDFromScript(path)
			if !ok {
				return fmt.Errorf("not an issue script: %s", path)
			}
			_, err := builder.Build(ctx, issueID, ttsinput.Options{})
			if errors.Is(err, ttsinput.ErrNoDialogue) {
				log.Warn(ctx, "Issue %s: %v", issueID, err)
				return nil
			}
			return err
		}

		w, err := watcher.New(cfg.Paths, handler, log, cfg.Performance.MaxConcurrent)
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer w.Stop()

		log.Info(ctx, "========================================")
		log.Info(ctx, "TTS input watcher is ready!")
		log.Info(ctx, "Issues root: %s", cfg.Paths.IssuesRoot)
		log.Info(ctx, "Press Ctrl+C to stop")
		log.Info(ctx, "========================================")

		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		log.Info(context.Background(), "Shutting down gracefully...")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
