package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/tts-flow/internal/config"
	"github.com/nguyentantai21042004/tts-flow/internal/logger"
	"github.com/nguyentantai21042004/tts-flow/internal/ttsinput"
)

const (
	exitError      = 1
	exitNoDialogue = 2
)

var (
	configPath string
	logLevel   string

	cfg *config.Config
	log logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Content production pipeline for issue assets",
	Long: `Builds the assets of an issue under the issues root.

Examples:
  pipeline tts-input --issue-id 3 --dry-run   # Print the extracted dialogue
  pipeline thumbnail --issue-id 3             # Generate thumbnail captions
  pipeline voice --issue-id 3                 # Synthesize narration
  pipeline sfx --prompts-file prompts.txt     # Generate sound effects
  pipeline metadata --issue-id 3              # Refresh metadata.json
  pipeline watch                              # Rebuild TTS input on script changes
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cmd.Flags().Changed("config") {
			cfg, err = config.Load(configPath)
		} else {
			cfg, err = config.LoadOrDefault(configPath)
		}
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		var opts []logger.Option
		if cfg.Logging.File != "" {
			opts = append(opts, logger.WithFile(cfg.Logging.File))
		}
		log = logger.New(cfg.Logging.Level, opts...)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override logging.level (debug, info, warn, error)")
}

func main() {
	err := rootCmd.Execute()
	if err == nil {
		if log != nil {
			_ = logger.Sync(log)
		}
		return
	}

	if log != nil {
		log.Error(context.Background(), "%v", err)
		_ = logger.Sync(log)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	if errors.Is(err, ttsinput.ErrNoDialogue) {
		return exitNoDialogue
	}
	return exitError
}

func requireIssueID(cmd *cobra.Command) (string, error) {
	id, _ := cmd.Flags().GetString("issue-id")
	if id == "" {
		return "", fmt.Errorf("--issue-id is required")
	}
	return id, nil
}
