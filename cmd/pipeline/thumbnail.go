package main

import (
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/tts-flow/internal/thumbnail"
	"github.com/nguyentantai21042004/tts-flow/pkg/executor"
)

var thumbnailCmd = &cobra.Command{
	Use:   "thumbnail",
	Short: "Generate thumbnail captions for an issue with Gemini",
	RunE: func(cmd *cobra.Command, args []string) error {
		issueID, err := requireIssueID(cmd)
		if err != nil {
			return err
		}
		script, _ := cmd.Flags().GetString("script")
		if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
			cfg.Gemini.Backend = backend
		}

		gen, err := thumbnail.New(cfg, executor.New(), log)
		if err != nil {
			return err
		}
		res, err := gen.Generate(cmd.Context(), issueID, script)
		if err != nil {
			return err
		}
		log.Info(cmd.Context(), "Wrote %d thumbnail entries to %s", res.Items, res.Path)
		return nil
	},
}

func init() {
	thumbnailCmd.Flags().String("issue-id", "", "Issue ID (e.g. 3)")
	thumbnailCmd.Flags().String("script", "", "Script file (default: the issue's text/script.md)")
	thumbnailCmd.Flags().String("backend", "", "Override gemini.backend (cli or api)")
	rootCmd.AddCommand(thumbnailCmd)
}
