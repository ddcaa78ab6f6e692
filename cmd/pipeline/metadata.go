package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/tts-flow/internal/metadata"
)

var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Record generated assets in an issue's metadata.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		issueID, err := requireIssueID(cmd)
		if err != nil {
			return err
		}

		keys, err := metadata.New(cfg, log).Update(cmd.Context(), issueID)
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			log.Info(cmd.Context(), "Updated: %s", strings.Join(keys, ", "))
		}
		return nil
	},
}

func init() {
	metadataCmd.Flags().String("issue-id", "", "Issue ID (e.g. 3)")
	rootCmd.AddCommand(metadataCmd)
}
