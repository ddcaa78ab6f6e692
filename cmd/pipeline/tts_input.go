package main

import (
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/tts-flow/internal/ttsinput"
)

var ttsInputCmd = &cobra.Command{
	Use:   "tts-input",
	Short: "Extract dialogue from an issue script into TTS input",
	Long: `Reads <issues_root>/<id>/text/script.md, extracts every quoted line and
writes them, one per line, to text/tts_input_all.txt.

Lines that look like dialogue but cannot be parsed are reported as warnings
and skipped. Exits with status 2 when no dialogue at all was extracted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		issueID, err := requireIssueID(cmd)
		if err != nil {
			return err
		}
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		docx, _ := cmd.Flags().GetBool("docx")

		b := ttsinput.New(cfg, log, cmd.OutOrStdout())
		_, err = b.Build(cmd.Context(), issueID, ttsinput.Options{DryRun: dryRun, Docx: docx})
		return err
	},
}

func init() {
	ttsInputCmd.Flags().String("issue-id", "", "Issue ID (e.g. 3)")
	ttsInputCmd.Flags().Bool("dry-run", false, "Print the output instead of writing it")
	ttsInputCmd.Flags().Bool("docx", false, "Also write a .docx dialogue sheet")
	rootCmd.AddCommand(ttsInputCmd)
}
