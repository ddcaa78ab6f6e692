package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/tts-flow/internal/sfx"
)

var sfxCmd = &cobra.Command{
	Use:   "sfx",
	Short: "Generate sound effects with Stable Audio",
	Long: `Generates one sound effect per non-empty line of the prompts file.

Files are named after the first words of the prompt and recorded in
sfx_index.jsonl inside the output directory. A failing prompt is logged and
skipped.

Examples:
  pipeline sfx --prompts-file prompts.txt
  pipeline sfx --prompts-file prompts.txt --issue-id 3 --outdir assets/issues/3/audio/sfx --lang en
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		issueID, _ := cmd.Flags().GetString("issue-id")
		promptsFile, _ := cmd.Flags().GetString("prompts-file")
		outDir, _ := cmd.Flags().GetString("outdir")
		duration, _ := cmd.Flags().GetInt("duration")
		seed, _ := cmd.Flags().GetInt("seed")
		lang, _ := cmd.Flags().GetString("lang")

		if promptsFile == "" {
			return fmt.Errorf("--prompts-file is required")
		}
		if lang != "" && lang != "ja" && lang != "en" {
			return fmt.Errorf("--lang must be ja or en, got %q", lang)
		}

		summary, err := sfx.New(cfg, log).GenerateAll(cmd.Context(), sfx.Request{
			IssueID:     issueID,
			PromptsFile: promptsFile,
			OutDir:      outDir,
			Duration:    duration,
			Seed:        seed,
			Lang:        lang,
		})
		if err != nil {
			return err
		}
		if summary.Failed > 0 {
			log.Warn(cmd.Context(), "%d prompts failed", summary.Failed)
		}
		return nil
	},
}

func init() {
	sfxCmd.Flags().String("issue-id", "", "Issue ID recorded in the index")
	sfxCmd.Flags().String("prompts-file", "", "Text file with one prompt per line")
	sfxCmd.Flags().String("outdir", "sfx", "Directory for the audio files and index")
	sfxCmd.Flags().Int("duration", 0, "Duration in seconds (default: stable_audio.duration)")
	sfxCmd.Flags().Int("seed", 0, "Seed for reproducibility")
	sfxCmd.Flags().String("lang", "", "Prompt language, ja or en (default: stable_audio.lang)")
	rootCmd.AddCommand(sfxCmd)
}
