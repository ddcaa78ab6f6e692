package main

import (
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/tts-flow/internal/voice"
)

var voiceCmd = &cobra.Command{
	Use:   "voice",
	Short: "Synthesize narration from an issue's TTS input with CoeFont",
	RunE: func(cmd *cobra.Command, args []string) error {
		issueID, err := requireIssueID(cmd)
		if err != nil {
			return err
		}
		if id, _ := cmd.Flags().GetString("voice-id"); id != "" {
			cfg.CoeFont.VoiceID = id
		}

		_, err = voice.New(cfg, log).Synthesize(cmd.Context(), issueID)
		return err
	},
}

func init() {
	voiceCmd.Flags().String("issue-id", "", "Issue ID (e.g. 3)")
	voiceCmd.Flags().String("voice-id", "", "Override coefont.voice_id")
	rootCmd.AddCommand(voiceCmd)
}
