package ttsinput

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/tts-flow/internal/dialogue"
)

// Build extracts the dialogues of an issue's script and writes them, one per
// line, to the issue's TTS input file.
func (b *implBuilder) Build(ctx context.Context, issueID string, opts Options) (Report, error) {
	if strings.TrimSpace(issueID) == "" {
		return Report{}, fmt.Errorf("issue id is required")
	}

	inputPath := b.cfg.Paths.ScriptPath(issueID)
	outputPath := b.cfg.Paths.TTSInputPath(issueID)

	content, err := os.ReadFile(inputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Report{}, fmt.Errorf("%w: %s", ErrScriptNotFound, inputPath)
		}
		return Report{}, fmt.Errorf("read script: %w", err)
	}

	b.logger.Debug(ctx, "Extracting dialogue from %s", inputPath)
	res := dialogue.Extract(string(content))

	for _, w := range res.Warnings {
		b.logger.Warn(ctx, "%s", w)
	}

	report := Report{
		IssueID:   issueID,
		Dialogues: res.Dialogues,
		Warnings:  res.Warnings,
	}

	if len(res.Dialogues) == 0 {
		return report, fmt.Errorf("%s: %w", inputPath, ErrNoDialogue)
	}

	report.Output = dialogue.Serialize(res.Dialogues)
	report.Bytes = len(report.Output)

	if opts.DryRun {
		fmt.Fprintln(b.out, "--- Dry Run Output ---")
		fmt.Fprint(b.out, report.Output)
		fmt.Fprintln(b.out, "--- End Dry Run ---")
	} else {
		if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
			return report, fmt.Errorf("create output dir: %w", err)
		}
		if err := os.WriteFile(outputPath, []byte(report.Output), 0644); err != nil {
			return report, fmt.Errorf("write tts input: %w", err)
		}
		report.Path = outputPath
		b.logger.Info(ctx, "Successfully wrote %d dialogues to %s", len(res.Dialogues), outputPath)
		b.logger.Info(ctx, "File size: %d bytes", report.Bytes)

		if opts.Docx {
			docxPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".docx"
			title := fmt.Sprintf("Issue %s dialogue", issueID)
			if err := writeDialogueSheet(title, res, docxPath); err != nil {
				return report, fmt.Errorf("write dialogue sheet: %w", err)
			}
			report.DocxPath = docxPath
			b.logger.Info(ctx, "Dialogue sheet written: %s", docxPath)
		}
	}

	if len(res.Warnings) > 0 {
		b.logger.Warn(ctx, "Completed with %d warnings.", len(res.Warnings))
	}

	return report, nil
}
