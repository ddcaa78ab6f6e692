package sfx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

func (g *implGenerator) GenerateAll(ctx context.Context, req Request) (Summary, error) {
	if g.cfg.StableAudio.APIKey == "" {
		return Summary{}, ErrMissingAPIKey
	}
	req = g.withDefaults(req)

	prompts, err := readPrompts(req.PromptsFile)
	if err != nil {
		return Summary{}, err
	}
	if err := os.MkdirAll(req.OutDir, 0755); err != nil {
		return Summary{}, fmt.Errorf("create output directory: %w", err)
	}
	indexPath := filepath.Join(req.OutDir, indexFile)

	var summary Summary
	for _, prompt := range prompts {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		entry, err := g.generateOne(ctx, req, prompt, indexPath)
		if err != nil {
			g.logger.Error(ctx, "Could not process prompt '%s'. Reason: %v", prompt, err)
			summary.Failed++
			continue
		}
		summary.Entries = append(summary.Entries, entry)
	}

	g.logger.Info(ctx, "SFX generation process complete. %d generated, %d failed.", len(summary.Entries), summary.Failed)
	return summary, nil
}

func (g *implGenerator) generateOne(ctx context.Context, req Request, prompt, indexPath string) (Entry, error) {
	if req.Lang == "ja" {
		g.logger.Warn(ctx, "Language is set to 'ja' but translation is not implemented. Using the original prompt.")
	}

	audio, seed, err := g.generate(ctx, prompt, req.Duration, req.Seed)
	if err != nil {
		return Entry{}, err
	}

	name, err := Filename(prompt, req.OutDir)
	if err != nil {
		return Entry{}, err
	}
	path := filepath.Join(req.OutDir, name)
	if err := os.WriteFile(path, audio, 0644); err != nil {
		return Entry{}, fmt.Errorf("write audio: %w", err)
	}
	g.logger.Info(ctx, "Saved audio to %s", path)

	entry := Entry{
		File:      name,
		Prompt:    prompt,
		Duration:  req.Duration,
		Seed:      seed,
		SR:        g.cfg.StableAudio.SampleRate,
		IssueID:   req.IssueID,
		CreatedAt: g.now().UTC().Format("2006-01-02T15:04:05.000000Z"),
	}
	if err := appendIndex(indexPath, entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (g *implGenerator) withDefaults(req Request) Request {
	if req.OutDir == "" {
		req.OutDir = defaultOutDir
	}
	if req.Duration <= 0 {
		req.Duration = g.cfg.StableAudio.Duration
	}
	if req.Lang == "" {
		req.Lang = g.cfg.StableAudio.Lang
	}
	return req
}

// readPrompts returns the trimmed non-empty lines of a prompts file.
func readPrompts(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts file: %w", err)
	}
	lines := lo.Map(strings.Split(string(data), "\n"), func(l string, _ int) string {
		return strings.TrimSpace(l)
	})
	return lo.Compact(lines), nil
}
