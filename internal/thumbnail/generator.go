package thumbnail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (g *implGenerator) Generate(ctx context.Context, issueID, scriptPath string) (Result, error) {
	issueID = strings.TrimSpace(issueID)
	if issueID == "" {
		return Result{}, fmt.Errorf("issue id is required")
	}
	if scriptPath == "" {
		scriptPath = g.cfg.Paths.ScriptPath(issueID)
	}

	prompt, err := os.ReadFile(g.cfg.Gemini.PromptFile)
	if err != nil {
		return Result{}, fmt.Errorf("read prompt file: %w", err)
	}
	script, err := os.ReadFile(scriptPath)
	if err != nil {
		return Result{}, fmt.Errorf("read script: %w", err)
	}

	g.logger.Info(ctx, "Generating thumbnail text for issue %s...", issueID)
	raw, err := g.model.Complete(ctx, string(prompt)+"\n\n"+string(script))
	if err != nil {
		return Result{}, err
	}

	payload := ExtractJSON(raw)
	if payload == "" {
		g.logger.Error(ctx, "Raw output:\n%s", raw)
		return Result{}, ErrNoJSON
	}
	if !json.Valid([]byte(payload)) {
		g.logger.Error(ctx, "Extracted content:\n%s", payload)
		return Result{}, ErrInvalidJSON
	}
	if err := validateSchema(g.cfg.Gemini.Schema, []byte(payload)); err != nil {
		return Result{}, err
	}

	// json.Indent keeps key order and leaves non-ASCII text unescaped.
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(payload), "", "  "); err != nil {
		return Result{}, fmt.Errorf("format json: %w", err)
	}
	pretty.WriteByte('\n')

	outPath := g.cfg.Paths.ThumbnailPath(issueID)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return Result{}, fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, pretty.Bytes(), 0644); err != nil {
		return Result{}, fmt.Errorf("write thumbnail text: %w", err)
	}

	items, err := verify(outPath)
	if err != nil {
		return Result{}, err
	}

	g.logger.Info(ctx, "Successfully generated %s", outPath)
	return Result{Path: outPath, Items: items}, nil
}

// verify re-reads the written file and counts its top level entries.
func verify(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("verify output: %w", err)
	}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, fmt.Errorf("verify output: %w", err)
	}
	switch t := v.(type) {
	case []interface{}:
		return len(t), nil
	case map[string]interface{}:
		return len(t), nil
	default:
		return 1, nil
	}
}
