package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

func (u *implUpdater) Update(ctx context.Context, issueID string) ([]string, error) {
	issueID = strings.TrimSpace(issueID)
	if issueID == "" {
		return nil, fmt.Errorf("issue id is required")
	}

	path := u.cfg.Paths.MetadataPath(issueID)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	if doc == nil {
		doc = map[string]json.RawMessage{}
	}

	issueDir := u.cfg.Paths.IssueDir(issueID)
	createdAt := u.now().UTC().Format("2006-01-02T15:04:05.000000Z")

	var updated []string
	for _, a := range KnownAssets {
		full := filepath.Join(issueDir, filepath.FromSlash(a.Path))
		info, err := os.Stat(full)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", a.Key, err)
		}

		raw, err := json.Marshal(Asset{Path: full, SizeBytes: info.Size(), CreatedAt: createdAt})
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", a.Key, err)
		}
		doc[a.Key] = raw
		updated = append(updated, a.Key)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("write metadata: %w", err)
	}

	u.logger.Info(ctx, "Metadata updated successfully at %s", path)
	return updated, nil
}
