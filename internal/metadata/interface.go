package metadata

import "context"

// Updater records facts about an issue's generated assets in metadata.json.
type Updater interface {
	Update(ctx context.Context, issueID string) ([]string, error)
}

// Asset is the record stored under an asset key.
type Asset struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	CreatedAt string `json:"created_at"`
}

// KnownAssets maps metadata keys to paths relative to the issue directory.
var KnownAssets = []struct {
	Key  string
	Path string
}{
	{"title", "text/title.txt"},
	{"summary", "text/summary.txt"},
	{"audio", "audio/ambience.mp3"},
	{"thumbnail", "thumbnail/thumbnail.jpg"},
}
