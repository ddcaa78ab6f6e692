package sfx

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	reUnsafe      = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	reUnderscores = regexp.MustCompile(`_+`)
)

// BaseName reduces a prompt to its first four words, lowercased and joined
// by underscores.
func BaseName(prompt string) string {
	s := reUnsafe.ReplaceAllString(strings.ToLower(prompt), "_")
	s = strings.Trim(reUnderscores.ReplaceAllString(s, "_"), "_")
	words := strings.Split(s, "_")
	if len(words) > 4 {
		words = words[:4]
	}
	return strings.Join(words, "_")
}

// Filename returns the first "<base>_NN.wav" not yet present in dir.
func Filename(prompt, dir string) (string, error) {
	base := BaseName(prompt)
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s_%02d.wav", base, i)
		_, err := os.Stat(filepath.Join(dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			return name, nil
		}
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", name, err)
		}
	}
}
