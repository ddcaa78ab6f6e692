package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	CoeFont     CoeFontConfig     `yaml:"coefont"`
	StableAudio StableAudioConfig `yaml:"stable_audio"`
}

type PathsConfig struct {
	IssuesRoot string `yaml:"issues_root"`
	Script     string `yaml:"script"`
	TTSInput   string `yaml:"tts_input"`
	Voice      string `yaml:"voice"`
	Thumbnail  string `yaml:"thumbnail"`
	Metadata   string `yaml:"metadata"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type GeminiConfig struct {
	Backend    string   `yaml:"backend"` // "cli" or "api"
	BinaryPath string   `yaml:"binary_path"`
	Model      string   `yaml:"model"`
	PromptFile string   `yaml:"prompt_file"`
	Schema     string   `yaml:"schema"`
	APIKeys    []string `yaml:"-"`
}

type CoeFontConfig struct {
	BaseURL      string        `yaml:"base_url"`
	VoiceID      string        `yaml:"voice_id"`
	Timeout      time.Duration `yaml:"timeout"`
	AccessKey    string        `yaml:"-"`
	AccessSecret string        `yaml:"-"`
}

type StableAudioConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Duration   int           `yaml:"duration"`
	SampleRate int           `yaml:"sample_rate"`
	MaxRetries int           `yaml:"max_retries"`
	BaseDelay  time.Duration `yaml:"base_delay"`
	MaxDelay   time.Duration `yaml:"max_delay"`
	Timeout    time.Duration `yaml:"timeout"`
	Lang       string        `yaml:"lang"`
	APIKey     string        `yaml:"-"`
}

// DefaultSchema accepts any non-empty JSON array.
const DefaultSchema = `{"type": "array", "minItems": 1}`

// Load reads a YAML config file, pulls secrets from the environment and
// applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.loadEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault behaves like Load but falls back to defaults when the file
// does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg = &Config{}
	cfg.loadEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadEnv() {
	c.CoeFont.AccessKey = os.Getenv("COEFONT_USER")
	c.CoeFont.AccessSecret = os.Getenv("COEFONT_PASS")
	c.StableAudio.APIKey = os.Getenv("STABILITY_API_KEY")
	c.Gemini.APIKeys = parseKeys(os.Getenv("GEMINI_API_KEYS"))
	if len(c.Gemini.APIKeys) == 0 {
		c.Gemini.APIKeys = parseKeys(os.Getenv("GEMINI_API_KEY"))
	}
}

func parseKeys(raw string) []string {
	keys := lo.Map(strings.Split(raw, ","), func(k string, _ int) string {
		return strings.TrimSpace(k)
	})
	return lo.Uniq(lo.Compact(keys))
}

func (c *Config) Validate() error {
	if c.Paths.IssuesRoot == "" {
		c.Paths.IssuesRoot = "assets/issues"
	}
	if c.Paths.Script == "" {
		c.Paths.Script = "text/script.md"
	}
	if c.Paths.TTSInput == "" {
		c.Paths.TTSInput = "text/tts_input_all.txt"
	}
	if c.Paths.Voice == "" {
		c.Paths.Voice = "audio/voice.wav"
	}
	if c.Paths.Thumbnail == "" {
		c.Paths.Thumbnail = "thumbnail_text.json"
	}
	if c.Paths.Metadata == "" {
		c.Paths.Metadata = "metadata.json"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Performance.MaxConcurrent < 0 {
		return fmt.Errorf("performance.max_concurrent must not be negative")
	}

	if c.Gemini.Backend == "" {
		c.Gemini.Backend = "cli"
	}
	if c.Gemini.Backend != "cli" && c.Gemini.Backend != "api" {
		return fmt.Errorf("gemini.backend must be \"cli\" or \"api\", got %q", c.Gemini.Backend)
	}
	if c.Gemini.BinaryPath == "" {
		c.Gemini.BinaryPath = "gemini"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.PromptFile == "" {
		c.Gemini.PromptFile = "docs/02_thumbnail_prompt.md"
	}
	if c.Gemini.Schema == "" {
		c.Gemini.Schema = DefaultSchema
	}

	if c.CoeFont.BaseURL == "" {
		c.CoeFont.BaseURL = "https://api.coefont.cloud"
	}
	if c.CoeFont.VoiceID == "" {
		c.CoeFont.VoiceID = "2b174967-1a8a-42e4-b1ae-5f6548cfa05d"
	}
	if c.CoeFont.Timeout == 0 {
		c.CoeFont.Timeout = 120 * time.Second
	}

	if c.StableAudio.BaseURL == "" {
		c.StableAudio.BaseURL = "https://api.stability.ai"
	}
	if c.StableAudio.Duration == 0 {
		c.StableAudio.Duration = 12
	}
	if c.StableAudio.Duration < 0 {
		return fmt.Errorf("stable_audio.duration must be positive")
	}
	if c.StableAudio.SampleRate == 0 {
		c.StableAudio.SampleRate = 44100
	}
	if c.StableAudio.MaxRetries == 0 {
		c.StableAudio.MaxRetries = 5
	}
	if c.StableAudio.BaseDelay == 0 {
		c.StableAudio.BaseDelay = 2 * time.Second
	}
	if c.StableAudio.MaxDelay == 0 {
		c.StableAudio.MaxDelay = 2 * time.Minute
	}
	if c.StableAudio.Timeout == 0 {
		c.StableAudio.Timeout = 180 * time.Second
	}
	if c.StableAudio.Lang == "" {
		c.StableAudio.Lang = "ja"
	}
	if c.StableAudio.Lang != "ja" && c.StableAudio.Lang != "en" {
		return fmt.Errorf("stable_audio.lang must be \"ja\" or \"en\", got %q", c.StableAudio.Lang)
	}

	return nil
}

// IssueDir returns the asset directory of an issue.
func (p PathsConfig) IssueDir(issueID string) string {
	return filepath.Join(p.IssuesRoot, issueID)
}

func (p PathsConfig) ScriptPath(issueID string) string {
	return filepath.Join(p.IssueDir(issueID), p.Script)
}

func (p PathsConfig) TTSInputPath(issueID string) string {
	return filepath.Join(p.IssueDir(issueID), p.TTSInput)
}

func (p PathsConfig) VoicePath(issueID string) string {
	return filepath.Join(p.IssueDir(issueID), p.Voice)
}

func (p PathsConfig) ThumbnailPath(issueID string) string {
	return filepath.Join(p.IssueDir(issueID), p.Thumbnail)
}

func (p PathsConfig) MetadataPath(issueID string) string {
	return filepath.Join(p.IssueDir(issueID), p.Metadata)
}

// IssueIDFromScript reports the issue a script path belongs to, if the path
// follows the <issues_root>/<id>/<script> layout.
func (p PathsConfig) IssueIDFromScript(path string) (string, bool) {
	rel, err := filepath.Rel(p.IssuesRoot, path)
	if err != nil {
		return "", false
	}
	id, rest, ok := strings.Cut(filepath.ToSlash(rel), "/")
	if !ok || id == "" || id == "." || id == ".." {
		return "", false
	}
	if rest != filepath.ToSlash(filepath.Clean(p.Script)) {
		return "", false
	}
	return id, true
}
