package thumbnail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/nguyentantai21042004/tts-flow/internal/config"
	"github.com/nguyentantai21042004/tts-flow/internal/logger"
	"github.com/nguyentantai21042004/tts-flow/pkg/executor"
)

type fakeExecutor struct {
	input string
	name  string
	out   string
	err   error
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.ExecuteWithInput(ctx, "", name, args...)
}

func (f *fakeExecutor) ExecuteWithInput(ctx context.Context, input string, name string, args ...string) (string, error) {
	f.input = input
	f.name = name
	return f.out, f.err
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"fenced block", "Here:\n```json\n[{\"a\": 1}]\n```\nthanks", `[{"a": 1}]`},
		{"fenced block wins over bare array", "[0]\n```json\n[1]\n```", "[1]"},
		{"bare array", "result: [\"x\", \"y\"] done", `["x", "y"]`},
		{"greedy span", "[1] and [2]", "[1] and [2]"},
		{"multiline array", "noise\n[\n  \"a\"\n]\n", "[\n  \"a\"\n]"},
		{"nothing", "no json here", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.text); got != tt.want {
				t.Errorf("ExtractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateSchema(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"non-empty array", `["a"]`, false},
		{"empty array", `[]`, true},
		{"object", `{"a": 1}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSchema(config.DefaultSchema, []byte(tt.doc))
			if (err != nil) != tt.wantErr {
				t.Errorf("validateSchema() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrSchemaMismatch) {
				t.Errorf("validateSchema() error = %v, want ErrSchemaMismatch", err)
			}
		})
	}
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	promptFile := filepath.Join(dir, "prompt.md")
	require.NoError(t, os.WriteFile(promptFile, []byte("Write captions."), 0644))

	cfg := &config.Config{
		Paths:  config.PathsConfig{IssuesRoot: filepath.Join(dir, "issues")},
		Gemini: config.GeminiConfig{PromptFile: promptFile},
	}
	require.NoError(t, cfg.Validate())

	script := cfg.Paths.ScriptPath("1")
	require.NoError(t, os.MkdirAll(filepath.Dir(script), 0755))
	require.NoError(t, os.WriteFile(script, []byte("「こんにちは」"), 0644))
	return cfg
}

func TestGenerateWithCLI(t *testing.T) {
	cfg := newTestConfig(t)
	exec := &fakeExecutor{out: "Sure!\n```json\n[{\"main\":\"夜の街\",\"sub\":\"静かな話\"}]\n```\n"}

	gen, err := New(cfg, exec, logger.New("error", logger.WithWriter(&bytes.Buffer{})))
	require.NoError(t, err)

	res, err := gen.Generate(context.Background(), "1", "")
	require.NoError(t, err)

	assert.Equal(t, "gemini", exec.name)
	assert.Equal(t, "Write captions.\n\n「こんにちは」", exec.input)
	assert.Equal(t, cfg.Paths.ThumbnailPath("1"), res.Path)
	assert.Equal(t, 1, res.Items)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	want := "[\n  {\n    \"main\": \"夜の街\",\n    \"sub\": \"静かな話\"\n  }\n]\n"
	assert.Equal(t, want, string(data))
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		execErr error
		wantErr error
	}{
		{"no json", "I cannot help with that.", nil, ErrNoJSON},
		{"invalid json", "```json\n[oops\n```", nil, ErrInvalidJSON},
		{"schema mismatch", "```json\n[]\n```", nil, ErrSchemaMismatch},
		{"cli missing", "", fmt.Errorf("command 'gemini': %w", executor.ErrNotFound), executor.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig(t)
			exec := &fakeExecutor{out: tt.out, err: tt.execErr}
			gen, err := New(cfg, exec, logger.New("error", logger.WithWriter(&bytes.Buffer{})))
			require.NoError(t, err)

			_, err = gen.Generate(context.Background(), "1", "")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoFileExists(t, cfg.Paths.ThumbnailPath("1"))
		})
	}
}

func TestGenerateMissingInputs(t *testing.T) {
	cfg := newTestConfig(t)
	gen, err := New(cfg, &fakeExecutor{out: "[1]"}, logger.New("error", logger.WithWriter(&bytes.Buffer{})))
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), "", "")
	assert.Error(t, err)

	_, err = gen.Generate(context.Background(), "1", filepath.Join(t.TempDir(), "missing.md"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	cfg.Gemini.PromptFile = filepath.Join(t.TempDir(), "missing-prompt.md")
	_, err = gen.Generate(context.Background(), "1", "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewAPIBackendRequiresKeys(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Gemini.Backend = "api"

	_, err := New(cfg, nil, logger.New("error", logger.WithWriter(&bytes.Buffer{})))
	assert.ErrorIs(t, err, ErrNoAPIKeys)
}

func TestGeminiModelRotatesKeys(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("x-goog-api-key")
		seen = append(seen, key)
		w.Header().Set("Content-Type", "application/json")

		if key == "k1" {
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`)
			return
		}
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"[\"ok\"]"}]}}]}`)
	}))
	defer srv.Close()

	var logs bytes.Buffer
	m := newGeminiModel([]string{"k1", "k2"}, "gemini-2.5-flash", logger.New("debug", logger.WithWriter(&logs)))
	m.httpOptions = genai.HTTPOptions{BaseURL: srv.URL + "/"}

	out, err := m.Complete(context.Background(), "prompt")
	require.NoError(t, err)

	assert.Equal(t, `["ok"]`, out)
	assert.Equal(t, []string{"k1", "k2"}, seen)
	assert.Equal(t, 1, m.currentKey)
	assert.Contains(t, logs.String(), "Key 1 rate limited")
}

func TestGeminiModelAllKeysExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`)
	}))
	defer srv.Close()

	m := newGeminiModel([]string{"k1", "k2"}, "gemini-2.5-flash", logger.New("error", logger.WithWriter(&bytes.Buffer{})))
	m.httpOptions = genai.HTTPOptions{BaseURL: srv.URL + "/"}

	_, err := m.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all API keys exhausted")
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"api error 429", genai.APIError{Code: 429, Message: "slow down"}, true},
		{"wrapped api error", fmt.Errorf("call: %w", genai.APIError{Code: 429}), true},
		{"quota message", errors.New("quota exceeded"), true},
		{"resource exhausted", errors.New("RESOURCE_EXHAUSTED"), true},
		{"bad request", genai.APIError{Code: 400, Message: "bad", Status: "INVALID_ARGUMENT"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRateLimited(tt.err); got != tt.want {
				t.Errorf("isRateLimited() = %v, want %v", got, tt.want)
			}
		})
	}
}
