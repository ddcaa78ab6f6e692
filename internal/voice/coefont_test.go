package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/tts-flow/internal/config"
	"github.com/nguyentantai21042004/tts-flow/internal/logger"
)

func newTestSynthesizer(t *testing.T, baseURL string) (*implSynthesizer, *config.Config) {
	t.Helper()

	cfg := &config.Config{
		Paths:   config.PathsConfig{IssuesRoot: t.TempDir()},
		CoeFont: config.CoeFontConfig{BaseURL: baseURL, AccessKey: "access", AccessSecret: "secret"},
	}
	require.NoError(t, cfg.Validate())

	s := New(cfg, logger.New("error", logger.WithWriter(&bytes.Buffer{}))).(*implSynthesizer)
	s.now = func() time.Time { return time.Unix(1700000000, 0) }

	input := cfg.Paths.TTSInputPath("4")
	require.NoError(t, os.MkdirAll(filepath.Dir(input), 0755))
	require.NoError(t, os.WriteFile(input, []byte("おはよう\nまたね\n"), 0644))
	return s, cfg
}

func TestSign(t *testing.T) {
	got := Sign("secret", "1700000000", []byte(`{"a":1}`))
	assert.Equal(t, "f3a15680551495e7d27302c4d19e4cbedc650f19fa5b40373c00cbea52a64406", got)
	assert.Equal(t, got, Sign("secret", "1700000000", []byte(`{"a":1}`)))
	assert.NotEqual(t, got, Sign("other", "1700000000", []byte(`{"a":1}`)))
	assert.NotEqual(t, got, Sign("secret", "1700000001", []byte(`{"a":1}`)))
}

func TestSynthesize(t *testing.T) {
	var gotBody []byte
	var gotHeader http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/text2speech", r.URL.Path)
		gotHeader = r.Header.Clone()
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte("RIFFwave"))
	}))
	defer srv.Close()

	s, cfg := newTestSynthesizer(t, srv.URL)

	res, err := s.Synthesize(context.Background(), "4")
	require.NoError(t, err)

	assert.Equal(t, cfg.Paths.VoicePath("4"), res.Path)
	assert.Equal(t, 8, res.Bytes)
	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "RIFFwave", string(data))

	var req text2SpeechRequest
	require.NoError(t, json.Unmarshal(gotBody, &req))
	assert.Equal(t, "2b174967-1a8a-42e4-b1ae-5f6548cfa05d", req.Coefont)
	assert.Equal(t, "おはよう\nまたね\n", req.Text)

	assert.Equal(t, "access", gotHeader.Get("Authorization"))
	assert.Equal(t, "1700000000", gotHeader.Get("X-Coefont-Date"))
	assert.Equal(t, Sign("secret", "1700000000", gotBody), gotHeader.Get("X-Coefont-Content"))
	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))
}

func TestSynthesizeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid signature"}`))
	}))
	defer srv.Close()

	s, cfg := newTestSynthesizer(t, srv.URL)

	_, err := s.Synthesize(context.Background(), "4")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "invalid signature")
	assert.NoFileExists(t, cfg.Paths.VoicePath("4"))
}

func TestSynthesizeMissingCredentials(t *testing.T) {
	s, _ := newTestSynthesizer(t, "http://127.0.0.1:1")
	s.cfg.CoeFont.AccessSecret = ""

	_, err := s.Synthesize(context.Background(), "4")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestSynthesizeMissingInput(t *testing.T) {
	s, _ := newTestSynthesizer(t, "http://127.0.0.1:1")

	_, err := s.Synthesize(context.Background(), "5")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
