package voice

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type text2SpeechRequest struct {
	Coefont string `json:"coefont"`
	Text    string `json:"text"`
}

func (s *implSynthesizer) Synthesize(ctx context.Context, issueID string) (Result, error) {
	issueID = strings.TrimSpace(issueID)
	if issueID == "" {
		return Result{}, fmt.Errorf("issue id is required")
	}
	if s.cfg.CoeFont.AccessKey == "" || s.cfg.CoeFont.AccessSecret == "" {
		return Result{}, ErrMissingCredentials
	}

	text, err := os.ReadFile(s.cfg.Paths.TTSInputPath(issueID))
	if err != nil {
		return Result{}, fmt.Errorf("read tts input: %w", err)
	}

	body, err := json.Marshal(text2SpeechRequest{
		Coefont: s.cfg.CoeFont.VoiceID,
		Text:    string(text),
	})
	if err != nil {
		return Result{}, fmt.Errorf("marshal request: %w", err)
	}

	date := strconv.FormatInt(s.now().Unix(), 10)

	s.logger.Info(ctx, "Requesting voice for issue %s (%d bytes of text)", issueID, len(text))
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", s.cfg.CoeFont.AccessKey).
		SetHeader("X-Coefont-Date", date).
		SetHeader("X-Coefont-Content", Sign(s.cfg.CoeFont.AccessSecret, date, body)).
		SetBody(body).
		Post("/v2/text2speech")
	if err != nil {
		return Result{}, fmt.Errorf("request text2speech: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return Result{}, &APIError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	outPath := s.cfg.Paths.VoicePath(issueID)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return Result{}, fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, resp.Body(), 0644); err != nil {
		return Result{}, fmt.Errorf("write voice file: %w", err)
	}

	s.logger.Info(ctx, "Successfully generated voice file: %s", outPath)
	return Result{Path: outPath, Bytes: len(resp.Body())}, nil
}

// Sign computes the X-Coefont-Content header: hex HMAC-SHA256 of date+body.
func Sign(secret, date string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(date))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
