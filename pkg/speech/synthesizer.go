package speech

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/net/context"
)

// ItfSynthesizer speaks a confirmation message. Callers treat failures as
// diagnostics: a lost confirmation never fails the command that produced it.
type ItfSynthesizer interface {
	Speak(ctx context.Context, text string, language string) error
}

type httpSynthesizer struct {
	apiURL string
	apiKey string
	http   *http.Client
}

func NewSynthesizer() ItfSynthesizer {
	return &httpSynthesizer{
		apiURL: os.Getenv("SPEECH_TTS_URL"),
		apiKey: os.Getenv("SPEECH_TTS_KEY"),
		http:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *httpSynthesizer) Speak(ctx context.Context, text string, language string) error {
	if s.apiURL == "" {
		return fmt.Errorf("speech synthesis not configured")
	}

	requestBody := map[string]interface{}{
		"text":     text,
		"language": speechLocale(language),
		"voice_settings": map[string]interface{}{
			"pitch": 1.0,
			"rate":  0.8,
		},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", s.apiKey)

	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("speech synthesis error: %s", resp.Status)
	}

	return nil
}

func speechLocale(language string) string {
	if language == "ne" {
		return "ne-NP"
	}
	return "en-US"
}
