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

// ItfTrainer is the pluggable training backend. A successful Train call lets
// the caller raise the template's confidence; the trainer itself never touches
// the catalog.
type ItfTrainer interface {
	Train(ctx context.Context, commandID string, examples []string, language string) error
}

func NewTrainer() ItfTrainer {
	if url := os.Getenv("TRAINING_API_URL"); url != "" {
		return &httpTrainer{
			apiURL: url,
			apiKey: os.Getenv("TRAINING_API_KEY"),
			http:   &http.Client{Timeout: 60 * time.Second},
		}
	}
	return NewSimulatedTrainer(3 * time.Second)
}

type httpTrainer struct {
	apiURL string
	apiKey string
	http   *http.Client
}

func (t *httpTrainer) Train(ctx context.Context, commandID string, examples []string, language string) error {
	requestBody := map[string]interface{}{
		"command_id": commandID,
		"examples":   examples,
		"language":   language,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("training backend error: %s", resp.Status)
	}

	return nil
}

type simulatedTrainer struct {
	delay time.Duration
}

// NewSimulatedTrainer completes after a fixed delay without contacting any
// service, mirroring the in-app training demo.
func NewSimulatedTrainer(delay time.Duration) ItfTrainer {
	return &simulatedTrainer{delay: delay}
}

func (t *simulatedTrainer) Train(ctx context.Context, commandID string, examples []string, language string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(t.delay):
		return nil
	}
}
