package speech

import (
	"errors"
	"os"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/net/context"
)

// ErrListenUnsupported is returned by backends that can only transcribe
// uploaded audio and have no live capture path.
var ErrListenUnsupported = errors.New("live listening not supported by this recognizer")

// ItfRecognizer is the pluggable recognition backend: Transcribe turns an
// uploaded recording into text, Listen yields a single utterance from a live
// (or simulated) capture session.
type ItfRecognizer interface {
	Transcribe(ctx context.Context, filePath string, language string) (string, error)
	Listen(ctx context.Context, language string) (string, error)
}

// NewRecognizer selects the backend from VOICE_RECOGNIZER; the deterministic
// simulated backend is the default so the service works without credentials.
func NewRecognizer() ItfRecognizer {
	if os.Getenv("VOICE_RECOGNIZER") == "whisper" {
		return NewWhisperRecognizer(os.Getenv("OPENAI_API_KEY"))
	}
	return NewSimulatedRecognizer(2 * time.Second)
}

type whisperRecognizer struct {
	client *openai.Client
}

func NewWhisperRecognizer(apiKey string) ItfRecognizer {
	return &whisperRecognizer{client: openai.NewClient(apiKey)}
}

func (w *whisperRecognizer) Transcribe(ctx context.Context, filePath string, language string) (string, error) {
	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: filePath,
		Language: language,
	}

	resp, err := w.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", err
	}

	return resp.Text, nil
}

func (w *whisperRecognizer) Listen(ctx context.Context, language string) (string, error) {
	return "", ErrListenUnsupported
}

var cannedPhrases = map[string][]string{
	"en": {
		"Order two cups of tea",
		"Add expense of 500 rupees for electricity",
		"Record deposit of 1000 rupees via Fonepay",
		"Start charging from 50 to 80 percent",
	},
	"ne": {
		"दुई कप चिया अर्डर गर्नुहोस्",
		"पाँच सय रुपैयाँ खर्च भयो बिजुली बिलमा",
		"एक हजार रुपैयाँ जम्मा गरियो फोनपेबाट",
		"चार्जिङ सुरु गर्नुहोस् ५० देखि ८० प्रतिशत",
	},
}

type simulatedRecognizer struct {
	delay time.Duration

	mu   sync.Mutex
	next map[string]int
}

// NewSimulatedRecognizer yields canned localized phrases in rotation after a
// fixed delay, standing in for a microphone during demos and tests.
func NewSimulatedRecognizer(delay time.Duration) ItfRecognizer {
	return &simulatedRecognizer{
		delay: delay,
		next:  make(map[string]int),
	}
}

func (s *simulatedRecognizer) Listen(ctx context.Context, language string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(s.delay):
	}

	phrases, ok := cannedPhrases[language]
	if !ok {
		phrases = cannedPhrases["en"]
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	phrase := phrases[s.next[language]%len(phrases)]
	s.next[language]++

	return phrase, nil
}

func (s *simulatedRecognizer) Transcribe(ctx context.Context, filePath string, language string) (string, error) {
	// The simulated backend ignores the recording and yields the next phrase.
	return s.Listen(ctx, language)
}
