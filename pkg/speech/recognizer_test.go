package speech

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedRecognizerRotates(t *testing.T) {
	r := NewSimulatedRecognizer(0)

	var heard []string
	for i := 0; i < 5; i++ {
		phrase, err := r.Listen(context.Background(), "en")
		require.NoError(t, err)
		heard = append(heard, phrase)
	}

	assert.Equal(t, cannedPhrases["en"][0], heard[0])
	assert.Equal(t, cannedPhrases["en"][1], heard[1])
	assert.Equal(t, cannedPhrases["en"][2], heard[2])
	assert.Equal(t, cannedPhrases["en"][3], heard[3])
	// Rotation wraps around.
	assert.Equal(t, cannedPhrases["en"][0], heard[4])
}

func TestSimulatedRecognizerPerLanguageRotation(t *testing.T) {
	r := NewSimulatedRecognizer(0)

	en, err := r.Listen(context.Background(), "en")
	require.NoError(t, err)
	ne, err := r.Listen(context.Background(), "ne")
	require.NoError(t, err)

	assert.Equal(t, cannedPhrases["en"][0], en)
	assert.Equal(t, cannedPhrases["ne"][0], ne)
}

func TestSimulatedRecognizerUnknownLanguageFallsBack(t *testing.T) {
	r := NewSimulatedRecognizer(0)

	phrase, err := r.Listen(context.Background(), "fr")
	require.NoError(t, err)
	assert.Equal(t, cannedPhrases["en"][0], phrase)
}

func TestSimulatedRecognizerHonorsContext(t *testing.T) {
	r := NewSimulatedRecognizer(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Listen(ctx, "en")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulatedTranscribeDelegatesToListen(t *testing.T) {
	r := NewSimulatedRecognizer(0)

	phrase, err := r.Transcribe(context.Background(), "ignored.wav", "en")
	require.NoError(t, err)
	assert.Equal(t, cannedPhrases["en"][0], phrase)
}

func TestWhisperRecognizerCannotListen(t *testing.T) {
	r := NewWhisperRecognizer("test-key")

	_, err := r.Listen(context.Background(), "en")
	assert.ErrorIs(t, err, ErrListenUnsupported)
}
