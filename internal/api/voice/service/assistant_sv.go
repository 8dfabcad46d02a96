package voiceService

import (
	"EnergyPalace/internal/api/voice"
	"EnergyPalace/internal/entity"
	"EnergyPalace/pkg/nlp"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

func (s *voiceService) ProcessText(ctx context.Context, text string, language string, speak bool) (voice.CommandResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return voice.CommandResponse{}, voice.ErrEmptyTranscript
	}
	if language == "" {
		language = nlp.LanguageEnglish
	}

	parsed, matched := s.parser.Parse(text, language)

	resp := voice.CommandResponse{
		Transcript: text,
		Language:   language,
	}

	if !matched {
		resp.Intent = nlp.IntentNone
		resp.Status = voice.StatusNoMatch
		resp.Message = s.responder.Respond(nlp.IntentNone, language)

		s.record(ctx, resp, nil)
		s.speakIf(ctx, speak, resp.Message, language)
		return resp, nil
	}

	resp.Intent = parsed.Intent
	resp.Fields = parsed.Fields
	resp.Confidence = parsed.Confidence

	if err := s.execute(ctx, parsed, language); err != nil {
		s.log.WithFields(logrus.Fields{
			"intent":   parsed.Intent,
			"language": language,
			"error":    err.Error(),
		}).Warn("Voice command execution failed")

		resp.Status = voice.StatusFailed
		if errors.Is(err, errNoProductMatch) {
			resp.Status = voice.StatusNoMatch
		}
		resp.Message = s.responder.Respond(nlp.IntentNone, language)

		s.record(ctx, resp, parsed.Fields)
		s.speakIf(ctx, speak, resp.Message, language)
		return resp, nil
	}

	resp.Status = voice.StatusExecuted
	resp.Message = s.responder.Respond(parsed.Intent, language)

	s.record(ctx, resp, parsed.Fields)
	s.speakIf(ctx, speak, resp.Message, language)
	return resp, nil
}

func (s *voiceService) ProcessAudio(ctx context.Context, file *multipart.FileHeader, language string, speak bool) (voice.CommandResponse, error) {
	if file == nil {
		return voice.CommandResponse{}, voice.ErrInvalidAudioFile
	}

	src, err := file.Open()
	if err != nil {
		return voice.CommandResponse{}, voice.ErrInvalidAudioFile
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "voice-*"+filepath.Ext(file.Filename))
	if err != nil {
		return voice.CommandResponse{}, err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return voice.CommandResponse{}, voice.ErrInvalidAudioFile
	}
	tmp.Close()

	transcript, err := s.recognizer.Transcribe(ctx, tmp.Name(), language)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"file":  file.Filename,
			"error": err.Error(),
		}).Error("Audio transcription failed")
		return voice.CommandResponse{}, voice.ErrTranscribeFailed
	}

	return s.ProcessText(ctx, transcript, language, speak)
}

// ListenAndProcess captures one utterance through the recognizer. Only one
// listening session may run at a time.
func (s *voiceService) ListenAndProcess(ctx context.Context, language string, speak bool) (voice.CommandResponse, error) {
	s.mu.Lock()
	if s.isListening {
		s.mu.Unlock()
		return voice.CommandResponse{}, voice.ErrListening
	}
	s.isListening = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isListening = false
		s.mu.Unlock()
	}()

	transcript, err := s.recognizer.Listen(ctx, language)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"language": language,
			"error":    err.Error(),
		}).Error("Listening failed")
		return voice.CommandResponse{}, voice.ErrListenFailed
	}

	return s.ProcessText(ctx, transcript, language, speak)
}

// record appends the processed command to history. History is advisory, a
// write failure never fails the command itself.
func (s *voiceService) record(ctx context.Context, resp voice.CommandResponse, fields map[string]string) {
	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return
	}

	metadata := map[string]interface{}{}
	for k, v := range fields {
		metadata[k] = v
	}

	cmd := entity.VoiceCommand{
		ID:         id,
		Transcript: resp.Transcript,
		Language:   resp.Language,
		Intent:     resp.Intent,
		Response:   resp.Message,
		Confidence: resp.Confidence,
		Success:    resp.Status == voice.StatusExecuted,
		Metadata:   metadata,
	}

	client, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Could not open repository client for history write")
		return
	}

	if err := client.History.CreateCommand(ctx, cmd); err != nil {
		s.log.WithFields(logrus.Fields{
			"intent": resp.Intent,
			"error":  err.Error(),
		}).Warn("Could not record voice command history")
	}
}

func (s *voiceService) speakIf(ctx context.Context, speak bool, text string, language string) {
	if !speak || text == "" {
		return
	}

	if err := s.speaker.Speak(ctx, text, language); err != nil {
		s.log.WithFields(logrus.Fields{
			"language": language,
			"error":    err.Error(),
		}).Debug("Speech synthesis unavailable")
	}
}

func (s *voiceService) GetHistory(ctx context.Context, limit int, offset int) (voice.HistoryResponse, error) {
	client, err := s.repo.NewClient(false)
	if err != nil {
		return voice.HistoryResponse{}, voice.ErrHistoryQuery
	}

	commands, total, err := client.History.GetCommands(ctx, limit, offset)
	if err != nil {
		return voice.HistoryResponse{}, voice.ErrHistoryQuery
	}

	return voice.HistoryResponse{Commands: commands, Total: total}, nil
}

func (s *voiceService) GetAnalytics(ctx context.Context) (voice.AnalyticsResponse, error) {
	client, err := s.repo.NewClient(false)
	if err != nil {
		return voice.AnalyticsResponse{}, voice.ErrHistoryQuery
	}

	byIntent, err := client.History.GetIntentStats(ctx)
	if err != nil {
		return voice.AnalyticsResponse{}, voice.ErrHistoryQuery
	}

	byLanguage, err := client.History.GetLanguageStats(ctx)
	if err != nil {
		return voice.AnalyticsResponse{}, voice.ErrHistoryQuery
	}

	resp := voice.AnalyticsResponse{
		ByIntent:   byIntent,
		ByLanguage: byLanguage,
	}
	for _, stat := range byIntent {
		resp.Total += stat.Total
		resp.Succeeded += stat.Succeeded
	}
	if resp.Total > 0 {
		resp.SuccessRate = float64(resp.Succeeded) / float64(resp.Total)
	}

	return resp, nil
}
