package voiceService

import (
	posService "EnergyPalace/internal/api/pos/service"
	"EnergyPalace/internal/api/voice"
	voiceRepository "EnergyPalace/internal/api/voice/repository"
	"EnergyPalace/pkg/nlp"
	"EnergyPalace/pkg/speech"
	"EnergyPalace/pkg/utils"
	"context"
	"mime/multipart"
	"sync"

	"github.com/sirupsen/logrus"
)

type IVoiceService interface {
	ProcessText(ctx context.Context, text string, language string, speak bool) (voice.CommandResponse, error)
	ProcessAudio(ctx context.Context, file *multipart.FileHeader, language string, speak bool) (voice.CommandResponse, error)
	ListenAndProcess(ctx context.Context, language string, speak bool) (voice.CommandResponse, error)
	GetHistory(ctx context.Context, limit int, offset int) (voice.HistoryResponse, error)
	GetAnalytics(ctx context.Context) (voice.AnalyticsResponse, error)
}

type voiceService struct {
	log        *logrus.Logger
	repo       voiceRepository.Repository
	pos        posService.IPosService
	parser     nlp.IParser
	responder  nlp.IResponder
	recognizer speech.ItfRecognizer
	speaker    speech.ItfSynthesizer
	utils      utils.IUtils

	mu          sync.Mutex
	isListening bool
}

func NewVoiceService(
	log *logrus.Logger,
	repo voiceRepository.Repository,
	pos posService.IPosService,
	parser nlp.IParser,
	responder nlp.IResponder,
	recognizer speech.ItfRecognizer,
	speaker speech.ItfSynthesizer,
	utils utils.IUtils,
) IVoiceService {
	return &voiceService{
		log:        log,
		repo:       repo,
		pos:        pos,
		parser:     parser,
		responder:  responder,
		recognizer: recognizer,
		speaker:    speaker,
		utils:      utils,
	}
}
