package voiceHandler

import (
	voiceService "EnergyPalace/internal/api/voice/service"
	"EnergyPalace/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type VoiceHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	voiceService voiceService.IVoiceService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	voiceService voiceService.IVoiceService,
) *VoiceHandler {
	return &VoiceHandler{
		log:          log,
		validator:    validate,
		middleware:   middleware,
		voiceService: voiceService,
	}
}

func (h *VoiceHandler) Start(srv fiber.Router) {
	voiceGroup := srv.Group("/voice")

	voiceGroup.Post("/commands", h.ProcessCommand)
	voiceGroup.Get("/history", h.GetHistory)
	voiceGroup.Get("/analytics", h.GetAnalytics)
}
