package trainingHandler

import (
	trainingService "EnergyPalace/internal/api/training/service"
	"EnergyPalace/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type TrainingHandler struct {
	log             *logrus.Logger
	validator       *validator.Validate
	middleware      middleware.Middleware
	trainingService trainingService.ITrainingService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	trainingService trainingService.ITrainingService,
) *TrainingHandler {
	return &TrainingHandler{
		log:             log,
		validator:       validate,
		middleware:      middleware,
		trainingService: trainingService,
	}
}

func (h *TrainingHandler) Start(srv fiber.Router) {
	training := srv.Group("/training")

	training.Get("/commands", h.GetCommands)
	training.Post("/commands", h.AddCommand)
	training.Delete("/commands/:id", h.DeleteCommand)
	training.Patch("/commands/:id/active", h.ToggleCommand)
	training.Post("/commands/:id/examples", h.AddExample)
	training.Post("/commands/:id/train", h.TrainCommand)
	training.Post("/commands/:id/test", h.TestCommand)
	training.Get("/session", h.GetSession)
}
