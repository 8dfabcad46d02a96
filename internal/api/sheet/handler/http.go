package sheetHandler

import (
	sheetService "EnergyPalace/internal/api/sheet/service"
	"EnergyPalace/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type SheetHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	sheetService sheetService.ISheetService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	sheetService sheetService.ISheetService,
) *SheetHandler {
	return &SheetHandler{
		log:          log,
		validator:    validate,
		middleware:   middleware,
		sheetService: sheetService,
	}
}

func (h *SheetHandler) Start(srv fiber.Router) {
	sheets := srv.Group("/sheets")

	sheets.Get("/", h.GetSheets)
	sheets.Post("/", h.AddSheet)
	sheets.Delete("/:id", h.RemoveSheet)
	sheets.Post("/:id/activate", h.ActivateSheet)
	sheets.Post("/:id/test", h.TestSheet)
}
