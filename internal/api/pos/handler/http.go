package posHandler

import (
	posService "EnergyPalace/internal/api/pos/service"
	"EnergyPalace/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type PosHandler struct {
	log        *logrus.Logger
	validator  *validator.Validate
	middleware middleware.Middleware
	posService posService.IPosService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	posService posService.IPosService,
) *PosHandler {
	return &PosHandler{
		log:        log,
		validator:  validate,
		middleware: middleware,
		posService: posService,
	}
}

func (h *PosHandler) Start(srv fiber.Router) {
	posGroup := srv.Group("/pos")

	posGroup.Get("/products", h.GetProducts)
	posGroup.Get("/insights", h.GetInsights)

	posGroup.Get("/carts", h.GetCarts)
	posGroup.Post("/carts/orders", h.AddOrder)
	posGroup.Delete("/carts/orders/:index", h.RemoveOrder)
	posGroup.Post("/carts/switch", h.SwitchOrder)
	posGroup.Post("/carts/items", h.AddToCart)
	posGroup.Delete("/carts/items", h.RemoveFromCart)
	posGroup.Patch("/carts/items", h.UpdateQuantity)
	posGroup.Post("/carts/paymode", h.SetPayMode)

	posGroup.Post("/orders/submit", h.SubmitOrder)
	posGroup.Post("/expenses", h.SubmitExpense)
	posGroup.Post("/deposits", h.SubmitDeposit)
	posGroup.Post("/charging", h.SubmitCharging)
}
