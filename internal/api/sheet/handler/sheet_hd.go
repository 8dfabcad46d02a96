package sheetHandler

import (
	"EnergyPalace/internal/api/sheet"
	contextPkg "EnergyPalace/pkg/context"
	"EnergyPalace/pkg/handlerUtil"
	"EnergyPalace/pkg/log"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *SheetHandler) GetSheets(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing get sheets request")

	list, err := h.sheetService.GetSheets(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_sheets")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, sheet.SheetListResponse{
			Sheets: list,
		})
	}
}

func (h *SheetHandler) AddSheet(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing add sheet request")

	var req sheet.AddSheetRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	added, err := h.sheetService.AddSheet(c, req.Name, req.URL)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "add_sheet")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, added)
	}
}

func (h *SheetHandler) RemoveSheet(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing remove sheet request")

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("sheet ID is required"), ctx.Path())
	}

	if err := h.sheetService.RemoveSheet(c, id); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "remove_sheet")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Sheet removed successfully",
		})
	}
}

func (h *SheetHandler) ActivateSheet(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing activate sheet request")

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("sheet ID is required"), ctx.Path())
	}

	activated, err := h.sheetService.ActivateSheet(c, id)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "activate_sheet")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, activated)
	}
}

func (h *SheetHandler) TestSheet(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing test sheet request")

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("sheet ID is required"), ctx.Path())
	}

	if err := h.sheetService.TestSheet(c, id); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "test_sheet")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, sheet.TestSheetResponse{
			Reachable: true,
		})
	}
}
