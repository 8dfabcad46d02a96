package voiceHandler

import (
	"EnergyPalace/internal/api/voice"
	contextPkg "EnergyPalace/pkg/context"
	"EnergyPalace/pkg/handlerUtil"
	"EnergyPalace/pkg/log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

// ProcessCommand accepts a command three ways: transcript text in the body,
// an uploaded audio file, or neither, which starts a microphone capture on
// the recognizer backend.
func (h *VoiceHandler) ProcessCommand(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing voice command request")

	var req voice.ProcessCommandRequest
	if err := ctx.BodyParser(&req); err != nil {
		req = voice.ProcessCommandRequest{}
	}

	if req.Language == "" {
		req.Language = ctx.Query("language", "en")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	audioFile, _ := ctx.FormFile("audio")

	var resp voice.CommandResponse
	var err error
	switch {
	case req.Text != "":
		resp, err = h.voiceService.ProcessText(c, req.Text, req.Language, req.Speak)
	case audioFile != nil:
		resp, err = h.voiceService.ProcessAudio(c, audioFile, req.Language, req.Speak)
	default:
		resp, err = h.voiceService.ListenAndProcess(c, req.Language, req.Speak)
	}
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "process_command")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, resp)
	}
}

func (h *VoiceHandler) GetHistory(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing get history request")

	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	resp, err := h.voiceService.GetHistory(c, limit, offset)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_history")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, resp)
	}
}

func (h *VoiceHandler) GetAnalytics(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing get analytics request")

	resp, err := h.voiceService.GetAnalytics(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_analytics")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, resp)
	}
}
