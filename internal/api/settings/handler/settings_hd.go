package settingsHandler

import (
	"VirtualMirror/internal/api/settings"
	contextPkg "VirtualMirror/pkg/context"
	"VirtualMirror/pkg/handlerUtil"
	"VirtualMirror/pkg/log"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *SettingsHandler) GetAPIConfig(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	cfg, err := h.settingsService.GetAPIConfig(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_api_config")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, cfg)
	}
}

func (h *SettingsHandler) SetAPIConfig(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing api config update")

	var req settings.APIConfig
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.settingsService.SetAPIConfig(c, req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "set_api_config")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "API configuration stored",
		})
	}
}

func (h *SettingsHandler) GetPermissions(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	perms, err := h.settingsService.GetPermissions(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_permissions")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, perms)
	}
}

func (h *SettingsHandler) SetPermissions(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	stored, err := h.settingsService.SetPermissions(c, ctx.Body())
	if err != nil {
		if errors.Is(err, settings.ErrInvalidPermissionsPayload) {
			// The previous values survive a bad payload; hand them back so
			// the client can resynchronize.
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message":     "Malformed permissions payload, previous values were kept",
				"code":        "INVALID_PERMISSIONS",
				"permissions": stored,
			})
		}
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "set_permissions")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, stored)
	}
}

func (h *SettingsHandler) GetGDPRConfig(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	cfg, err := h.settingsService.GetGDPRConfig(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_gdpr_config")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, cfg)
	}
}

func (h *SettingsHandler) SetGDPRConfig(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req settings.GDPRConfig
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.settingsService.SetGDPRConfig(c, req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "set_gdpr_config")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "GDPR configuration stored",
		})
	}
}

func (h *SettingsHandler) GetConsentText(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	text, err := h.settingsService.GetConsentText(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_consent_text")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, settings.ConsentTextResponse{
			Text: text,
		})
	}
}

func (h *SettingsHandler) SetConsentText(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req settings.ConsentTextRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.settingsService.SetConsentText(c, req.Text); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "set_consent_text")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Consent text stored",
		})
	}
}

func (h *SettingsHandler) GetWelcomeVoiceFlag(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	seen, err := h.settingsService.WelcomeVoiceSeen(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_welcome_voice_flag")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, settings.WelcomeFlagResponse{
			Seen: seen,
		})
	}
}

func (h *SettingsHandler) MarkWelcomeVoiceSeen(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	if err := h.settingsService.MarkWelcomeVoiceSeen(c); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "mark_welcome_voice_seen")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Welcome voice marked as shown",
		})
	}
}
