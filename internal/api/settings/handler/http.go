package settingsHandler

import (
	settingsService "VirtualMirror/internal/api/settings/service"
	"VirtualMirror/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type SettingsHandler struct {
	log             *logrus.Logger
	validator       *validator.Validate
	middleware      middleware.Middleware
	settingsService settingsService.ISettingsService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ss settingsService.ISettingsService,
) *SettingsHandler {
	return &SettingsHandler{
		log:             log,
		validator:       validate,
		middleware:      middleware,
		settingsService: ss,
	}
}

func (h *SettingsHandler) Start(srv fiber.Router) {
	st := srv.Group("/settings")

	// The consent text must be readable before any consent exists, so it
	// stays outside the token gate.
	st.Get("/gdpr/consent-text", h.GetConsentText)
	st.Get("/welcome-voice", h.GetWelcomeVoiceFlag)

	st.Use(h.middleware.NewTokenMiddleware)

	st.Get("/api-config", h.GetAPIConfig)
	st.Put("/api-config", h.SetAPIConfig)

	st.Get("/permissions", h.GetPermissions)
	st.Put("/permissions", h.SetPermissions)

	st.Get("/gdpr", h.GetGDPRConfig)
	st.Put("/gdpr", h.SetGDPRConfig)
	st.Put("/gdpr/consent-text", h.SetConsentText)

	st.Post("/welcome-voice/seen", h.MarkWelcomeVoiceSeen)
}
