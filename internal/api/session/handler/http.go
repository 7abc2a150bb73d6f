package sessionHandler

import (
	sessionService "VirtualMirror/internal/api/session/service"
	"VirtualMirror/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type SessionHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	sessionService sessionService.ISessionService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ss sessionService.ISessionService,
) *SessionHandler {
	return &SessionHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		sessionService: ss,
	}
}

func (h *SessionHandler) Start(srv fiber.Router) {
	sess := srv.Group("/session")

	// Pre-auth lifecycle surface: the client has no token until login.
	sess.Post("/bootstrap", h.Bootstrap)
	sess.Post("/terms/accept", h.AcceptTerms)
	sess.Post("/consent", h.GrantConsent)
	sess.Post("/login", h.Login)
	sess.Get("/state", h.State)

	sess.Use(h.middleware.NewTokenMiddleware)

	sess.Post("/activity", h.ReportActivity)
	sess.Post("/background", h.EnterBackground)
	sess.Post("/foreground", h.EnterForeground)
	sess.Post("/wipe", h.ForceWipe)
}
