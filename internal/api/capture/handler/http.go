package captureHandler

import (
	captureService "VirtualMirror/internal/api/capture/service"
	"VirtualMirror/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type CaptureHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	captureService captureService.ICaptureService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs captureService.ICaptureService,
) *CaptureHandler {
	return &CaptureHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		captureService: cs,
	}
}

func (h *CaptureHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	capture := srv.Group("/capture")

	capture.Use("/ws", wsMiddleware)
	capture.Get("/ws", websocket.New(h.handlePoseWebSocket))

	capture.Use(h.middleware.NewTokenMiddleware)
	capture.Post("/position", h.CheckPosition)

	capture.Get("/profile", h.GetProfile)
	capture.Put("/profile", h.SaveProfile)
}
