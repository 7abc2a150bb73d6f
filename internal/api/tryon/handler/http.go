package tryonHandler

import (
	tryonService "VirtualMirror/internal/api/tryon/service"
	"VirtualMirror/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type TryOnHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	tryonService tryonService.ITryOnService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ts tryonService.ITryOnService,
) *TryOnHandler {
	return &TryOnHandler{
		log:          log,
		validator:    validate,
		middleware:   middleware,
		tryonService: ts,
	}
}

func (h *TryOnHandler) Start(srv fiber.Router) {
	tryon := srv.Group("/try-on")

	tryon.Use(h.middleware.NewTokenMiddleware)

	tryon.Post("/", h.CreateTryOn)
	tryon.Get("/history", h.GetHistory)
	tryon.Get("/favorites", h.GetFavorites)
	tryon.Get("/:id", h.GetTryOn)
	tryon.Post("/:id/favorite", h.ToggleFavorite)

	tryon.Post("/video", h.GenerateVideo)
	tryon.Post("/video/share", h.ShareVideo)
}
