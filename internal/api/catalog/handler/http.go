package catalogHandler

import (
	catalogService "VirtualMirror/internal/api/catalog/service"
	"VirtualMirror/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CatalogHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	catalogService catalogService.ICatalogService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs catalogService.ICatalogService,
) *CatalogHandler {
	return &CatalogHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		catalogService: cs,
	}
}

func (h *CatalogHandler) Start(srv fiber.Router) {
	garments := srv.Group("/garments")

	garments.Get("/", h.ListGarments)
	garments.Get("/:id", h.GetGarment)

	garments.Use(h.middleware.NewTokenMiddleware)
	garments.Post("/", h.CreateGarment)
	garments.Delete("/:id", h.RemoveGarment)
	garments.Post("/categorize", h.CategorizeGarment)
}
