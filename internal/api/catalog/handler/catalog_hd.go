package catalogHandler

import (
	"VirtualMirror/internal/api/catalog"
	contextPkg "VirtualMirror/pkg/context"
	"VirtualMirror/pkg/handlerUtil"
	"VirtualMirror/pkg/log"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *CatalogHandler) ListGarments(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	category := ctx.Query("category")

	garments, err := h.catalogService.ListGarments(c, category)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_garments")
	}

	responses := make([]catalog.GarmentResponse, 0, len(garments))
	for _, g := range garments {
		responses = append(responses, catalog.GarmentResponse{
			ID:          g.ID,
			Name:        g.Name,
			Brand:       g.Brand,
			Category:    g.Category,
			ImageURL:    g.ImageURL,
			Description: g.Description,
			CreatedAt:   g.CreatedAt.Format(time.RFC3339),
		})
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, catalog.GarmentListResponse{
			Garments: responses,
			Total:    len(responses),
		})
	}
}

func (h *CatalogHandler) GetGarment(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("garment ID is required"), ctx.Path())
	}

	garment, err := h.catalogService.GetGarment(c, id)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_garment")
	}

	response := catalog.GarmentResponse{
		ID:          garment.ID,
		Name:        garment.Name,
		Brand:       garment.Brand,
		Category:    garment.Category,
		ImageURL:    garment.ImageURL,
		Description: garment.Description,
		CreatedAt:   garment.CreatedAt.Format(time.RFC3339),
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func (h *CatalogHandler) CreateGarment(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing create garment request")

	var req catalog.CreateGarmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	req.Image, _ = ctx.FormFile("image")

	garment, err := h.catalogService.CreateGarment(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_garment")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, catalog.GarmentResponse{
			ID:          garment.ID,
			Name:        garment.Name,
			Brand:       garment.Brand,
			Category:    garment.Category,
			ImageURL:    garment.ImageURL,
			Description: garment.Description,
			CreatedAt:   garment.CreatedAt.Format(time.RFC3339),
		})
	}
}

func (h *CatalogHandler) RemoveGarment(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("garment ID is required"), ctx.Path())
	}

	if err := h.catalogService.RemoveGarment(c, id); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "remove_garment")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Garment removed from catalog",
		})
	}
}

func (h *CatalogHandler) CategorizeGarment(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	file, err := ctx.FormFile("image")
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("garment image is required"), ctx.Path())
	}

	category, err := h.catalogService.CategorizeImage(c, file)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "categorize_garment")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, catalog.CategorizeResponse{
			Category: category,
		})
	}
}
