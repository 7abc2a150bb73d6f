package catalogService

import (
	"VirtualMirror/internal/api/catalog"
	"VirtualMirror/internal/entity"
	contextPkg "VirtualMirror/pkg/context"
	"context"
	"mime/multipart"
	"time"

	"github.com/sirupsen/logrus"
)

func (s *catalogService) ListGarments(ctx context.Context, category string) ([]entity.Garment, error) {
	repo, err := s.catalogRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	if category != "" {
		if !entity.ValidGarmentCategory(category) {
			return nil, catalog.ErrInvalidCategory
		}
		return repo.Garments.GetGarmentsByCategory(ctx, category)
	}

	return repo.Garments.GetAllGarments(ctx)
}

func (s *catalogService) GetGarment(ctx context.Context, id string) (entity.Garment, error) {
	repo, err := s.catalogRepo.NewClient(false)
	if err != nil {
		return entity.Garment{}, err
	}

	return repo.Garments.GetGarmentByID(ctx, id)
}

func (s *catalogService) CreateGarment(ctx context.Context, req catalog.CreateGarmentRequest) (entity.Garment, error) {
	requestID := contextPkg.GetRequestID(ctx)

	imageURL := req.ImageURL
	if req.Image != nil {
		if err := s.utils.ValidateImageFile(req.Image); err != nil {
			return entity.Garment{}, catalog.ErrMissingImage
		}

		uploaded, err := s.s3Client.UploadFile(req.Image)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to upload garment image")
			return entity.Garment{}, catalog.ErrFailedToUpload
		}
		imageURL = uploaded
	}

	if imageURL == "" {
		return entity.Garment{}, catalog.ErrMissingImage
	}

	category := req.Category
	if category == "" && req.Image != nil {
		detected, err := s.categorizeFile(ctx, req.Image)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Category detection failed for new garment")
			return entity.Garment{}, catalog.ErrCategoryUnclear
		}
		category = detected
	}

	if !entity.ValidGarmentCategory(category) {
		return entity.Garment{}, catalog.ErrInvalidCategory
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return entity.Garment{}, err
	}

	garment := entity.Garment{
		ID:          id,
		Name:        req.Name,
		Brand:       req.Brand,
		Category:    category,
		ImageURL:    imageURL,
		Description: req.Description,
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	repo, err := s.catalogRepo.NewClient(false)
	if err != nil {
		return entity.Garment{}, err
	}

	if err := repo.Garments.CreateGarment(ctx, garment); err != nil {
		return entity.Garment{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"garment_id": id,
		"category":   category,
	}).Info("Garment added to catalog")

	return garment, nil
}

func (s *catalogService) RemoveGarment(ctx context.Context, id string) error {
	repo, err := s.catalogRepo.NewClient(false)
	if err != nil {
		return err
	}

	return repo.Garments.DeactivateGarment(ctx, id)
}

func (s *catalogService) CategorizeImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", catalog.ErrMissingImage
	}

	if err := s.utils.ValidateImageFile(file); err != nil {
		return "", catalog.ErrMissingImage
	}

	return s.categorizeFile(ctx, file)
}

func (s *catalogService) categorizeFile(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	base64Image, err := s.utils.ConvertFileToBase64(src)
	if err != nil {
		return "", err
	}

	category, err := s.gemini.DetectGarmentCategory(ctx, base64Image)
	if err != nil {
		return "", err
	}

	if !entity.ValidGarmentCategory(category) {
		return "", catalog.ErrCategoryUnclear
	}

	return category, nil
}
