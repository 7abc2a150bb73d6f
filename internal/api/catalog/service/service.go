package catalogService

import (
	"VirtualMirror/internal/api/catalog"
	catalogRepository "VirtualMirror/internal/api/catalog/repository"
	"VirtualMirror/internal/entity"
	"VirtualMirror/pkg/gemini"
	"VirtualMirror/pkg/s3"
	"VirtualMirror/pkg/utils"
	"context"
	"mime/multipart"

	"github.com/sirupsen/logrus"
)

type ICatalogService interface {
	ListGarments(ctx context.Context, category string) ([]entity.Garment, error)
	GetGarment(ctx context.Context, id string) (entity.Garment, error)
	CreateGarment(ctx context.Context, req catalog.CreateGarmentRequest) (entity.Garment, error)
	RemoveGarment(ctx context.Context, id string) error
	CategorizeImage(ctx context.Context, file *multipart.FileHeader) (string, error)
}

type catalogService struct {
	log         *logrus.Logger
	catalogRepo catalogRepository.Repository
	s3Client    s3.ItfS3
	gemini      gemini.IGemini
	utils       utils.IUtils
}

func New(
	log *logrus.Logger,
	catalogRepo catalogRepository.Repository,
	s3Client s3.ItfS3,
	geminiClient gemini.IGemini,
	utils utils.IUtils,
) ICatalogService {
	return &catalogService{
		log:         log,
		catalogRepo: catalogRepo,
		s3Client:    s3Client,
		gemini:      geminiClient,
		utils:       utils,
	}
}
