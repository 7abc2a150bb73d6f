package tryonService

import (
	"VirtualMirror/internal/api/tryon"
	tryonRepository "VirtualMirror/internal/api/tryon/repository"
	catalogService "VirtualMirror/internal/api/catalog/service"
	settingsService "VirtualMirror/internal/api/settings/service"
	"VirtualMirror/pkg/fal"
	"VirtualMirror/pkg/s3"
	"VirtualMirror/pkg/utils"
	"VirtualMirror/pkg/whatsapp"
	"context"

	"github.com/sirupsen/logrus"
)

type ITryOnService interface {
	CreateTryOn(ctx context.Context, req tryon.CreateTryOnRequest) (tryon.TryOnResponse, error)
	GenerateVideo(ctx context.Context, req tryon.GenerateVideoRequest) (tryon.GenerationResponse, error)
	GetTryOn(ctx context.Context, id string) (tryon.TryOnHistoryItem, error)
	GetHistory(ctx context.Context) ([]tryon.TryOnHistoryItem, error)
	GetFavorites(ctx context.Context) ([]tryon.TryOnHistoryItem, error)
	ToggleFavorite(ctx context.Context, id string) error
	ShareVideo(ctx context.Context, req tryon.ShareVideoRequest) error
}

type tryonService struct {
	log       *logrus.Logger
	tryonRepo tryonRepository.Repository
	falClient fal.ItfFal
	catalog   catalogService.ICatalogService
	settings  settingsService.ISettingsService
	s3Client  s3.ItfS3
	whatsapp  whatsapp.IWhatsappSender
	utils     utils.IUtils
}

func New(
	log *logrus.Logger,
	tryonRepo tryonRepository.Repository,
	falClient fal.ItfFal,
	catalog catalogService.ICatalogService,
	settings settingsService.ISettingsService,
	s3Client s3.ItfS3,
	whatsappSender whatsapp.IWhatsappSender,
	utils utils.IUtils,
) ITryOnService {
	return &tryonService{
		log:       log,
		tryonRepo: tryonRepo,
		falClient: falClient,
		catalog:   catalog,
		settings:  settings,
		s3Client:  s3Client,
		whatsapp:  whatsappSender,
		utils:     utils,
	}
}
