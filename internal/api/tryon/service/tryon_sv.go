package tryonService

import (
	"VirtualMirror/internal/api/tryon"
	"VirtualMirror/internal/entity"
	contextPkg "VirtualMirror/pkg/context"
	"VirtualMirror/pkg/fal"
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// resolveKey applies the credential precedence: per-request override first,
// then host environment, then the persisted default. The key is validated
// before any network call so an impossible credential fails immediately.
func (s *tryonService) resolveKey(ctx context.Context, override string) (string, error) {
	key := override
	if key == "" {
		key = s.settings.ResolveFalKey(ctx)
	}

	if err := fal.ValidateKey(key); err != nil {
		return "", tryon.ErrInvalidAPIKey
	}

	return key, nil
}

func (s *tryonService) CreateTryOn(ctx context.Context, req tryon.CreateTryOnRequest) (tryon.TryOnResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	apiKey, err := s.resolveKey(ctx, req.APIKey)
	if err != nil {
		return tryon.TryOnResponse{}, err
	}

	personURL := req.PersonImageURL
	if req.PersonImage != nil {
		if err := s.utils.ValidateImageFile(req.PersonImage); err != nil {
			return tryon.TryOnResponse{}, tryon.ErrMissingPersonImage
		}
		uploaded, err := s.s3Client.UploadFile(req.PersonImage)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to upload person image")
			return tryon.TryOnResponse{}, err
		}
		personURL = uploaded
	}
	if personURL == "" {
		return tryon.TryOnResponse{}, tryon.ErrMissingPersonImage
	}

	garmentURL := req.GarmentImageURL
	category := req.Category
	if req.GarmentID != "" {
		garment, err := s.catalog.GetGarment(ctx, req.GarmentID)
		if err != nil {
			return tryon.TryOnResponse{}, err
		}
		garmentURL = garment.ImageURL
		category = garment.Category
	}
	if garmentURL == "" || !entity.ValidGarmentCategory(category) {
		return tryon.TryOnResponse{}, tryon.ErrMissingGarment
	}

	result, err := s.falClient.TryOn(ctx, apiKey, fal.TryOnRequest{
		ModelImageURL:   personURL,
		GarmentImageURL: garmentURL,
		Category:        category,
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Try-on generation failed")
		return tryon.TryOnResponse{}, tryon.ErrGenerationFailed
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return tryon.TryOnResponse{}, err
	}

	record := entity.TryOn{
		ID:              id,
		PersonImageURL:  personURL,
		GarmentID:       req.GarmentID,
		GarmentImageURL: garmentURL,
		Category:        category,
		CompositeURL:    result.ImageURL,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	repo, err := s.tryonRepo.NewClient(false)
	if err != nil {
		return tryon.TryOnResponse{}, err
	}

	if err := repo.TryOns.CreateTryOn(ctx, record); err != nil {
		return tryon.TryOnResponse{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"tryon_id":   id,
		"category":   category,
	}).Info("Try-on composite generated")

	return makeTryOnResponse(record), nil
}

func (s *tryonService) GenerateVideo(ctx context.Context, req tryon.GenerateVideoRequest) (tryon.GenerationResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	backend := req.Backend
	if backend == "" {
		backend = fal.BackendKling
	}
	if backend != fal.BackendKling && backend != fal.BackendWan {
		return tryon.GenerationResponse{}, tryon.ErrUnknownVideoBackend
	}

	apiKey, err := s.resolveKey(ctx, req.APIKey)
	if err != nil {
		return tryon.GenerationResponse{}, err
	}

	repo, err := s.tryonRepo.NewClient(false)
	if err != nil {
		return tryon.GenerationResponse{}, err
	}

	tryOnRecord, err := repo.TryOns.GetTryOnByID(ctx, req.TryOnID)
	if err != nil {
		return tryon.GenerationResponse{}, err
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return tryon.GenerationResponse{}, err
	}

	generation := entity.GenerationResult{
		ID:             id,
		TryOnID:        tryOnRecord.ID,
		SourceImageRef: tryOnRecord.CompositeURL,
		Backend:        backend,
		Status:         entity.GenerationPending,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := repo.Generations.CreateGeneration(ctx, generation); err != nil {
		return tryon.GenerationResponse{}, err
	}

	// One request, one outcome. A failed generation stays failed; the user
	// retries explicitly with a new record.
	result, genErr := s.falClient.GenerateVideo(ctx, apiKey, fal.VideoRequest{
		ImageURL: tryOnRecord.CompositeURL,
		Backend:  backend,
	})

	if genErr != nil {
		generation.Status = entity.GenerationFailed
		generation.ErrorDetail = genErr.Error()
	} else {
		generation.Status = entity.GenerationSucceeded
		generation.VideoURL = result.VideoURL
	}

	if err := repo.Generations.UpdateGeneration(ctx, generation); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":    requestID,
			"generation_id": id,
			"error":         err.Error(),
		}).Error("Failed to persist generation outcome")
	}

	if genErr != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":    requestID,
			"generation_id": id,
			"backend":       backend,
			"error":         genErr.Error(),
		}).Error("Video generation failed")
		return makeGenerationResponse(generation), tryon.ErrGenerationFailed
	}

	s.log.WithFields(logrus.Fields{
		"request_id":    requestID,
		"generation_id": id,
		"backend":       backend,
	}).Info("Turntable video generated")

	return makeGenerationResponse(generation), nil
}

func (s *tryonService) GetTryOn(ctx context.Context, id string) (tryon.TryOnHistoryItem, error) {
	repo, err := s.tryonRepo.NewClient(false)
	if err != nil {
		return tryon.TryOnHistoryItem{}, err
	}

	record, err := repo.TryOns.GetTryOnByID(ctx, id)
	if err != nil {
		return tryon.TryOnHistoryItem{}, err
	}

	generations, err := repo.Generations.GetGenerationsByTryOnID(ctx, id)
	if err != nil {
		return tryon.TryOnHistoryItem{}, err
	}

	return makeHistoryItem(record, generations), nil
}

func (s *tryonService) GetHistory(ctx context.Context) ([]tryon.TryOnHistoryItem, error) {
	repo, err := s.tryonRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	records, err := repo.TryOns.GetAllTryOns(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]tryon.TryOnHistoryItem, 0, len(records))
	for _, record := range records {
		generations, err := repo.Generations.GetGenerationsByTryOnID(ctx, record.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, makeHistoryItem(record, generations))
	}

	return items, nil
}

func (s *tryonService) GetFavorites(ctx context.Context) ([]tryon.TryOnHistoryItem, error) {
	repo, err := s.tryonRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	records, err := repo.TryOns.GetFavoriteTryOns(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]tryon.TryOnHistoryItem, 0, len(records))
	for _, record := range records {
		generations, err := repo.Generations.GetGenerationsByTryOnID(ctx, record.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, makeHistoryItem(record, generations))
	}

	return items, nil
}

func (s *tryonService) ToggleFavorite(ctx context.Context, id string) error {
	repo, err := s.tryonRepo.NewClient(false)
	if err != nil {
		return err
	}

	record, err := repo.TryOns.GetTryOnByID(ctx, id)
	if err != nil {
		return err
	}

	return repo.TryOns.SetFavorite(ctx, id, !record.Favorite)
}

func (s *tryonService) ShareVideo(ctx context.Context, req tryon.ShareVideoRequest) error {
	requestID := contextPkg.GetRequestID(ctx)

	if s.whatsapp == nil {
		return tryon.ErrSharingDisabled
	}

	repo, err := s.tryonRepo.NewClient(false)
	if err != nil {
		return err
	}

	generation, err := repo.Generations.GetGenerationByID(ctx, req.GenerationID)
	if err != nil {
		return err
	}

	if generation.Status != entity.GenerationSucceeded || generation.VideoURL == "" {
		return tryon.ErrVideoNotReady
	}

	message := fmt.Sprintf("Tu video 360 del probador virtual esta listo: %s", generation.VideoURL)

	if err := s.whatsapp.SendMessage(ctx, req.PhoneNumber, message); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":    requestID,
			"generation_id": req.GenerationID,
			"error":         err.Error(),
		}).Error("Failed to share video over WhatsApp")
		return err
	}

	return nil
}

func makeTryOnResponse(t entity.TryOn) tryon.TryOnResponse {
	return tryon.TryOnResponse{
		ID:              t.ID,
		PersonImageURL:  t.PersonImageURL,
		GarmentID:       t.GarmentID,
		GarmentImageURL: t.GarmentImageURL,
		Category:        t.Category,
		CompositeURL:    t.CompositeURL,
		Favorite:        t.Favorite,
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
	}
}

func makeGenerationResponse(g entity.GenerationResult) tryon.GenerationResponse {
	return tryon.GenerationResponse{
		ID:          g.ID,
		TryOnID:     g.TryOnID,
		Backend:     g.Backend,
		VideoURL:    g.VideoURL,
		Status:      string(g.Status),
		ErrorDetail: g.ErrorDetail,
		CreatedAt:   g.CreatedAt.Format(time.RFC3339),
	}
}

func makeHistoryItem(t entity.TryOn, generations []entity.GenerationResult) tryon.TryOnHistoryItem {
	genResponses := make([]tryon.GenerationResponse, 0, len(generations))
	for _, g := range generations {
		genResponses = append(genResponses, makeGenerationResponse(g))
	}

	return tryon.TryOnHistoryItem{
		TryOn:       makeTryOnResponse(t),
		Generations: genResponses,
	}
}
