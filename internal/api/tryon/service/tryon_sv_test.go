package tryonService

import (
	"context"
	"errors"
	"mime/multipart"
	"sync"
	"testing"

	"VirtualMirror/internal/api/catalog"
	"VirtualMirror/internal/api/settings"
	"VirtualMirror/internal/api/tryon"
	tryonRepository "VirtualMirror/internal/api/tryon/repository"
	"VirtualMirror/internal/entity"
	"VirtualMirror/pkg/fal"
	"VirtualMirror/pkg/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFal struct {
	mu       sync.Mutex
	calls    int
	lastKey  string
	tryOnURL string
	videoURL string
	tryOnErr error
	videoErr error
}

func (f *fakeFal) TryOn(_ context.Context, apiKey string, _ fal.TryOnRequest) (*fal.TryOnResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastKey = apiKey
	if f.tryOnErr != nil {
		return nil, f.tryOnErr
	}
	return &fal.TryOnResponse{ImageURL: f.tryOnURL}, nil
}

func (f *fakeFal) GenerateVideo(_ context.Context, apiKey string, _ fal.VideoRequest) (*fal.VideoResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastKey = apiKey
	if f.videoErr != nil {
		return nil, f.videoErr
	}
	return &fal.VideoResponse{VideoURL: f.videoURL}, nil
}

type fakeSettings struct {
	falKey string
}

func (f *fakeSettings) GetAPIConfig(context.Context) (settings.APIConfigResponse, error) {
	return settings.APIConfigResponse{}, nil
}
func (f *fakeSettings) SetAPIConfig(context.Context, settings.APIConfig) error { return nil }
func (f *fakeSettings) ResolveFalKey(context.Context) string                   { return f.falKey }
func (f *fakeSettings) GetPermissions(context.Context) (settings.Permissions, error) {
	return settings.Permissions{}, nil
}
func (f *fakeSettings) SetPermissions(context.Context, []byte) (settings.Permissions, error) {
	return settings.Permissions{}, nil
}
func (f *fakeSettings) GetGDPRConfig(context.Context) (settings.GDPRConfig, error) {
	return settings.GDPRConfig{}, nil
}
func (f *fakeSettings) SetGDPRConfig(context.Context, settings.GDPRConfig) error { return nil }
func (f *fakeSettings) GetConsentText(context.Context) (string, error)           { return "", nil }
func (f *fakeSettings) SetConsentText(context.Context, string) error             { return nil }
func (f *fakeSettings) WelcomeVoiceSeen(context.Context) (bool, error)           { return false, nil }
func (f *fakeSettings) MarkWelcomeVoiceSeen(context.Context) error               { return nil }

type fakeCatalog struct {
	garments map[string]entity.Garment
}

func (f *fakeCatalog) ListGarments(context.Context, string) ([]entity.Garment, error) {
	return nil, nil
}

func (f *fakeCatalog) GetGarment(_ context.Context, id string) (entity.Garment, error) {
	g, ok := f.garments[id]
	if !ok {
		return entity.Garment{}, catalog.ErrGarmentNotFound
	}
	return g, nil
}

func (f *fakeCatalog) CreateGarment(context.Context, catalog.CreateGarmentRequest) (entity.Garment, error) {
	return entity.Garment{}, nil
}
func (f *fakeCatalog) RemoveGarment(context.Context, string) error { return nil }
func (f *fakeCatalog) CategorizeImage(context.Context, *multipart.FileHeader) (string, error) {
	return "", nil
}

type memoryTryOnRepo struct {
	mu          sync.Mutex
	tryons      map[string]entity.TryOn
	generations map[string]entity.GenerationResult
}

func newMemoryTryOnRepo() *memoryTryOnRepo {
	return &memoryTryOnRepo{
		tryons:      make(map[string]entity.TryOn),
		generations: make(map[string]entity.GenerationResult),
	}
}

func (m *memoryTryOnRepo) NewClient(bool) (tryonRepository.Client, error) {
	return tryonRepository.Client{
		TryOns:      &memoryTryOnStore{repo: m},
		Generations: &memoryGenerationStore{repo: m},
		Commit:      func() error { return nil },
		Rollback:    func() error { return nil },
	}, nil
}

type memoryTryOnStore struct{ repo *memoryTryOnRepo }

func (s *memoryTryOnStore) CreateTryOn(_ context.Context, t entity.TryOn) error {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	s.repo.tryons[t.ID] = t
	return nil
}

func (s *memoryTryOnStore) GetTryOnByID(_ context.Context, id string) (entity.TryOn, error) {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	t, ok := s.repo.tryons[id]
	if !ok {
		return entity.TryOn{}, tryon.ErrTryOnNotFound
	}
	return t, nil
}

func (s *memoryTryOnStore) GetAllTryOns(context.Context) ([]entity.TryOn, error) {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	out := make([]entity.TryOn, 0, len(s.repo.tryons))
	for _, t := range s.repo.tryons {
		out = append(out, t)
	}
	return out, nil
}

func (s *memoryTryOnStore) GetFavoriteTryOns(context.Context) ([]entity.TryOn, error) {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	out := make([]entity.TryOn, 0)
	for _, t := range s.repo.tryons {
		if t.Favorite {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *memoryTryOnStore) SetFavorite(_ context.Context, id string, favorite bool) error {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	t, ok := s.repo.tryons[id]
	if !ok {
		return tryon.ErrTryOnNotFound
	}
	t.Favorite = favorite
	s.repo.tryons[id] = t
	return nil
}

type memoryGenerationStore struct{ repo *memoryTryOnRepo }

func (s *memoryGenerationStore) CreateGeneration(_ context.Context, g entity.GenerationResult) error {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	s.repo.generations[g.ID] = g
	return nil
}

func (s *memoryGenerationStore) UpdateGeneration(_ context.Context, g entity.GenerationResult) error {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	s.repo.generations[g.ID] = g
	return nil
}

func (s *memoryGenerationStore) GetGenerationByID(_ context.Context, id string) (entity.GenerationResult, error) {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	g, ok := s.repo.generations[id]
	if !ok {
		return entity.GenerationResult{}, tryon.ErrGenerationNotFound
	}
	return g, nil
}

func (s *memoryGenerationStore) GetGenerationsByTryOnID(_ context.Context, tryOnID string) ([]entity.GenerationResult, error) {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	var out []entity.GenerationResult
	for _, g := range s.repo.generations {
		if g.TryOnID == tryOnID {
			out = append(out, g)
		}
	}
	return out, nil
}

const testKey = "valid-test-key-0123456789abcdef"

func newTestTryOnService(repo *memoryTryOnRepo, falClient fal.ItfFal, settingsKey string) ITryOnService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	return New(
		log,
		repo,
		falClient,
		&fakeCatalog{garments: map[string]entity.Garment{
			"garment-1": {ID: "garment-1", Category: entity.CategoryTops, ImageURL: "https://cdn.example/g1.png", IsActive: true},
		}},
		&fakeSettings{falKey: settingsKey},
		nil,
		nil,
		utils.New(),
	)
}

func TestCreateTryOnUsesOverrideKey(t *testing.T) {
	repo := newMemoryTryOnRepo()
	falClient := &fakeFal{tryOnURL: "https://cdn.example/composite.png"}
	svc := newTestTryOnService(repo, falClient, testKey)

	override := "override-key-0123456789abcdef"
	resp, err := svc.CreateTryOn(context.Background(), tryon.CreateTryOnRequest{
		PersonImageURL: "https://cdn.example/person.png",
		GarmentID:      "garment-1",
		APIKey:         override,
	})
	require.NoError(t, err)
	assert.Equal(t, override, falClient.lastKey)
	assert.Equal(t, "https://cdn.example/composite.png", resp.CompositeURL)
	assert.Equal(t, entity.CategoryTops, resp.Category)
}

func TestCreateTryOnFallsBackToConfiguredKey(t *testing.T) {
	repo := newMemoryTryOnRepo()
	falClient := &fakeFal{tryOnURL: "https://cdn.example/composite.png"}
	svc := newTestTryOnService(repo, falClient, testKey)

	_, err := svc.CreateTryOn(context.Background(), tryon.CreateTryOnRequest{
		PersonImageURL: "https://cdn.example/person.png",
		GarmentID:      "garment-1",
	})
	require.NoError(t, err)
	assert.Equal(t, testKey, falClient.lastKey)
}

func TestCreateTryOnShortKeyFailsBeforeAnyCall(t *testing.T) {
	repo := newMemoryTryOnRepo()
	falClient := &fakeFal{tryOnURL: "https://cdn.example/composite.png"}
	svc := newTestTryOnService(repo, falClient, "short")

	_, err := svc.CreateTryOn(context.Background(), tryon.CreateTryOnRequest{
		PersonImageURL: "https://cdn.example/person.png",
		GarmentID:      "garment-1",
	})
	require.ErrorIs(t, err, tryon.ErrInvalidAPIKey)
	assert.Zero(t, falClient.calls)
}

func TestCreateTryOnRequiresGarment(t *testing.T) {
	repo := newMemoryTryOnRepo()
	svc := newTestTryOnService(repo, &fakeFal{}, testKey)

	_, err := svc.CreateTryOn(context.Background(), tryon.CreateTryOnRequest{
		PersonImageURL: "https://cdn.example/person.png",
	})
	assert.ErrorIs(t, err, tryon.ErrMissingGarment)
}

func TestGenerateVideoFailureStaysFailed(t *testing.T) {
	repo := newMemoryTryOnRepo()
	repo.tryons["tryon-1"] = entity.TryOn{ID: "tryon-1", CompositeURL: "https://cdn.example/composite.png"}

	falClient := &fakeFal{videoErr: errors.New("model timed out")}
	svc := newTestTryOnService(repo, falClient, testKey)

	resp, err := svc.GenerateVideo(context.Background(), tryon.GenerateVideoRequest{TryOnID: "tryon-1"})
	require.ErrorIs(t, err, tryon.ErrGenerationFailed)
	assert.Equal(t, string(entity.GenerationFailed), resp.Status)
	assert.Equal(t, "model timed out", resp.ErrorDetail)

	stored, ok := repo.generations[resp.ID]
	require.True(t, ok)
	assert.Equal(t, entity.GenerationFailed, stored.Status)
}

func TestGenerateVideoDefaultsToKling(t *testing.T) {
	repo := newMemoryTryOnRepo()
	repo.tryons["tryon-1"] = entity.TryOn{ID: "tryon-1", CompositeURL: "https://cdn.example/composite.png"}

	falClient := &fakeFal{videoURL: "https://cdn.example/video.mp4"}
	svc := newTestTryOnService(repo, falClient, testKey)

	resp, err := svc.GenerateVideo(context.Background(), tryon.GenerateVideoRequest{TryOnID: "tryon-1"})
	require.NoError(t, err)
	assert.Equal(t, fal.BackendKling, resp.Backend)
	assert.Equal(t, string(entity.GenerationSucceeded), resp.Status)
	assert.Equal(t, "https://cdn.example/video.mp4", resp.VideoURL)
}

func TestGenerateVideoRejectsUnknownBackend(t *testing.T) {
	repo := newMemoryTryOnRepo()
	svc := newTestTryOnService(repo, &fakeFal{}, testKey)

	_, err := svc.GenerateVideo(context.Background(), tryon.GenerateVideoRequest{
		TryOnID: "tryon-1",
		Backend: "pika",
	})
	assert.ErrorIs(t, err, tryon.ErrUnknownVideoBackend)
}

func TestToggleFavoriteFlips(t *testing.T) {
	repo := newMemoryTryOnRepo()
	repo.tryons["tryon-1"] = entity.TryOn{ID: "tryon-1"}
	svc := newTestTryOnService(repo, &fakeFal{}, testKey)

	require.NoError(t, svc.ToggleFavorite(context.Background(), "tryon-1"))
	assert.True(t, repo.tryons["tryon-1"].Favorite)

	require.NoError(t, svc.ToggleFavorite(context.Background(), "tryon-1"))
	assert.False(t, repo.tryons["tryon-1"].Favorite)
}

func TestGetFavoritesReturnsOnlyFavorited(t *testing.T) {
	repo := newMemoryTryOnRepo()
	repo.tryons["tryon-1"] = entity.TryOn{ID: "tryon-1"}
	repo.tryons["tryon-2"] = entity.TryOn{ID: "tryon-2"}
	svc := newTestTryOnService(repo, &fakeFal{}, testKey)

	items, err := svc.GetFavorites(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, svc.ToggleFavorite(context.Background(), "tryon-2"))

	items, err = svc.GetFavorites(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "tryon-2", items[0].TryOn.ID)

	// Un-favoriting drops it from the list again.
	require.NoError(t, svc.ToggleFavorite(context.Background(), "tryon-2"))
	items, err = svc.GetFavorites(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestShareVideoWithoutMessagingClient(t *testing.T) {
	repo := newMemoryTryOnRepo()
	repo.generations["gen-1"] = entity.GenerationResult{
		ID:       "gen-1",
		Status:   entity.GenerationSucceeded,
		VideoURL: "https://cdn.example/video.mp4",
	}
	svc := newTestTryOnService(repo, &fakeFal{}, testKey)

	err := svc.ShareVideo(context.Background(), tryon.ShareVideoRequest{
		GenerationID: "gen-1",
		PhoneNumber:  "34600000000",
	})
	assert.ErrorIs(t, err, tryon.ErrSharingDisabled)
}

type fakeWhatsapp struct {
	sent []string
}

func (f *fakeWhatsapp) SendMessage(_ context.Context, phoneNumber, _ string) error {
	f.sent = append(f.sent, phoneNumber)
	return nil
}
func (f *fakeWhatsapp) Disconnect() error { return nil }
func (f *fakeWhatsapp) IsConnected() bool { return true }

func TestShareVideoRequiresSucceededGeneration(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	repo := newMemoryTryOnRepo()
	repo.generations["gen-1"] = entity.GenerationResult{
		ID:     "gen-1",
		Status: entity.GenerationFailed,
	}
	repo.generations["gen-2"] = entity.GenerationResult{
		ID:       "gen-2",
		Status:   entity.GenerationSucceeded,
		VideoURL: "https://cdn.example/video.mp4",
	}

	sender := &fakeWhatsapp{}
	svc := New(log, repo, &fakeFal{}, &fakeCatalog{}, &fakeSettings{falKey: testKey}, nil, sender, utils.New())

	err := svc.ShareVideo(context.Background(), tryon.ShareVideoRequest{
		GenerationID: "gen-1",
		PhoneNumber:  "34600000000",
	})
	assert.ErrorIs(t, err, tryon.ErrVideoNotReady)
	assert.Empty(t, sender.sent)

	err = svc.ShareVideo(context.Background(), tryon.ShareVideoRequest{
		GenerationID: "gen-2",
		PhoneNumber:  "34600000000",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"34600000000"}, sender.sent)
}
