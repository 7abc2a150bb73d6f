package sessionService

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"VirtualMirror/internal/api/session"
	sessionRepository "VirtualMirror/internal/api/session/repository"
	"VirtualMirror/internal/entity"
	"VirtualMirror/pkg/bcrypt"
	"VirtualMirror/pkg/kv"
	"VirtualMirror/pkg/lifecycle"
	"VirtualMirror/pkg/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string]string)}
}

func (m *memoryStore) Set(_ context.Context, key string, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", kv.ErrNotFound
	}
	return v, nil
}

func (m *memoryStore) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memoryStore) DeleteByPrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}

type fakeSessionRepo struct {
	mu                 sync.Mutex
	consents           []entity.ConsentRecord
	generationsDeleted int
	tryonsDeleted      int
	committed          int
}

func (f *fakeSessionRepo) NewClient(bool) (sessionRepository.Client, error) {
	return sessionRepository.Client{
		Consents: &fakeConsentStore{repo: f},
		UserData: &fakeUserDataStore{repo: f},
		Commit: func() error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.committed++
			return nil
		},
		Rollback: func() error { return nil },
	}, nil
}

type fakeConsentStore struct{ repo *fakeSessionRepo }

func (s *fakeConsentStore) CreateConsent(_ context.Context, record entity.ConsentRecord) error {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	s.repo.consents = append(s.repo.consents, record)
	return nil
}

func (s *fakeConsentStore) GetLatestConsent(context.Context) (entity.ConsentRecord, error) {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	if len(s.repo.consents) == 0 {
		return entity.ConsentRecord{}, session.ErrConsentNotFound
	}
	return s.repo.consents[len(s.repo.consents)-1], nil
}

type fakeUserDataStore struct{ repo *fakeSessionRepo }

func (s *fakeUserDataStore) DeleteGenerationResults(context.Context) error {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	s.repo.generationsDeleted++
	return nil
}

func (s *fakeUserDataStore) DeleteTryOns(context.Context) error {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	s.repo.tryonsDeleted++
	return nil
}

type fakeSMTP struct{}

func (fakeSMTP) SendConsentReceipt(string, string, time.Time) error { return nil }

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestSessionService(store kv.IStore, repo *fakeSessionRepo) (ISessionService, *lifecycle.Machine) {
	log := testLogger()
	wiper := NewDataWiper(log, repo, store)
	machine := lifecycle.New(log, wiper, lifecycle.Config{})

	svc := New(log, repo, store, machine, nil, fakeSMTP{}, bcrypt.NewWithCost(4), utils.New())
	return svc, machine
}

func TestBootstrapFreshDeviceAwaitsConsent(t *testing.T) {
	svc, _ := newTestSessionService(newMemoryStore(), &fakeSessionRepo{})

	resp, err := svc.Bootstrap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.StateAwaitingConsent.String(), resp.State)
	assert.False(t, resp.TermsAccepted)
	assert.False(t, resp.Authenticated)
}

func TestBootstrapConsentedDeviceAsksForCode(t *testing.T) {
	store := newMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, kv.KeyTermsAccepted, "true", 0))
	require.NoError(t, store.Set(ctx, kv.KeyGDPRAccepted, "true", 0))

	svc, _ := newTestSessionService(store, &fakeSessionRepo{})

	resp, err := svc.Bootstrap(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.StateAuthenticating.String(), resp.State)
}

func TestBootstrapAuthenticatedDeviceResumesActive(t *testing.T) {
	store := newMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, kv.KeyTermsAccepted, "true", 0))
	require.NoError(t, store.Set(ctx, kv.KeyGDPRAccepted, "true", 0))
	require.NoError(t, store.Set(ctx, kv.KeyAuthenticated, "true", 0))

	svc, _ := newTestSessionService(store, &fakeSessionRepo{})

	resp, err := svc.Bootstrap(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.StateActive.String(), resp.State)
}

func TestLoginRequiresConsentFirst(t *testing.T) {
	svc, _ := newTestSessionService(newMemoryStore(), &fakeSessionRepo{})

	_, err := svc.Bootstrap(context.Background())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), session.LoginRequest{AccessCode: "1234"})
	assert.ErrorIs(t, err, session.ErrConsentRequired)
}

func TestLoginWrongCodeRejected(t *testing.T) {
	store := newMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, kv.KeyTermsAccepted, "true", 0))
	require.NoError(t, store.Set(ctx, kv.KeyGDPRAccepted, "true", 0))

	hasher := bcrypt.NewWithCost(4)
	hash, err := hasher.HashPassword("1234")
	require.NoError(t, err)
	t.Setenv("MIRROR_ACCESS_CODE_HASH", hash)
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	svc, _ := newTestSessionService(store, &fakeSessionRepo{})
	_, err = svc.Bootstrap(ctx)
	require.NoError(t, err)

	_, err = svc.Login(ctx, session.LoginRequest{AccessCode: "9999"})
	assert.ErrorIs(t, err, session.ErrInvalidCredentials)
}

func TestLoginIssuesTokenAndActivates(t *testing.T) {
	store := newMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, kv.KeyTermsAccepted, "true", 0))
	require.NoError(t, store.Set(ctx, kv.KeyGDPRAccepted, "true", 0))

	hasher := bcrypt.NewWithCost(4)
	hash, err := hasher.HashPassword("1234")
	require.NoError(t, err)
	t.Setenv("MIRROR_ACCESS_CODE_HASH", hash)
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	svc, machine := newTestSessionService(store, &fakeSessionRepo{})
	_, err = svc.Bootstrap(ctx)
	require.NoError(t, err)

	resp, err := svc.Login(ctx, session.LoginRequest{AccessCode: "1234", Device: "mirror-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, entity.StateActive, machine.State())

	flag, err := store.Get(ctx, kv.KeyAuthenticated)
	require.NoError(t, err)
	assert.Equal(t, "true", flag)
}

func TestWipeRemovesUserDataKeepsConsents(t *testing.T) {
	store := newMemoryStore()
	repo := &fakeSessionRepo{consents: []entity.ConsentRecord{{ID: "consent-1"}}}
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, kv.KeyAuthenticated, "true", 0))
	require.NoError(t, store.Set(ctx, kv.KeyTermsAccepted, "true", 0))
	require.NoError(t, store.Set(ctx, kv.KeyGDPRAccepted, "true", 0))
	require.NoError(t, store.Set(ctx, kv.KeyPrefixProfile+"current", "{}", 0))
	require.NoError(t, store.Set(ctx, kv.KeyAPIConfig, `{"fal_key":"x"}`, 0))

	log := testLogger()
	wiper := NewDataWiper(log, repo, store)
	require.NoError(t, wiper.Wipe(ctx))

	_, err := store.Get(ctx, kv.KeyAuthenticated)
	assert.ErrorIs(t, err, kv.ErrNotFound)
	_, err = store.Get(ctx, kv.KeyPrefixProfile+"current")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	// Device settings and the consent trail survive.
	_, err = store.Get(ctx, kv.KeyAPIConfig)
	assert.NoError(t, err)
	assert.Len(t, repo.consents, 1)

	assert.Equal(t, 1, repo.generationsDeleted)
	assert.Equal(t, 1, repo.tryonsDeleted)
	assert.Equal(t, 1, repo.committed)
}

func TestWipeIsIdempotent(t *testing.T) {
	store := newMemoryStore()
	repo := &fakeSessionRepo{}
	ctx := context.Background()

	wiper := NewDataWiper(testLogger(), repo, store)
	require.NoError(t, wiper.Wipe(ctx))
	require.NoError(t, wiper.Wipe(ctx))

	assert.Equal(t, 2, repo.committed)
}
