package settingsService

import (
	"context"
	"testing"
	"time"

	"VirtualMirror/internal/api/settings"
	"VirtualMirror/pkg/kv"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	data map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string]string)}
}

func (m *memoryStore) Set(_ context.Context, key string, value string, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", kv.ErrNotFound
	}
	return v, nil
}

func (m *memoryStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memoryStore) DeleteByPrefix(_ context.Context, prefix string) error {
	for k := range m.data {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(m.data, k)
		}
	}
	return nil
}

func newTestService(store kv.IStore) ISettingsService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return New(log, store)
}

func TestSetAPIConfigKeepsBlankFields(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)
	ctx := context.Background()

	require.NoError(t, svc.SetAPIConfig(ctx, settings.APIConfig{
		FalKey:      "fal-key-0123456789abcdef",
		VideoEngine: "kling",
	}))

	require.NoError(t, svc.SetAPIConfig(ctx, settings.APIConfig{
		VideoEngine: "wan",
	}))

	resp, err := svc.GetAPIConfig(ctx)
	require.NoError(t, err)
	assert.True(t, resp.FalKeySet)
	assert.Equal(t, "wan", resp.VideoEngine)
}

func TestGetAPIConfigNeverExposesKeys(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)
	ctx := context.Background()

	require.NoError(t, svc.SetAPIConfig(ctx, settings.APIConfig{
		FalKey:    "fal-key-0123456789abcdef",
		OpenAIKey: "sk-0123456789abcdef0123",
	}))

	resp, err := svc.GetAPIConfig(ctx)
	require.NoError(t, err)
	assert.True(t, resp.FalKeySet)
	assert.True(t, resp.OpenAIKeySet)
	assert.False(t, resp.ElevenKeySet)
}

func TestResolveFalKeyEnvBeatsPersisted(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)
	ctx := context.Background()

	require.NoError(t, svc.SetAPIConfig(ctx, settings.APIConfig{
		FalKey: "persisted-key-0123456789",
	}))

	t.Setenv("FAL_KEY", "env-key-0123456789abcdef")
	assert.Equal(t, "env-key-0123456789abcdef", svc.ResolveFalKey(ctx))

	t.Setenv("FAL_KEY", "")
	assert.Equal(t, "persisted-key-0123456789", svc.ResolveFalKey(ctx))
}

func TestSetPermissionsMalformedKeepsPrevious(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)
	ctx := context.Background()

	valid, err := svc.SetPermissions(ctx, []byte(`{"camera":true,"microphone":true}`))
	require.NoError(t, err)
	assert.True(t, valid.Camera)

	previous, err := svc.SetPermissions(ctx, []byte(`{"camera":tru`))
	require.ErrorIs(t, err, settings.ErrInvalidPermissionsPayload)
	assert.True(t, previous.Camera)
	assert.True(t, previous.Microphone)

	stored, err := svc.GetPermissions(ctx)
	require.NoError(t, err)
	assert.True(t, stored.Camera)
	assert.True(t, stored.Microphone)
}

func TestSetPermissionsRejectsUnknownFields(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.SetPermissions(ctx, []byte(`{"camera":true,"bogus":1}`))
	assert.ErrorIs(t, err, settings.ErrInvalidPermissionsPayload)
}

func TestGDPRConfigDefaults(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)
	ctx := context.Background()

	cfg, err := svc.GetGDPRConfig(ctx)
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 5, cfg.RetentionMinutes)
	assert.True(t, cfg.RequireSignature)
}

func TestSetGDPRConfigRejectsNegativeRetention(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	err := svc.SetGDPRConfig(context.Background(), settings.GDPRConfig{RetentionMinutes: -1})
	assert.ErrorIs(t, err, settings.ErrInvalidGDPRConfig)
}

func TestWelcomeVoiceFlag(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)
	ctx := context.Background()

	seen, err := svc.WelcomeVoiceSeen(ctx)
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, svc.MarkWelcomeVoiceSeen(ctx))

	seen, err = svc.WelcomeVoiceSeen(ctx)
	require.NoError(t, err)
	assert.True(t, seen)
}
