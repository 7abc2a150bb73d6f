package captureService

import (
	"context"
	"errors"
	"testing"
	"time"

	"VirtualMirror/internal/api/capture"
	"VirtualMirror/internal/entity"
	"VirtualMirror/pkg/kv"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePoseClient struct {
	result *entity.PoseResult
	err    error
	frames int
}

func (f *fakePoseClient) ProcessPoseFrame([]byte) (*entity.PoseResult, error) {
	f.frames++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakePoseClient) IsConnected() bool { return true }
func (f *fakePoseClient) Reconnect() error  { return nil }
func (f *fakePoseClient) CloseConnections() {}

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

func newTestCaptureService(pose *fakePoseClient, store kv.IStore) ICaptureService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return New(log, pose, store)
}

func TestCheckPositionReturnsVerdict(t *testing.T) {
	pose := &fakePoseClient{result: &entity.PoseResult{
		Status:       entity.AdjustPosition,
		Instructions: []string{"muevete a la izquierda"},
		XDeviation:   0.3,
	}}
	svc := newTestCaptureService(pose, newMemoryStore())

	resp, err := svc.CheckPosition(context.Background(), []byte{0x01})
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustPosition, resp.Status)
	assert.Equal(t, []string{"muevete a la izquierda"}, resp.Instructions)
	assert.Equal(t, 1, pose.frames)
}

func TestCheckPositionRejectsEmptyFrame(t *testing.T) {
	pose := &fakePoseClient{}
	svc := newTestCaptureService(pose, newMemoryStore())

	_, err := svc.CheckPosition(context.Background(), nil)
	assert.ErrorIs(t, err, capture.ErrNoFrameProvided)
	assert.Zero(t, pose.frames)
}

func TestProcessFrameWrapsServiceFailure(t *testing.T) {
	pose := &fakePoseClient{err: errors.New("connection refused")}
	svc := newTestCaptureService(pose, newMemoryStore())

	_, err := svc.ProcessFrame([]byte{0x01})
	assert.ErrorIs(t, err, capture.ErrPoseServiceUnavailable)
}

func TestProfileRoundTrip(t *testing.T) {
	store := newMemoryStore()
	svc := newTestCaptureService(&fakePoseClient{}, store)
	ctx := context.Background()

	saved, err := svc.SaveProfile(ctx, capture.ProfileRequest{
		DisplayName: "Invitado",
		Measurements: entity.Measurements{
			HeightCM: 172,
			ChestCM:  96,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Invitado", saved.DisplayName)

	loaded, err := svc.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.DisplayName, loaded.DisplayName)
	assert.Equal(t, 172.0, loaded.Measurements.HeightCM)
}

func TestGetProfileMissing(t *testing.T) {
	svc := newTestCaptureService(&fakePoseClient{}, newMemoryStore())

	_, err := svc.GetProfile(context.Background())
	assert.ErrorIs(t, err, capture.ErrProfileNotFound)
}

func TestProfileStoredUnderWipePrefix(t *testing.T) {
	store := newMemoryStore()
	svc := newTestCaptureService(&fakePoseClient{}, store)
	ctx := context.Background()

	_, err := svc.SaveProfile(ctx, capture.ProfileRequest{DisplayName: "Invitado"})
	require.NoError(t, err)

	require.NoError(t, store.DeleteByPrefix(ctx, kv.KeyPrefixProfile))

	_, err = svc.GetProfile(ctx)
	assert.ErrorIs(t, err, capture.ErrProfileNotFound)
}
