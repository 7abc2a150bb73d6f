package voiceService

import (
	"context"
	"sync"
	"testing"

	"VirtualMirror/internal/api/voice"
	voiceRepository "VirtualMirror/internal/api/voice/repository"
	"VirtualMirror/internal/entity"
	"VirtualMirror/pkg/nlp"
	"VirtualMirror/pkg/registry"
	"VirtualMirror/pkg/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryVoiceRepo struct {
	mu          sync.Mutex
	invocations []voice.InvocationHistory
}

func (m *memoryVoiceRepo) NewClient(bool) (voiceRepository.Client, error) {
	return voiceRepository.Client{
		Invocations: &memoryInvocationStore{repo: m},
		Commit:      func() error { return nil },
		Rollback:    func() error { return nil },
	}, nil
}

type memoryInvocationStore struct{ repo *memoryVoiceRepo }

func (s *memoryInvocationStore) CreateInvocation(_ context.Context, inv voice.InvocationHistory) error {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	s.repo.invocations = append(s.repo.invocations, inv)
	return nil
}

func (s *memoryInvocationStore) GetRecentInvocations(_ context.Context, limit int) ([]voice.InvocationHistory, error) {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	if limit > len(s.repo.invocations) {
		limit = len(s.repo.invocations)
	}
	out := make([]voice.InvocationHistory, limit)
	copy(out, s.repo.invocations[len(s.repo.invocations)-limit:])
	return out, nil
}

func newTestVoiceService(repo *memoryVoiceRepo) IVoiceService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	return New(
		log,
		repo,
		registry.New(log),
		nil,
		nil,
		nlp.NewProcessor(),
		nil,
		utils.New(),
	)
}

func TestDefaultVocabularySeeded(t *testing.T) {
	svc := newTestVoiceService(&memoryVoiceRepo{})

	commands := svc.ListCommands(context.Background(), "")
	require.NotEmpty(t, commands)

	ids := make(map[string]bool, len(commands))
	for _, cmd := range commands {
		ids[cmd.ID] = true
	}
	assert.True(t, ids["go-home"])
	assert.True(t, ids["open-tryon"])
	assert.True(t, ids["take-photo"])
}

func TestProcessUtteranceMatchesSeededCommand(t *testing.T) {
	repo := &memoryVoiceRepo{}
	svc := newTestVoiceService(repo)

	resp, err := svc.ProcessUtterance(context.Background(), "quiero ir a inicio")
	require.NoError(t, err)
	assert.True(t, resp.Matched)
	assert.Equal(t, "go-home", resp.CommandID)
	assert.Equal(t, entity.ActionNavigate, resp.ActionType)
	assert.Equal(t, "/home", resp.Target)

	require.Len(t, repo.invocations, 1)
	assert.True(t, repo.invocations[0].Matched)
	assert.Equal(t, "go-home", repo.invocations[0].CommandID)
}

func TestGetLastExecutedTracksDispatch(t *testing.T) {
	svc := newTestVoiceService(&memoryVoiceRepo{})

	assert.Empty(t, svc.GetLastExecuted(context.Background()).Description)

	_, err := svc.ProcessUtterance(context.Background(), "quiero ir a inicio")
	require.NoError(t, err)
	assert.Equal(t, "Ir a la pantalla de inicio",
		svc.GetLastExecuted(context.Background()).Description)

	// An unrecognized utterance leaves the banner untouched.
	_, err = svc.ProcessUtterance(context.Background(), "algo sin sentido")
	require.NoError(t, err)
	assert.Equal(t, "Ir a la pantalla de inicio",
		svc.GetLastExecuted(context.Background()).Description)
}

func TestProcessUtteranceSuggestsOnNoMatch(t *testing.T) {
	repo := &memoryVoiceRepo{}
	svc := newTestVoiceService(repo)

	resp, err := svc.ProcessUtterance(context.Background(), "catalago")
	require.NoError(t, err)
	assert.False(t, resp.Matched)
	require.NotEmpty(t, resp.Suggestions)
	assert.Equal(t, "open-catalog", resp.Suggestions[0].CommandID)

	require.Len(t, repo.invocations, 1)
	assert.False(t, repo.invocations[0].Matched)
}

func TestProcessUtteranceRejectsEmptyText(t *testing.T) {
	svc := newTestVoiceService(&memoryVoiceRepo{})

	_, err := svc.ProcessUtterance(context.Background(), "   ")
	assert.ErrorIs(t, err, voice.ErrEmptyTranscription)
}

func TestRegisterCommandIsDispatchable(t *testing.T) {
	svc := newTestVoiceService(&memoryVoiceRepo{})
	ctx := context.Background()

	require.NoError(t, svc.RegisterCommand(ctx, voice.RegisterCommandRequest{
		ID:          "select-garment",
		Screen:      "catalog",
		Patterns:    []string{"elige esta prenda"},
		Description: "Seleccionar la prenda mostrada",
		ActionType:  entity.ActionTrigger,
		Target:      "select",
	}))

	resp, err := svc.ProcessUtterance(ctx, "elige esta prenda por favor")
	require.NoError(t, err)
	assert.True(t, resp.Matched)
	assert.Equal(t, "select-garment", resp.CommandID)
	assert.Equal(t, entity.ActionTrigger, resp.ActionType)
}

func TestUnregisterScreenRemovesOnlyThatScreen(t *testing.T) {
	svc := newTestVoiceService(&memoryVoiceRepo{})
	ctx := context.Background()

	require.NoError(t, svc.RegisterCommand(ctx, voice.RegisterCommandRequest{
		ID: "catalog-next", Screen: "catalog", Patterns: []string{"siguiente prenda"},
		ActionType: entity.ActionTrigger, Target: "next",
	}))
	require.NoError(t, svc.RegisterCommand(ctx, voice.RegisterCommandRequest{
		ID: "tryon-retry", Screen: "tryon", Patterns: []string{"repetir prueba"},
		ActionType: entity.ActionTrigger, Target: "retry",
	}))

	svc.UnregisterScreen(ctx, "catalog")

	assert.Empty(t, svc.ListCommands(ctx, "catalog"))
	assert.Len(t, svc.ListCommands(ctx, "tryon"), 1)

	resp, err := svc.ProcessUtterance(ctx, "siguiente prenda")
	require.NoError(t, err)
	assert.False(t, resp.Matched)
}

func TestUnregisterUnknownCommandIsNoOp(t *testing.T) {
	svc := newTestVoiceService(&memoryVoiceRepo{})

	svc.UnregisterCommand(context.Background(), "never-registered")
	svc.UnregisterScreen(context.Background(), "no-such-screen")
}

func TestGetHistoryClampsLimit(t *testing.T) {
	repo := &memoryVoiceRepo{}
	svc := newTestVoiceService(repo)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		_, err := svc.ProcessUtterance(ctx, "inicio")
		require.NoError(t, err)
	}

	history, err := svc.GetHistory(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, history, 20)

	history, err = svc.GetHistory(ctx, 500)
	require.NoError(t, err)
	assert.Len(t, history, 20)
}

func TestTestNLPReturnsAnalysis(t *testing.T) {
	svc := newTestVoiceService(&memoryVoiceRepo{})

	resp, err := svc.TestNLP(context.Background(), voice.NLPTestRequest{Text: "Quiero ir al Catálogo"})
	require.NoError(t, err)
	assert.Equal(t, "quiero ir al catalogo", resp.CleanedText)
	assert.Contains(t, resp.Tokens, "catalogo")
}
