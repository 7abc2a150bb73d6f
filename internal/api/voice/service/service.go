package voiceService

import (
	"VirtualMirror/internal/api/voice"
	voiceRepository "VirtualMirror/internal/api/voice/repository"
	"VirtualMirror/pkg/audio"
	"VirtualMirror/pkg/nlp"
	chatGPT "VirtualMirror/pkg/openai"
	"VirtualMirror/pkg/registry"
	"VirtualMirror/pkg/utils"
	"context"
	"mime/multipart"
	"sync"

	"VirtualMirror/internal/entity"

	"github.com/sirupsen/logrus"
)

type IVoiceService interface {
	RegisterCommand(ctx context.Context, req voice.RegisterCommandRequest) error
	UnregisterCommand(ctx context.Context, id string)
	UnregisterScreen(ctx context.Context, screen string)
	ListCommands(ctx context.Context, screen string) []voice.CommandResponse

	ProcessUtterance(ctx context.Context, text string) (*voice.VoiceCommandResponse, error)
	ProcessAudioCommand(ctx context.Context, file *multipart.FileHeader) (*voice.VoiceCommandResponse, error)

	TestNLP(ctx context.Context, req voice.NLPTestRequest) (*voice.NLPTestResponse, error)
	GetHistory(ctx context.Context, limit int) ([]voice.InvocationHistory, error)
	GetLastExecuted(ctx context.Context) voice.LastExecutedResponse
}

type voiceService struct {
	log           *logrus.Logger
	voiceRepo     voiceRepository.Repository
	registry      registry.IRegistry
	transcription audio.ITranscription
	tts           *audio.TTSService
	nlpProcessor  nlp.IProcessor
	chatGPT       chatGPT.IChatGPT
	utils         utils.IUtils

	mu   sync.RWMutex
	meta map[string]entity.RegisteredCommand
}

func New(
	log *logrus.Logger,
	voiceRepo voiceRepository.Repository,
	reg registry.IRegistry,
	transcription audio.ITranscription,
	tts *audio.TTSService,
	nlpProcessor nlp.IProcessor,
	chat chatGPT.IChatGPT,
	utils utils.IUtils,
) IVoiceService {
	s := &voiceService{
		log:           log,
		voiceRepo:     voiceRepo,
		registry:      reg,
		transcription: transcription,
		tts:           tts,
		nlpProcessor:  nlpProcessor,
		chatGPT:       chat,
		utils:         utils,
		meta:          make(map[string]entity.RegisteredCommand),
	}

	s.seedDefaultVocabulary()

	return s
}
