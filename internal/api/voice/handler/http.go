package voiceHandler

import (
	voiceService "VirtualMirror/internal/api/voice/service"
	"VirtualMirror/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type VoiceHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	voiceService voiceService.IVoiceService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	vs voiceService.IVoiceService,
) *VoiceHandler {
	return &VoiceHandler{
		log:          log,
		validator:    validate,
		middleware:   middleware,
		voiceService: vs,
	}
}

func (h *VoiceHandler) Start(srv fiber.Router) {
	voice := srv.Group("/voice")

	voice.Use(h.middleware.NewTokenMiddleware)

	// Spoken command dispatch
	voice.Post("/command", h.ProcessAudioCommand)
	voice.Post("/utterance", h.ProcessUtterance)

	// Screen-scoped vocabulary management
	commands := voice.Group("/commands")
	commands.Get("/", h.ListCommands)
	commands.Post("/", h.RegisterCommand)
	commands.Delete("/:id", h.UnregisterCommand)
	commands.Delete("/screen/:screen", h.UnregisterScreen)

	voice.Get("/last", h.GetLastCommand)
	voice.Get("/history", h.GetHistory)

	nlp := voice.Group("/nlp")
	nlp.Post("/test", h.TestNLP)
}
