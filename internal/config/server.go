package config

import (
	"VirtualMirror/database/postgres"
	captureHandler "VirtualMirror/internal/api/capture/handler"
	captureService "VirtualMirror/internal/api/capture/service"
	catalogHandler "VirtualMirror/internal/api/catalog/handler"
	catalogRepository "VirtualMirror/internal/api/catalog/repository"
	catalogService "VirtualMirror/internal/api/catalog/service"
	sessionHandler "VirtualMirror/internal/api/session/handler"
	sessionRepository "VirtualMirror/internal/api/session/repository"
	sessionService "VirtualMirror/internal/api/session/service"
	settingsHandler "VirtualMirror/internal/api/settings/handler"
	settingsService "VirtualMirror/internal/api/settings/service"
	tryonHandler "VirtualMirror/internal/api/tryon/handler"
	tryonRepository "VirtualMirror/internal/api/tryon/repository"
	tryonService "VirtualMirror/internal/api/tryon/service"
	voiceHandler "VirtualMirror/internal/api/voice/handler"
	voiceRepository "VirtualMirror/internal/api/voice/repository"
	voiceService "VirtualMirror/internal/api/voice/service"
	"VirtualMirror/internal/middleware"
	"VirtualMirror/pkg/audio"
	"VirtualMirror/pkg/bcrypt"
	"VirtualMirror/pkg/fal"
	"VirtualMirror/pkg/gemini"
	"VirtualMirror/pkg/kv"
	"VirtualMirror/pkg/lifecycle"
	"VirtualMirror/pkg/nlp"
	chatGPT "VirtualMirror/pkg/openai"
	"VirtualMirror/pkg/registry"
	"VirtualMirror/pkg/s3"
	"VirtualMirror/pkg/smtp"
	"VirtualMirror/pkg/utils"
	websocketPkg "VirtualMirror/pkg/websocket"
	"VirtualMirror/pkg/whatsapp"
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/proxy"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine         *fiber.App
	db             *sqlx.DB
	log            *logrus.Logger
	middleware     middleware.Middleware
	validator      *validator.Validate
	utils          utils.IUtils
	bcryptUtils    bcrypt.IBcrypt
	handlers       []handler
	kvStore        kv.IStore
	smtpMailer     smtp.ItfSmtp
	poseWebsocket  websocketPkg.IWebsocket
	whatsappClient whatsapp.IWhatsappSender
	geminiClient   gemini.IGemini
	s3Client       s3.ItfS3
	falClient      fal.ItfFal
	transcription  audio.ITranscription
	ttsClient      *audio.TTSService
	chatClient     chatGPT.IChatGPT

	machine       *lifecycle.Machine
	machineCancel context.CancelFunc
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithKVStore(store kv.IStore) ServerOption {
	return func(s *Server) error {
		s.kvStore = store
		return nil
	}
}

func WithSMTPMailer(smtpMailer smtp.ItfSmtp) ServerOption {
	return func(s *Server) error {
		s.smtpMailer = smtpMailer
		return nil
	}
}

func WithPoseWebSocket(webSocket websocketPkg.IWebsocket) ServerOption {
	return func(s *Server) error {
		s.poseWebsocket = webSocket
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

// WithWhatsappClient is a no-op unless WHATSAPP_ENABLED=true. Sharing is an
// optional feature and the kiosk must boot without a paired device.
func WithWhatsappClient() ServerOption {
	return func(s *Server) error {
		if os.Getenv("WHATSAPP_ENABLED") != "true" {
			return nil
		}
		client, err := whatsapp.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize WhatsApp client: %v", err)
			}
			return fmt.Errorf("failed to create WhatsApp client: %w", err)
		}
		s.whatsappClient = client
		return nil
	}
}

func WithGeminiClient() ServerOption {
	return func(s *Server) error {
		client, err := gemini.NewGeminiClient()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to create Gemini client: %v", err)
			}
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = client
		return nil
	}
}

func WithFalClient(client fal.ItfFal) ServerOption {
	return func(s *Server) error {
		s.falClient = client
		return nil
	}
}

func WithSpeechClients(transcription audio.ITranscription, tts *audio.TTSService, chat chatGPT.IChatGPT) ServerOption {
	return func(s *Server) error {
		s.transcription = transcription
		s.ttsClient = tts
		s.chatClient = chat
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Settings Domain
	settingsServices := settingsService.New(s.log, s.kvStore)
	settingsHandlers := settingsHandler.New(s.log, s.validator, s.middleware, settingsServices)

	// Catalog Domain
	catalogRepo := catalogRepository.New(s.db, s.log)
	catalogServices := catalogService.New(s.log, catalogRepo, s.s3Client, s.geminiClient, s.utils)
	catalogHandlers := catalogHandler.New(s.log, s.validator, s.middleware, catalogServices)

	// Session Domain
	sessionRepo := sessionRepository.New(s.db, s.log)
	wiper := sessionService.NewDataWiper(s.log, sessionRepo, s.kvStore)
	s.machine = lifecycle.New(s.log, wiper, lifecycle.Config{})
	sessionServices := sessionService.New(s.log, sessionRepo, s.kvStore, s.machine, s.s3Client, s.smtpMailer, s.bcryptUtils, s.utils)
	sessionHandlers := sessionHandler.New(s.log, s.validator, s.middleware, sessionServices)

	// Voice Domain
	voiceRepo := voiceRepository.New(s.db, s.log)
	commandRegistry := registry.New(s.log)
	nlpProcessor := nlp.NewProcessor()
	voiceServices := voiceService.New(s.log, voiceRepo, commandRegistry, s.transcription, s.ttsClient, nlpProcessor, s.chatClient, s.utils)
	voiceHandlers := voiceHandler.New(s.log, s.validator, s.middleware, voiceServices)

	// Try-On Domain
	tryonRepo := tryonRepository.New(s.db, s.log)
	tryonServices := tryonService.New(s.log, tryonRepo, s.falClient, catalogServices, settingsServices, s.s3Client, s.whatsappClient, s.utils)
	tryonHandlers := tryonHandler.New(s.log, s.validator, s.middleware, tryonServices)

	// Capture Domain
	captureServices := captureService.New(s.log, s.poseWebsocket, s.kvStore)
	captureHandlers := captureHandler.New(s.log, s.validator, s.middleware, captureServices)

	s.setupHealthCheck()
	s.setupDevRoutes(settingsServices)
	s.handlers = append(s.handlers,
		settingsHandlers, catalogHandlers, sessionHandlers,
		voiceHandlers, tryonHandlers, captureHandlers,
	)
}

func (s *Server) Run() error {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())
	s.engine.Use(s.middleware.NewRateLimiter)

	router := s.engine.Group("/api/v1")

	for _, h := range s.handlers {
		h.Start(router)
	}

	if s.machine != nil {
		ctx, cancel := context.WithCancel(context.Background())
		s.machineCancel = cancel
		go s.machine.Run(ctx)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	if err := s.engine.Listen(fmt.Sprintf(":%s", port)); err != nil {
		s.Shutdown()
		return err
	}

	return nil
}

func (s *Server) Shutdown() {
	if s.machineCancel != nil {
		s.machineCancel()
	}
	if s.whatsappClient != nil {
		if err := s.whatsappClient.Disconnect(); err != nil {
			s.log.Errorf("Error disconnecting WhatsApp client: %v", err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.log.Errorf("Error closing database: %v", err)
		}
	}
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}

// setupDevRoutes exposes the raw generation backends and the prebuilt web
// bundles. Development only: the proxy injects the server-side key, which
// must never leave the server in production.
func (s *Server) setupDevRoutes(settingsServices settingsService.ISettingsService) {
	if os.Getenv("APP_ENV") != "development" {
		return
	}

	forward := func(path string) fiber.Handler {
		target := fal.BaseURL() + path
		return func(c *fiber.Ctx) error {
			key := settingsServices.ResolveFalKey(c.Context())
			c.Request().Header.Set("Authorization", "Key "+key)
			c.Request().Header.Set("Content-Type", "application/json")
			if err := proxy.Do(c, target); err != nil {
				return err
			}
			c.Response().Header.Del(fiber.HeaderServer)
			return nil
		}
	}

	s.engine.Post("/api/try-on", forward(fal.TryOnPath))
	s.engine.Post("/api/kling", forward(fal.KlingPath))
	s.engine.Post("/api/wan", forward(fal.WanPath))

	s.engine.Static("/rork", "./web/rork")
	s.engine.Static("/orchids", "./web/orchids")
}
