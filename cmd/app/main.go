package main

import (
	"VirtualMirror/internal/config"
	"VirtualMirror/pkg/audio"
	"VirtualMirror/pkg/fal"
	"VirtualMirror/pkg/kv"
	"VirtualMirror/pkg/log"
	chatGPT "VirtualMirror/pkg/openai"
	"VirtualMirror/pkg/smtp"
	websocketPkg "VirtualMirror/pkg/websocket"
	"github.com/joho/godotenv"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Fatalf("Error loading .env file: %v", err)
	}

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()
	kvStore := kv.New()
	smtpMailer := smtp.New()
	poseSocket := websocketPkg.NewAIWebSocketClient()
	falClient := fal.New()
	transcription := audio.NewTranscriptionService(os.Getenv("OPENAI_API_KEY"))
	tts := audio.NewTTSService(os.Getenv("ELEVENLABS_API_KEY"), os.Getenv("ELEVENLABS_VOICE_ID"))
	chat := chatGPT.NewChatGPT()

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithDatabase(),
		config.WithKVStore(kvStore),
		config.WithSMTPMailer(smtpMailer),
		config.WithPoseWebSocket(poseSocket),
		config.WithMiddleware(),
		config.WithS3Client(),
		config.WithWhatsappClient(),
		config.WithGeminiClient(),
		config.WithFalClient(falClient),
		config.WithSpeechClients(transcription, tts, chat),
		config.WithBcryptUtils(),
		config.WithUtils(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")
	server.Shutdown()
}
