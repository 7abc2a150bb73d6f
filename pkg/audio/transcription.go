package audio

import (
	"mime/multipart"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/net/context"
)

type ITranscription interface {
	TranscribeSpokenCommand(ctx context.Context, file *multipart.FileHeader) (string, error)
}

type transcriptionService struct {
	client *openai.Client
}

func NewTranscriptionService(apiKey string) ITranscription {
	return &transcriptionService{client: openai.NewClient(apiKey)}
}

func (t *transcriptionService) TranscribeSpokenCommand(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   src,
		FilePath: file.Filename,
		Language: "es", // Spanish command vocabulary
	}

	resp, err := t.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", err
	}

	return resp.Text, nil
}
