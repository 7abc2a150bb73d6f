package openai

import (
	"os"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/net/context"
)

type IChatGPT interface {
	GenerateCommandReply(ctx context.Context, utterance string, commandDescription string) (string, error)
}

type chatGPTService struct {
	client *openai.Client
	model  string
}

func NewChatGPT() IChatGPT {
	apiKey := os.Getenv("OPENAI_API_KEY")
	model := os.Getenv("OPENAI_CHAT_MODEL")

	if model == "" {
		model = openai.GPT4oMini
	}

	return &chatGPTService{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

const replySystemPrompt = "Eres la voz del Espejo Virtual, un probador de ropa. " +
	"El usuario dijo una orden de voz y la aplicación la va a ejecutar. " +
	"Responde con una sola frase corta en español confirmando la acción, sin preguntas."

// GenerateCommandReply produces the short spoken confirmation for a
// dispatched command ("Claro, vamos al catálogo").
func (c *chatGPTService) GenerateCommandReply(ctx context.Context, utterance string, commandDescription string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: 60,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: replySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Orden: " + utterance + "\nAcción: " + commandDescription},
		},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return commandDescription, nil
	}

	return resp.Choices[0].Message.Content, nil
}
