package gemini

import (
	"encoding/base64"
	"errors"
	"os"
	"strings"

	"VirtualMirror/internal/entity"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/net/context"
	"google.golang.org/api/option"
)

type IGemini interface {
	AnalyzeImage(ctx context.Context, base64Image string, prompt string) (string, error)
	DetectGarmentCategory(ctx context.Context, base64Image string) (string, error)
}

type geminiClient struct {
	apiKey    string
	modelName string
	client    *genai.Client
}

func NewGeminiClient() (IGemini, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")

	modelName := os.Getenv("GEMINI_MODEL_NAME")
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	if modelName == "" {
		modelName = "gemini-pro-vision"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &geminiClient{
		apiKey:    apiKey,
		modelName: modelName,
		client:    client,
	}, nil
}

func (g *geminiClient) AnalyzeImage(ctx context.Context, base64Image string, prompt string) (string, error) {
	imgData, err := base64.StdEncoding.DecodeString(base64Image)
	if err != nil {
		return "", errors.New("invalid base64 image data")
	}

	model := g.client.GenerativeModel(g.modelName)

	if prompt == "" {
		prompt = "Analyze this image and provide details in JSON format."
	}

	img := genai.ImageData("image/jpeg", imgData)
	res, err := model.GenerateContent(ctx, genai.Text(prompt), img)
	if err != nil {
		return "", err
	}

	if len(res.Candidates) == 0 || len(res.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no response from Gemini API")
	}

	response := res.Candidates[0].Content.Parts[0]
	text, ok := response.(genai.Text)
	if !ok {
		return "", errors.New("unexpected response format from Gemini API")
	}

	return string(text), nil
}

const categoryPrompt = "Look at this garment photo and answer with exactly one word: " +
	"'tops' for shirts, blouses, jackets and anything worn on the upper body; " +
	"'bottoms' for trousers, skirts and shorts; " +
	"'one-pieces' for dresses, jumpsuits and overalls."

// DetectGarmentCategory maps a catalog photo to the FASHN garment category.
func (g *geminiClient) DetectGarmentCategory(ctx context.Context, base64Image string) (string, error) {
	answer, err := g.AnalyzeImage(ctx, base64Image, categoryPrompt)
	if err != nil {
		return "", err
	}

	category := strings.ToLower(strings.Trim(strings.TrimSpace(answer), ".'\""))
	if !entity.ValidGarmentCategory(category) {
		return "", errors.New("could not determine garment category: " + answer)
	}

	return category, nil
}

func (g *geminiClient) Close() {
	if g.client != nil {
		g.client.Close()
	}
}
