package fal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/net/context"
)

// MinKeyLength is the shortest credential accepted before any network call
// is attempted. Real FAL keys are well over 40 characters.
const MinKeyLength = 20

const (
	defaultBaseURL = "https://fal.run"

	TryOnPath = "/fal-ai/fashn/tryon/v1.6"
	KlingPath = "/fal-ai/kling-video/v2.1/standard/image-to-video"
	WanPath   = "/fal-ai/wan-i2v"
)

// BaseURL reports the generation host, honouring the FAL_BASE_URL override.
func BaseURL() string {
	if v := os.Getenv("FAL_BASE_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	return defaultBaseURL
}

const (
	BackendKling = "kling"
	BackendWan   = "wan"
)

// Fixed turntable parameters for the 360° generation.
const (
	TurntablePrompt = "The person slowly rotates 360 degrees in place, full body visible, " +
		"studio lighting, fashion showcase turntable, smooth camera, clothing clearly visible"
	TurntableNegativePrompt = "blur, distort, low quality, extra limbs, deformed hands, text, watermark"
	TurntableDuration       = "5"
	TurntableAspectRatio    = "9:16"
)

var ErrInvalidKey = errors.New("fal API key missing or too short")

type TryOnRequest struct {
	ModelImageURL   string
	GarmentImageURL string
	Category        string
}

type TryOnResponse struct {
	ImageURL string
}

type VideoRequest struct {
	ImageURL string
	Backend  string
}

type VideoResponse struct {
	VideoURL string
}

type ItfFal interface {
	TryOn(ctx context.Context, apiKey string, req TryOnRequest) (*TryOnResponse, error)
	GenerateVideo(ctx context.Context, apiKey string, req VideoRequest) (*VideoResponse, error)
}

type falClient struct {
	baseURL    string
	httpClient *http.Client
}

func New() ItfFal {
	return &falClient{
		baseURL:    BaseURL(),
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// ValidateKey fails fast on credentials that cannot possibly be valid, so no
// network call is wasted on them.
func ValidateKey(apiKey string) error {
	if len(strings.TrimSpace(apiKey)) < MinKeyLength {
		return ErrInvalidKey
	}
	return nil
}

func (f *falClient) TryOn(ctx context.Context, apiKey string, req TryOnRequest) (*TryOnResponse, error) {
	if err := ValidateKey(apiKey); err != nil {
		return nil, err
	}

	body := map[string]interface{}{
		"model_image":   req.ModelImageURL,
		"garment_image": req.GarmentImageURL,
		"category":      req.Category,
		"mode":          "balanced",
		"output_format": "png",
	}

	var parsed struct {
		Images []struct {
			URL string `json:"url"`
		} `json:"images"`
	}

	if err := f.post(ctx, apiKey, TryOnPath, body, &parsed); err != nil {
		return nil, err
	}

	if len(parsed.Images) == 0 || parsed.Images[0].URL == "" {
		return nil, errors.New("try-on response contained no image")
	}

	return &TryOnResponse{ImageURL: parsed.Images[0].URL}, nil
}

func (f *falClient) GenerateVideo(ctx context.Context, apiKey string, req VideoRequest) (*VideoResponse, error) {
	if err := ValidateKey(apiKey); err != nil {
		return nil, err
	}

	path := KlingPath
	body := map[string]interface{}{
		"image_url":       req.ImageURL,
		"prompt":          TurntablePrompt,
		"negative_prompt": TurntableNegativePrompt,
		"duration":        TurntableDuration,
		"aspect_ratio":    TurntableAspectRatio,
	}

	if req.Backend == BackendWan {
		path = WanPath
		body = map[string]interface{}{
			"image_url":       req.ImageURL,
			"prompt":          TurntablePrompt,
			"negative_prompt": TurntableNegativePrompt,
			"aspect_ratio":    TurntableAspectRatio,
		}
	}

	var parsed struct {
		Video struct {
			URL string `json:"url"`
		} `json:"video"`
	}

	if err := f.post(ctx, apiKey, path, body, &parsed); err != nil {
		return nil, err
	}

	if parsed.Video.URL == "" {
		return nil, errors.New("video response contained no media")
	}

	return &VideoResponse{VideoURL: parsed.Video.URL}, nil
}

// post issues one request and awaits one response. No retry, no backoff:
// generation failures are terminal and the caller records them as such.
func (f *falClient) post(ctx context.Context, apiKey, path string, body map[string]interface{}, out interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Key "+apiKey)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := strings.TrimSpace(string(payload))
		if len(detail) > 300 {
			detail = detail[:300]
		}
		return fmt.Errorf("fal API error %s: %s", resp.Status, detail)
	}

	return json.Unmarshal(payload, out)
}
