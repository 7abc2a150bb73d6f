package tryon

import "mime/multipart"

type CreateTryOnRequest struct {
	PersonImageURL  string `json:"person_image_url" validate:"omitempty,url"`
	GarmentID       string `json:"garment_id" validate:"omitempty"`
	GarmentImageURL string `json:"garment_image_url" validate:"omitempty,url"`
	Category        string `json:"category" validate:"omitempty,oneof=tops bottoms one-pieces"`
	APIKey          string `json:"api_key" validate:"omitempty"`

	PersonImage *multipart.FileHeader `json:"-"`
}

type TryOnResponse struct {
	ID              string `json:"id"`
	PersonImageURL  string `json:"person_image_url"`
	GarmentID       string `json:"garment_id,omitempty"`
	GarmentImageURL string `json:"garment_image_url"`
	Category        string `json:"category"`
	CompositeURL    string `json:"composite_url"`
	Favorite        bool   `json:"favorite"`
	CreatedAt       string `json:"created_at"`
}

type GenerateVideoRequest struct {
	TryOnID string `json:"tryon_id" validate:"required"`
	Backend string `json:"backend" validate:"omitempty,oneof=kling wan"`
	APIKey  string `json:"api_key" validate:"omitempty"`
}

type GenerationResponse struct {
	ID          string `json:"id"`
	TryOnID     string `json:"tryon_id"`
	Backend     string `json:"backend"`
	VideoURL    string `json:"video_url,omitempty"`
	Status      string `json:"status"`
	ErrorDetail string `json:"error_detail,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type TryOnHistoryItem struct {
	TryOn       TryOnResponse        `json:"tryon"`
	Generations []GenerationResponse `json:"generations"`
}

type HistoryResponse struct {
	Items []TryOnHistoryItem `json:"items"`
	Total int                `json:"total"`
}

type ShareVideoRequest struct {
	GenerationID string `json:"generation_id" validate:"required"`
	PhoneNumber  string `json:"phone_number" validate:"required,min=8,max=20"`
}
