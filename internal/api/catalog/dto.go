package catalog

import "mime/multipart"

type CreateGarmentRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Brand       string `json:"brand" validate:"max=120"`
	Category    string `json:"category" validate:"omitempty,oneof=tops bottoms one-pieces"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	Description string `json:"description" validate:"max=500"`

	Image *multipart.FileHeader `json:"-"`
}

type GarmentResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

type GarmentListResponse struct {
	Garments []GarmentResponse `json:"garments"`
	Total    int               `json:"total"`
}

type CategorizeResponse struct {
	Category string `json:"category"`
}
