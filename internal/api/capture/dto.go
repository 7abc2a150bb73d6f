package capture

import "VirtualMirror/internal/entity"

type PositionResponse struct {
	Status       entity.PositionStatus `json:"status"`
	Instructions []string              `json:"instructions,omitempty"`
	XDeviation   float64               `json:"x_deviation,omitempty"`
	YDeviation   float64               `json:"y_deviation,omitempty"`
	BodyRatio    float64               `json:"body_ratio,omitempty"`
}

type ProfileRequest struct {
	DisplayName  string               `json:"display_name" validate:"max=120"`
	PhotoURL     string               `json:"photo_url" validate:"omitempty,url"`
	Measurements entity.Measurements  `json:"measurements"`
}

type ProfileResponse struct {
	Profile entity.Profile `json:"profile"`
}
