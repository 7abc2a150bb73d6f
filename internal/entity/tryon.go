package entity

import "time"

// TryOn is a composite image of the user's photo with a catalog garment
// rendered onto it, produced by the FASHN model.
type TryOn struct {
	ID              string    `db:"id"`
	PersonImageURL  string    `db:"person_image_url"`
	GarmentID       string    `db:"garment_id"`
	GarmentImageURL string    `db:"garment_image_url"`
	Category        string    `db:"category"`
	CompositeURL    string    `db:"composite_url"`
	Favorite        bool      `db:"favorite"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type GenerationStatus string

const (
	GenerationPending   GenerationStatus = "Pending"
	GenerationSucceeded GenerationStatus = "Succeeded"
	GenerationFailed    GenerationStatus = "Failed"
)

// GenerationResult is one 360° turntable video request for a try-on image.
// Terminal once Succeeded or Failed; never retried automatically.
type GenerationResult struct {
	ID             string           `db:"id"`
	TryOnID        string           `db:"tryon_id"`
	SourceImageRef string           `db:"source_image_ref"`
	Backend        string           `db:"backend"`
	VideoURL       string           `db:"video_url"`
	Status         GenerationStatus `db:"status"`
	ErrorDetail    string           `db:"error_detail"`
	CreatedAt      time.Time        `db:"created_at"`
	UpdatedAt      time.Time        `db:"updated_at"`
}
