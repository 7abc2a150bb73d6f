package entity

import "time"

// Profile is the user's captured data, cached in the key-value store and
// deleted wholesale by the inactivity wipe.
type Profile struct {
	DisplayName  string       `json:"display_name"`
	PhotoURL     string       `json:"photo_url"`
	Measurements Measurements `json:"measurements"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

type Measurements struct {
	HeightCM float64 `json:"height_cm"`
	WeightKG float64 `json:"weight_kg"`
	ChestCM  float64 `json:"chest_cm"`
	WaistCM  float64 `json:"waist_cm"`
	HipsCM   float64 `json:"hips_cm"`
}
