package entity

import "time"

type Garment struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Brand       string    `db:"brand"`
	Category    string    `db:"category"`
	ImageURL    string    `db:"image_url"`
	Description string    `db:"description"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// FASHN garment categories.
const (
	CategoryTops      = "tops"
	CategoryBottoms   = "bottoms"
	CategoryOnePieces = "one-pieces"
)

func ValidGarmentCategory(category string) bool {
	switch category {
	case CategoryTops, CategoryBottoms, CategoryOnePieces:
		return true
	}
	return false
}
