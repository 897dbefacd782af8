// Package entity defines the domain entities for the tours feature.
package entity

import "time"

// Difficulty grades how demanding a tour is.
type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyDifficult Difficulty = "difficult"
)

// Valid reports whether d is one of the defined difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyDifficult:
		return true
	}
	return false
}

// Tour represents a bookable tour.
type Tour struct {
	// ID is the unique identifier for the tour.
	ID uint `gorm:"primaryKey"`

	// Name must be unique across all tours.
	Name string `gorm:"uniqueIndex;size:100;not null"`

	// Slug is recomputed from Name on every create and rename.
	Slug string `gorm:"size:120;index"`

	// Duration is the tour length in days.
	Duration int `gorm:"not null"`

	// MaxGroupSize caps the number of participants.
	MaxGroupSize int `gorm:"not null"`

	Difficulty Difficulty `gorm:"size:16;not null"`

	// RatingsAverage and RatingsQuantity are maintained explicitly by the
	// reviews usecase after every review mutation.
	RatingsAverage  float64 `gorm:"not null;default:4.5"`
	RatingsQuantity int     `gorm:"not null;default:0"`

	// Price is the per-person price.
	Price float64 `gorm:"not null"`

	// PriceDiscount, when set, must stay below Price.
	PriceDiscount float64

	Summary     string `gorm:"size:512;not null"`
	Description string `gorm:"type:text"`

	ImageCover string   `gorm:"size:512"`
	Images     []string `gorm:"serializer:json"`

	// StartDates are the scheduled departures.
	StartDates []StartDate `gorm:"constraint:OnDelete:CASCADE"`

	// Secret tours are hidden from every public read path. The exclusion is
	// an explicit filter in the repository, not a query hook.
	Secret bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DurationWeeks derives the tour length in weeks.
func (t *Tour) DurationWeeks() float64 {
	return float64(t.Duration) / 7
}

// StartDate is one scheduled departure of a tour.
type StartDate struct {
	ID       uint      `gorm:"primaryKey"`
	TourID   uint      `gorm:"index;not null"`
	StartsAt time.Time `gorm:"not null"`
}
