package dto

import (
	"time"

	"tours_backend/internal/feature/tours/domain/entity"
)

// TourRes is the public projection of a tour.
type TourRes struct {
	ID              uint        `json:"id"`
	Name            string      `json:"name"`
	Slug            string      `json:"slug"`
	Duration        int         `json:"duration"`
	DurationWeeks   float64     `json:"durationWeeks"`
	MaxGroupSize    int         `json:"maxGroupSize"`
	Difficulty      string      `json:"difficulty"`
	RatingsAverage  float64     `json:"ratingsAverage"`
	RatingsQuantity int         `json:"ratingsQuantity"`
	Price           float64     `json:"price"`
	PriceDiscount   float64     `json:"priceDiscount,omitempty"`
	Summary         string      `json:"summary"`
	Description     string      `json:"description,omitempty"`
	ImageCover      string      `json:"imageCover,omitempty"`
	Images          []string    `json:"images,omitempty"`
	StartDates      []time.Time `json:"startDates,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// NewTourRes maps a tour entity to its public projection.
func NewTourRes(t *entity.Tour) TourRes {
	dates := make([]time.Time, 0, len(t.StartDates))
	for _, d := range t.StartDates {
		dates = append(dates, d.StartsAt)
	}
	return TourRes{
		ID:              t.ID,
		Name:            t.Name,
		Slug:            t.Slug,
		Duration:        t.Duration,
		DurationWeeks:   t.DurationWeeks(),
		MaxGroupSize:    t.MaxGroupSize,
		Difficulty:      string(t.Difficulty),
		RatingsAverage:  t.RatingsAverage,
		RatingsQuantity: t.RatingsQuantity,
		Price:           t.Price,
		PriceDiscount:   t.PriceDiscount,
		Summary:         t.Summary,
		Description:     t.Description,
		ImageCover:      t.ImageCover,
		Images:          t.Images,
		StartDates:      dates,
		CreatedAt:       t.CreatedAt,
	}
}

// NewTourResList maps a slice of tour entities.
func NewTourResList(tours []entity.Tour) []TourRes {
	out := make([]TourRes, 0, len(tours))
	for i := range tours {
		out = append(out, NewTourRes(&tours[i]))
	}
	return out
}
