// Package dto defines data transfer objects for the tours feature's HTTP transport layer.
package dto

import (
	"time"

	"tours_backend/internal/feature/tours/domain/entity"
	"tours_backend/internal/feature/tours/usecase"
)

// CreateTourReq represents the request body for POST /tours.
type CreateTourReq struct {
	Name          string      `json:"name" binding:"required,min=10,max=40"`
	Duration      int         `json:"duration" binding:"required,min=1"`
	MaxGroupSize  int         `json:"maxGroupSize" binding:"required,min=1"`
	Difficulty    string      `json:"difficulty" binding:"required"`
	Price         float64     `json:"price" binding:"required,gt=0"`
	PriceDiscount float64     `json:"priceDiscount"`
	Summary       string      `json:"summary" binding:"required"`
	Description   string      `json:"description"`
	ImageCover    string      `json:"imageCover"`
	Images        []string    `json:"images"`
	StartDates    []time.Time `json:"startDates"`
	Secret        bool        `json:"secret"`
}

// ToEntity builds the tour entity the usecase persists.
func (r *CreateTourReq) ToEntity() *entity.Tour {
	dates := make([]entity.StartDate, 0, len(r.StartDates))
	for _, d := range r.StartDates {
		dates = append(dates, entity.StartDate{StartsAt: d})
	}
	return &entity.Tour{
		Name:          r.Name,
		Duration:      r.Duration,
		MaxGroupSize:  r.MaxGroupSize,
		Difficulty:    entity.Difficulty(r.Difficulty),
		Price:         r.Price,
		PriceDiscount: r.PriceDiscount,
		Summary:       r.Summary,
		Description:   r.Description,
		ImageCover:    r.ImageCover,
		Images:        r.Images,
		StartDates:    dates,
		Secret:        r.Secret,
	}
}

// UpdateTourReq represents the request body for PATCH /tours/:id.
// Pointer fields distinguish "absent" from zero values.
type UpdateTourReq struct {
	Name          *string     `json:"name" binding:"omitempty,min=10,max=40"`
	Duration      *int        `json:"duration" binding:"omitempty,min=1"`
	MaxGroupSize  *int        `json:"maxGroupSize" binding:"omitempty,min=1"`
	Difficulty    *string     `json:"difficulty"`
	Price         *float64    `json:"price" binding:"omitempty,gt=0"`
	PriceDiscount *float64    `json:"priceDiscount"`
	Summary       *string     `json:"summary"`
	Description   *string     `json:"description"`
	ImageCover    *string     `json:"imageCover"`
	Images        []string    `json:"images"`
	StartDates    []time.Time `json:"startDates"`
	Secret        *bool       `json:"secret"`
}

// ToPatch builds the usecase patch.
func (r *UpdateTourReq) ToPatch() usecase.TourPatch {
	patch := usecase.TourPatch{
		Name:          r.Name,
		Duration:      r.Duration,
		MaxGroupSize:  r.MaxGroupSize,
		Price:         r.Price,
		PriceDiscount: r.PriceDiscount,
		Summary:       r.Summary,
		Description:   r.Description,
		ImageCover:    r.ImageCover,
		Images:        r.Images,
		StartDates:    r.StartDates,
		Secret:        r.Secret,
	}
	if r.Difficulty != nil {
		d := entity.Difficulty(*r.Difficulty)
		patch.Difficulty = &d
	}
	return patch
}
