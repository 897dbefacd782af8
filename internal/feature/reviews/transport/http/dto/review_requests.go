// Package dto defines data transfer objects for the reviews feature's HTTP transport layer.
package dto

import (
	"time"

	"tours_backend/internal/feature/reviews/domain/entity"
)

// CreateReviewReq represents the request body for POST /tours/:tourId/reviews.
type CreateReviewReq struct {
	Review string `json:"review" binding:"required"`
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
}

// UpdateReviewReq represents the request body for PATCH /reviews/:id.
type UpdateReviewReq struct {
	Review *string `json:"review"`
	Rating *int    `json:"rating" binding:"omitempty,min=1,max=5"`
}

// ReviewRes is the public projection of a review.
type ReviewRes struct {
	ID         uint      `json:"id"`
	Review     string    `json:"review"`
	Rating     int       `json:"rating"`
	TourID     uint      `json:"tourId"`
	UserID     uint      `json:"userId"`
	AuthorName string    `json:"authorName,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewReviewRes maps a review entity to its public projection.
func NewReviewRes(r *entity.Review) ReviewRes {
	return ReviewRes{
		ID:         r.ID,
		Review:     r.Review,
		Rating:     r.Rating,
		TourID:     r.TourID,
		UserID:     r.UserID,
		AuthorName: r.AuthorName,
		CreatedAt:  r.CreatedAt,
	}
}

// NewReviewResList maps a slice of review entities.
func NewReviewResList(reviews []entity.Review) []ReviewRes {
	out := make([]ReviewRes, 0, len(reviews))
	for i := range reviews {
		out = append(out, NewReviewRes(&reviews[i]))
	}
	return out
}
