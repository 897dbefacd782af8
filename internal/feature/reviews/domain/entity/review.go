// Package entity defines the domain entities for the reviews feature.
package entity

import "time"

// Review is one user's review of a tour.
type Review struct {
	// ID is the unique identifier for the review.
	ID uint `gorm:"primaryKey"`

	// Review is the free-text body.
	Review string `gorm:"type:text;not null"`

	// Rating is the 1..5 score feeding the tour's rating aggregate.
	Rating int `gorm:"not null"`

	// TourID references the reviewed tour.
	TourID uint `gorm:"index;not null"`

	// UserID references the author. Only the author may change the review.
	UserID uint `gorm:"index;not null"`

	// AuthorName is joined in on reads; it is not a column of this table.
	AuthorName string `gorm:"->;-:migration"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
