// Package usecase implements the business logic for the reviews feature.
package usecase

import "errors"

var (
	// ErrReviewNotFound is returned when no review matches the given ID.
	ErrReviewNotFound = errors.New("review not found")

	// ErrNotReviewAuthor is returned when a caller tries to modify someone
	// else's review.
	ErrNotReviewAuthor = errors.New("you may only modify your own reviews")

	// ErrInvalidRating is returned for ratings outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrEmptyPatch is returned when an update names neither text nor rating.
	ErrEmptyPatch = errors.New("nothing to update")
)
