// Package usecase implements the business logic for the bookings feature.
package usecase

import "errors"

var (
	// ErrBookingNotFound is returned when no booking matches the given ID.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrMissingBookingFields is returned when a booking request lacks the
	// tour or the price.
	ErrMissingBookingFields = errors.New("tour and price are required")
)
