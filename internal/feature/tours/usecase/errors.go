// Package usecase implements the business logic for the tours feature.
package usecase

import "errors"

var (
	// ErrTourNotFound is returned when no visible tour matches the given ID.
	ErrTourNotFound = errors.New("tour not found")

	// ErrNameAlreadyExists is returned when a tour name is already taken.
	ErrNameAlreadyExists = errors.New("tour name already exists")

	// ErrInvalidDifficulty is returned for a difficulty outside the enum.
	ErrInvalidDifficulty = errors.New("difficulty must be easy, medium or difficult")

	// ErrInvalidDiscount is returned when a discount is not below the price.
	ErrInvalidDiscount = errors.New("discount price must be below the regular price")
)
