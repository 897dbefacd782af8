// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned on login failure. It is identical for
	// unknown email and wrong password so accounts cannot be enumerated.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrInvalidToken is returned when a presented credential is missing,
	// malformed, expired, forged, or predates the user's last password change.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrIncorrectPassword is returned when the current password given for a
	// password change does not match.
	ErrIncorrectPassword = errors.New("current password is incorrect")

	// ErrPasswordMismatch is returned when password and confirmation differ.
	ErrPasswordMismatch = errors.New("password and confirmation do not match")

	// ErrInvalidResetToken is returned when a reset secret does not match any
	// user or its validity window has passed.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")

	// ErrMailDelivery is returned when the reset email cannot be dispatched.
	// The issued reset token is rolled back before this is surfaced.
	ErrMailDelivery = errors.New("failed to send email")

	// ErrPasswordRouteMisuse is returned when a profile update tries to
	// change the password through the generic update route.
	ErrPasswordRouteMisuse = errors.New("this route is not for password updates")
)
