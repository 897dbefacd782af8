// Package entity defines the domain entities for the bookings feature.
package entity

import "time"

// Booking records that a user paid for a tour.
type Booking struct {
	// ID is the unique identifier for the booking.
	ID uint `gorm:"primaryKey"`

	// TourID references the booked tour.
	TourID uint `gorm:"index;not null"`

	// UserID references the buyer.
	UserID uint `gorm:"index;not null"`

	// Price is the amount paid at booking time. Later tour price changes do
	// not touch existing bookings.
	Price float64 `gorm:"not null"`

	// Paid is false only for bookings created manually by staff.
	Paid bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CheckoutSession is the ephemeral payment handle returned to the client.
// It is never persisted; the provider owns its lifecycle.
type CheckoutSession struct {
	ID          string  `json:"id"`
	TourID      uint    `json:"tourId"`
	TourName    string  `json:"tourName"`
	Summary     string  `json:"summary"`
	AmountCents int64   `json:"amountCents"`
	Currency    string  `json:"currency"`
	Email       string  `json:"email"`
	SuccessURL  string  `json:"successUrl"`
	CancelURL   string  `json:"cancelUrl"`
	Price       float64 `json:"price"`
}
