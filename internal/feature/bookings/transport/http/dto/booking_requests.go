// Package dto defines data transfer objects for the bookings feature's HTTP transport layer.
package dto

import (
	"time"

	"tours_backend/internal/feature/bookings/domain/entity"
)

// CreateBookingReq represents the request body for POST /bookings.
type CreateBookingReq struct {
	TourID uint    `json:"tourId" binding:"required"`
	Price  float64 `json:"price" binding:"required,gt=0"`
}

// BookingRes is the public projection of a booking.
type BookingRes struct {
	ID        uint      `json:"id"`
	TourID    uint      `json:"tourId"`
	UserID    uint      `json:"userId"`
	Price     float64   `json:"price"`
	Paid      bool      `json:"paid"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewBookingRes maps a booking entity to its public projection.
func NewBookingRes(b *entity.Booking) BookingRes {
	return BookingRes{
		ID:        b.ID,
		TourID:    b.TourID,
		UserID:    b.UserID,
		Price:     b.Price,
		Paid:      b.Paid,
		CreatedAt: b.CreatedAt,
	}
}

// NewBookingResList maps a slice of booking entities.
func NewBookingResList(bookings []entity.Booking) []BookingRes {
	out := make([]BookingRes, 0, len(bookings))
	for i := range bookings {
		out = append(out, NewBookingRes(&bookings[i]))
	}
	return out
}
