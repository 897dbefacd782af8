// Package adapters provides repository and checkout implementations for the
// bookings feature.
package adapters

import (
	"context"

	"gorm.io/gorm"

	"tours_backend/internal/feature/bookings/domain/entity"
	"tours_backend/internal/feature/bookings/usecase"
)

// bookingPostgres implements the BookingRepository interface over gorm.
type bookingPostgres struct {
	db *gorm.DB
}

var _ usecase.BookingRepository = (*bookingPostgres)(nil)

// NewBookingRepository creates a bookingPostgres instance for dependency injection.
func NewBookingRepository(db *gorm.DB) *bookingPostgres {
	return &bookingPostgres{db: db}
}

// Create adds a booking to the database.
func (r *bookingPostgres) Create(ctx context.Context, b *entity.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// ListByUser returns a user's bookings, newest first.
func (r *bookingPostgres) ListByUser(ctx context.Context, userID uint) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
