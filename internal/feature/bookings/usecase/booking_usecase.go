package usecase

import (
	"context"

	"tours_backend/internal/feature/bookings/domain/entity"
	tourentity "tours_backend/internal/feature/tours/domain/entity"
)

// BookingRepository abstracts persistence for booking entities.
// Following Go convention, the consumer (usecase) defines the interface
// rather than the provider (adapters).
type BookingRepository interface {
	// Create persists a new booking.
	Create(ctx context.Context, b *entity.Booking) error

	// ListByUser returns a user's bookings, newest first.
	ListByUser(ctx context.Context, userID uint) ([]entity.Booking, error)
}

// TourFinder is the slice of the tours repository checkout needs.
type TourFinder interface {
	FindByID(ctx context.Context, id uint) (*tourentity.Tour, error)
}

// CheckoutProvider turns a tour and a buyer into a payment session.
// The gateway integration lives behind this interface.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, tour *tourentity.Tour, email string) (*entity.CheckoutSession, error)
}

// bookingUsecase implements booking business logic.
type bookingUsecase struct {
	bookings BookingRepository
	tours    TourFinder
	checkout CheckoutProvider
}

// NewBookingUsecase creates a new bookingUsecase instance.
func NewBookingUsecase(bookings BookingRepository, tours TourFinder, checkout CheckoutProvider) *bookingUsecase {
	return &bookingUsecase{
		bookings: bookings,
		tours:    tours,
		checkout: checkout,
	}
}

// CheckoutSession builds a payment session for a tour.
// Unknown tours surface the tours feature's not-found error.
func (u *bookingUsecase) CheckoutSession(ctx context.Context, tourID uint, email string) (*entity.CheckoutSession, error) {
	tour, err := u.tours.FindByID(ctx, tourID)
	if err != nil {
		return nil, err
	}
	return u.checkout.CreateSession(ctx, tour, email)
}

// Create records a completed booking for the caller.
func (u *bookingUsecase) Create(ctx context.Context, userID, tourID uint, price float64) (*entity.Booking, error) {
	if tourID == 0 || price <= 0 {
		return nil, ErrMissingBookingFields
	}
	if _, err := u.tours.FindByID(ctx, tourID); err != nil {
		return nil, err
	}

	booking := &entity.Booking{
		TourID: tourID,
		UserID: userID,
		Price:  price,
		Paid:   true,
	}
	if err := u.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// MyBookings returns the caller's bookings.
func (u *bookingUsecase) MyBookings(ctx context.Context, userID uint) ([]entity.Booking, error) {
	return u.bookings.ListByUser(ctx, userID)
}
