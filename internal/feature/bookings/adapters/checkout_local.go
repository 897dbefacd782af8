package adapters

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"tours_backend/internal/feature/bookings/domain/entity"
	"tours_backend/internal/feature/bookings/usecase"
	tourentity "tours_backend/internal/feature/tours/domain/entity"
)

// localCheckout fabricates checkout sessions without calling a payment
// gateway. It keeps the session shape a real provider adapter would fill,
// so swapping one in touches nothing but the constructor wiring.
type localCheckout struct {
	baseURL string
}

var _ usecase.CheckoutProvider = (*localCheckout)(nil)

// NewLocalCheckout creates a gateway-less checkout provider rooted at the
// service's public URL.
func NewLocalCheckout(baseURL string) *localCheckout {
	return &localCheckout{baseURL: baseURL}
}

// CreateSession builds a uuid-identified session for the tour.
func (p *localCheckout) CreateSession(_ context.Context, tour *tourentity.Tour, email string) (*entity.CheckoutSession, error) {
	return &entity.CheckoutSession{
		ID:          uuid.NewString(),
		TourID:      tour.ID,
		TourName:    fmt.Sprintf("%s Tour", tour.Name),
		Summary:     tour.Summary,
		AmountCents: int64(tour.Price * 100),
		Currency:    "usd",
		Email:       email,
		SuccessURL:  p.baseURL,
		CancelURL:   fmt.Sprintf("%s/tour/%s", p.baseURL, tour.Slug),
		Price:       tour.Price,
	}, nil
}
