package dto

import "tours_backend/internal/feature/bookings/domain/entity"

// CheckoutSessionRes is the payload returned when a checkout session is created.
type CheckoutSessionRes struct {
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

// NewCheckoutSessionRes maps a checkout session to its response payload.
func NewCheckoutSessionRes(s *entity.CheckoutSession) CheckoutSessionRes {
	return CheckoutSessionRes{
		ID:          s.ID,
		TourID:      s.TourID,
		TourName:    s.TourName,
		Summary:     s.Summary,
		AmountCents: s.AmountCents,
		Currency:    s.Currency,
		Email:       s.Email,
		SuccessURL:  s.SuccessURL,
		CancelURL:   s.CancelURL,
		Price:       s.Price,
	}
}
