// Package handler provides gin handlers for the bookings feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authmw "tours_backend/internal/feature/auth/transport/middleware"
	"tours_backend/internal/feature/bookings/domain/entity"
	"tours_backend/internal/feature/bookings/transport/http/dto"
	"tours_backend/internal/feature/bookings/usecase"
	toursusecase "tours_backend/internal/feature/tours/usecase"
)

// BookingUsecase is the set of booking operations the handler depends on.
type BookingUsecase interface {
	CheckoutSession(ctx context.Context, tourID uint, email string) (*entity.CheckoutSession, error)
	Create(ctx context.Context, userID, tourID uint, price float64) (*entity.Booking, error)
	MyBookings(ctx context.Context, userID uint) ([]entity.Booking, error)
}

// BookingHandler exposes booking endpoints.
type BookingHandler struct {
	bookings BookingUsecase
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(bookings BookingUsecase) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// CheckoutSession handles GET /bookings/checkout-session/:tourId.
// It creates a payment session for the tour on behalf of the current user.
func (h *BookingHandler) CheckoutSession(c *gin.Context) {
	user := authmw.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "you are not logged in"})
		return
	}

	tourID, err := strconv.ParseUint(c.Param("tourId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tour id"})
		return
	}

	session, err := h.bookings.CheckoutSession(c.Request.Context(), uint(tourID), user.Email)
	if err != nil {
		if errors.Is(err, toursusecase.ErrTourNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		slog.Error("failed to create checkout session", "tourID", tourID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create checkout session"})
		return
	}

	c.JSON(http.StatusOK, dto.NewCheckoutSessionRes(session))
}

// Create handles POST /bookings.
func (h *BookingHandler) Create(c *gin.Context) {
	user := authmw.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "you are not logged in"})
		return
	}

	var req dto.CreateBookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.bookings.Create(c.Request.Context(), user.ID, req.TourID, req.Price)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingBookingFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, toursusecase.ErrTourNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			slog.Error("failed to create booking", "userID", user.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create booking"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.NewBookingRes(booking))
}

// MyBookings handles GET /bookings/my-bookings.
func (h *BookingHandler) MyBookings(c *gin.Context) {
	user := authmw.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "you are not logged in"})
		return
	}

	bookings, err := h.bookings.MyBookings(c.Request.Context(), user.ID)
	if err != nil {
		slog.Error("failed to list bookings", "userID", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list bookings"})
		return
	}

	c.JSON(http.StatusOK, dto.NewBookingResList(bookings))
}
