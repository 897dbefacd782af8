// Package handler provides HTTP handlers for the tours feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"tours_backend/internal/feature/tours/domain/entity"
	"tours_backend/internal/feature/tours/transport/http/dto"
	"tours_backend/internal/feature/tours/usecase"
	"tours_backend/internal/platform/query"
)

// TourUsecase defines the tour operations the handler depends on.
// Following Go convention, the consumer (handler) defines the interface
// rather than the provider (usecase).
type TourUsecase interface {
	List(ctx context.Context, params url.Values) ([]entity.Tour, error)
	TopTours(ctx context.Context) ([]entity.Tour, error)
	Get(ctx context.Context, id uint) (*entity.Tour, error)
	Create(ctx context.Context, t *entity.Tour) error
	Update(ctx context.Context, id uint, patch usecase.TourPatch) (*entity.Tour, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) ([]usecase.DifficultyStats, error)
	MonthlyPlan(ctx context.Context, year int) ([]usecase.MonthlyDeparture, error)
}

// TourHandler handles HTTP requests for tour operations.
type TourHandler struct {
	tours TourUsecase
}

// NewTourHandler creates a new TourHandler instance.
func NewTourHandler(tours TourUsecase) *TourHandler {
	return &TourHandler{tours: tours}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// List handles GET /api/v1/tours.
// Query parameters pass through the query translator; malformed filters or
// pagination are client errors.
func (h *TourHandler) List(c *gin.Context) {
	tours, err := h.tours.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		if query.IsClientError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.Error("tour list failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(tours), "tours": dto.NewTourResList(tours)})
}

// TopTours handles GET /api/v1/tours/top-5-cheap.
func (h *TourHandler) TopTours(c *gin.Context) {
	tours, err := h.tours.TopTours(c.Request.Context())
	if err != nil {
		slog.Error("top tours failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(tours), "tours": dto.NewTourResList(tours)})
}

// Get handles GET /api/v1/tours/:tourId.
func (h *TourHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "tourId")
	if !ok {
		return
	}

	tour, err := h.tours.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrTourNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "tour not found"})
			return
		}
		slog.Error("tour get failed", "error", err, "tour_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tour": dto.NewTourRes(tour)})
}

// Create handles POST /api/v1/tours (admin, lead-guide).
func (h *TourHandler) Create(c *gin.Context) {
	var req dto.CreateTourReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	tour := req.ToEntity()
	if err := h.tours.Create(c.Request.Context(), tour); err != nil {
		switch {
		case errors.Is(err, usecase.ErrNameAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrInvalidDifficulty),
			errors.Is(err, usecase.ErrInvalidDiscount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			slog.Error("tour create failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"tour": dto.NewTourRes(tour)})
}

// Update handles PATCH /api/v1/tours/:tourId (admin, lead-guide).
func (h *TourHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "tourId")
	if !ok {
		return
	}

	var req dto.UpdateTourReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	tour, err := h.tours.Update(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTourNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "tour not found"})
		case errors.Is(err, usecase.ErrNameAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrInvalidDifficulty),
			errors.Is(err, usecase.ErrInvalidDiscount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			slog.Error("tour update failed", "error", err, "tour_id", id)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"tour": dto.NewTourRes(tour)})
}

// Delete handles DELETE /api/v1/tours/:tourId (admin, lead-guide).
func (h *TourHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "tourId")
	if !ok {
		return
	}

	if err := h.tours.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrTourNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "tour not found"})
			return
		}
		slog.Error("tour delete failed", "error", err, "tour_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Stats handles GET /api/v1/tours/stats.
func (h *TourHandler) Stats(c *gin.Context) {
	stats, err := h.tours.Stats(c.Request.Context())
	if err != nil {
		slog.Error("tour stats failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// MonthlyPlan handles GET /api/v1/tours/monthly-plan/:year.
func (h *TourHandler) MonthlyPlan(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}

	plan, err := h.tours.MonthlyPlan(c.Request.Context(), year)
	if err != nil {
		slog.Error("monthly plan failed", "error", err, "year", year)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"year": year, "plan": plan})
}
