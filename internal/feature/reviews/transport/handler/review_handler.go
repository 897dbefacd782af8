// Package handler provides HTTP handlers for the reviews feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authentity "tours_backend/internal/feature/auth/domain/entity"
	authmw "tours_backend/internal/feature/auth/transport/middleware"
	"tours_backend/internal/feature/reviews/domain/entity"
	"tours_backend/internal/feature/reviews/transport/http/dto"
	"tours_backend/internal/feature/reviews/usecase"
	toursusecase "tours_backend/internal/feature/tours/usecase"
)

// ReviewUsecase defines the review operations the handler depends on.
type ReviewUsecase interface {
	List(ctx context.Context, tourID uint) ([]entity.Review, error)
	Create(ctx context.Context, userID, tourID uint, text string, rating int) (*entity.Review, error)
	Update(ctx context.Context, callerID uint, reviewID uint, patch usecase.ReviewPatch) (*entity.Review, error)
	Delete(ctx context.Context, callerID uint, callerRole authentity.Role, reviewID uint) error
}

// ReviewHandler handles HTTP requests for review operations.
type ReviewHandler struct {
	reviews ReviewUsecase
}

// NewReviewHandler creates a new ReviewHandler instance.
func NewReviewHandler(reviews ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// List handles GET /api/v1/reviews and GET /api/v1/tours/:tourId/reviews.
// The nested form scopes to one tour.
func (h *ReviewHandler) List(c *gin.Context) {
	var tourID uint
	if raw := c.Param("tourId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tour id"})
			return
		}
		tourID = uint(id)
	}

	reviews, err := h.reviews.List(c.Request.Context(), tourID)
	if err != nil {
		slog.Error("review list failed", "error", err, "tour_id", tourID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(reviews), "reviews": dto.NewReviewResList(reviews)})
}

// Create handles POST /api/v1/tours/:tourId/reviews (role "user").
func (h *ReviewHandler) Create(c *gin.Context) {
	user := authmw.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "you are not logged in"})
		return
	}

	tourID, err := strconv.ParseUint(c.Param("tourId"), 10, 64)
	if err != nil || tourID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tour id"})
		return
	}

	var req dto.CreateReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	review, err := h.reviews.Create(c.Request.Context(), user.ID, uint(tourID), req.Review, req.Rating)
	if err != nil {
		switch {
		case errors.Is(err, toursusecase.ErrTourNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "tour not found"})
		case errors.Is(err, usecase.ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			slog.Error("review create failed", "error", err, "tour_id", tourID, "user_id", user.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": dto.NewReviewRes(review)})
}

// Update handles PATCH /api/v1/reviews/:id. Author-only.
func (h *ReviewHandler) Update(c *gin.Context) {
	user := authmw.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "you are not logged in"})
		return
	}

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || reviewID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	var req dto.UpdateReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	review, err := h.reviews.Update(c.Request.Context(), user.ID, uint(reviewID), usecase.ReviewPatch{
		Review: req.Review,
		Rating: req.Rating,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
		case errors.Is(err, usecase.ErrNotReviewAuthor):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrInvalidRating), errors.Is(err, usecase.ErrEmptyPatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			slog.Error("review update failed", "error", err, "review_id", reviewID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": dto.NewReviewRes(review)})
}

// Delete handles DELETE /api/v1/reviews/:id. Author or admin.
func (h *ReviewHandler) Delete(c *gin.Context) {
	user := authmw.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "you are not logged in"})
		return
	}

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || reviewID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	if err := h.reviews.Delete(c.Request.Context(), user.ID, user.Role, uint(reviewID)); err != nil {
		switch {
		case errors.Is(err, usecase.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
		case errors.Is(err, usecase.ErrNotReviewAuthor):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			slog.Error("review delete failed", "error", err, "review_id", reviewID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
