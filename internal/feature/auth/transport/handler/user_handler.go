package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"tours_backend/internal/feature/auth/domain/entity"
	"tours_backend/internal/feature/auth/transport/http/dto"
	authmw "tours_backend/internal/feature/auth/transport/middleware"
	"tours_backend/internal/feature/auth/usecase"
	"tours_backend/internal/platform/query"
)

// UserUsecase defines the profile operations the handler depends on.
type UserUsecase interface {
	List(ctx context.Context, params url.Values) ([]entity.User, error)
	UpdateMe(ctx context.Context, userID uint, name, email string) (*entity.User, error)
	DeactivateMe(ctx context.Context, userID uint) error
}

// PasswordChanger is the slice of the auth usecase the password route needs.
type PasswordChanger interface {
	UpdatePassword(ctx context.Context, userID uint, current, newPassword, confirm string) (string, error)
}

// UserHandler handles HTTP requests for profile management.
type UserHandler struct {
	users     UserUsecase
	passwords PasswordChanger
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(users UserUsecase, passwords PasswordChanger) *UserHandler {
	return &UserHandler{users: users, passwords: passwords}
}

// List handles GET /api/v1/users (admin only).
// Query parameters pass through the query translator; malformed filters or
// pagination are client errors.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		if query.IsClientError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.Error("user list failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": dto.NewUserResList(users)})
}

// Me handles GET /api/v1/users/me.
func (h *UserHandler) Me(c *gin.Context) {
	user := authmw.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "you are not logged in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.NewUserRes(user)})
}

// UpdateMe handles PATCH /api/v1/users/me.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user := authmw.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "you are not logged in"})
		return
	}

	var req dto.UpdateMeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Password != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": usecase.ErrPasswordRouteMisuse.Error()})
		return
	}

	updated, err := h.users.UpdateMe(c.Request.Context(), user.ID, req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			slog.Error("profile update failed", "error", err, "user_id", user.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.NewUserRes(updated)})
}

// DeleteMe handles DELETE /api/v1/users/me. The account is soft-deleted.
func (h *UserHandler) DeleteMe(c *gin.Context) {
	user := authmw.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "you are not logged in"})
		return
	}

	if err := h.users.DeactivateMe(c.Request.Context(), user.ID); err != nil {
		slog.Error("account deactivation failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdatePassword handles PATCH /api/v1/users/me/password.
// On success the response carries a fresh credential; the old one is stale
// from this moment on.
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	user := authmw.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "you are not logged in"})
		return
	}

	var req dto.UpdatePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	signed, err := h.passwords.UpdatePassword(c.Request.Context(), user.ID, req.CurrentPassword, req.Password, req.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrIncorrectPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrPasswordMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			slog.Error("password update failed", "error", err, "user_id", user.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.TokenRes{Token: signed})
}
