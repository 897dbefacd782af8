// Package handler provides HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tours_backend/internal/feature/auth/domain/entity"
	"tours_backend/internal/feature/auth/transport/http/dto"
	"tours_backend/internal/feature/auth/usecase"
)

// AuthUsecase defines the authentication operations the handler depends on.
// Following Go convention, the consumer (handler) defines the interface
// rather than the provider (usecase).
type AuthUsecase interface {
	// Signup registers a new user and returns it with a fresh credential.
	Signup(ctx context.Context, name, email, password, confirm string) (*entity.User, string, error)
	// Login authenticates a user and returns a signed credential on success.
	Login(ctx context.Context, email, password string) (string, error)
	// ForgotPassword issues a reset token and emails it to the user.
	ForgotPassword(ctx context.Context, email string) error
	// ResetPassword consumes a reset secret and replaces the password.
	ResetPassword(ctx context.Context, secret, newPassword, confirm string) (string, error)
}

// AuthHandler handles HTTP requests for authentication operations.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup handles POST /api/v1/auth/signup.
// - 400 on validation failure or password mismatch
// - 409 on duplicate email
// - 201 with token and public user projection on success
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, signed, err := h.auth.Signup(c.Request.Context(), req.Name, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
		case errors.Is(err, usecase.ErrPasswordMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			slog.Error("signup failed", "error", err, "email", req.Email)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		}
		return
	}

	slog.Info("user signup successful", "email", req.Email, "remote_addr", c.ClientIP())
	userRes := dto.NewUserRes(user)
	c.JSON(http.StatusCreated, dto.TokenRes{Token: signed, User: &userRes})
}

// Login handles POST /api/v1/auth/login.
// Unknown email and wrong password return the same 401 body.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	signed, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
		return
	}

	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.TokenRes{Token: signed})
}

// ForgotPassword handles POST /api/v1/auth/forgot-password.
// A mail dispatch failure surfaces as 500 after the stored token has been
// rolled back.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "no user with that email address"})
		case errors.Is(err, usecase.ErrMailDelivery):
			slog.Error("reset email dispatch failed", "error", err, "email", req.Email)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send email, try again later"})
		default:
			slog.Error("forgot-password failed", "error", err, "email", req.Email)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "reset token sent to email"})
}

// ResetPassword handles POST /api/v1/auth/reset-password/:token.
// A consumed or expired secret fails with the same 400 body.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	signed, err := h.auth.ResetPassword(c.Request.Context(), c.Param("token"), req.Password, req.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidResetToken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired token"})
		case errors.Is(err, usecase.ErrPasswordMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			slog.Error("reset-password failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.TokenRes{Token: signed})
}
