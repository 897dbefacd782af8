package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tours_backend/internal/feature/auth/domain/entity"
	"tours_backend/internal/platform/token"
)

const (
	// minPasswordLength is the minimum number of password characters.
	minPasswordLength = 8

	// bcryptCost trades login latency for brute-force resistance.
	bcryptCost = 12

	// passwordChangeMargin is subtracted from the PasswordChangedAt stamp so
	// a token issued in the same instant as the change still fails the
	// freshness check.
	passwordChangeMargin = time.Second
)

// UserRepository abstracts persistence for user entities.
// Following Go convention, the consumer (usecase) defines the interface
// rather than the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrEmailAlreadyExists when a
	// user with the same email exists.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns the active user with the given email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID returns the active user with the given ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByResetToken returns the active user holding the given reset
	// token hash. Expiry is the caller's concern.
	FindByResetToken(ctx context.Context, tokenHash string) (*entity.User, error)

	// Save persists every field of an existing user, including fields that
	// were cleared.
	Save(ctx context.Context, user *entity.User) error
}

// TokenService issues and verifies signed credentials.
// The interface lives here, at the consumer, per Go convention.
type TokenService interface {
	// GenerateToken creates a signed credential for the given user.
	GenerateToken(userID uint) (string, error)

	// ParseToken verifies signature and expiry and returns the claims.
	ParseToken(raw string) (*token.Claims, error)
}

// Mailer dispatches transactional email to a user's registered address.
type Mailer interface {
	SendWelcome(toEmail, name string) error
	SendPasswordReset(toEmail, name, resetURL string) error
}

// authUsecase implements authentication business logic.
type authUsecase struct {
	users    UserRepository
	tokens   TokenService
	mail     Mailer
	resetTTL time.Duration
	baseURL  string
}

// NewAuthUsecase creates a new authUsecase instance.
func NewAuthUsecase(users UserRepository, tokens TokenService, mail Mailer, resetTTL time.Duration, baseURL string) *authUsecase {
	return &authUsecase{
		users:    users,
		tokens:   tokens,
		mail:     mail,
		resetTTL: resetTTL,
		baseURL:  baseURL,
	}
}

// validatePassword checks the password against security requirements and
// its confirmation.
func validatePassword(password, confirm string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

// Signup registers a new user and returns it with a fresh credential.
func (u *authUsecase) Signup(ctx context.Context, name, email, password, confirm string) (*entity.User, string, error) {
	if err := validatePassword(password, confirm); err != nil {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     entity.RoleUser,
		Active:   true,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	// Welcome mail is best-effort; signup already succeeded.
	go func() {
		if err := u.mail.SendWelcome(user.Email, user.Name); err != nil {
			slog.Warn("failed to send welcome email", "email", user.Email, "error", err)
		}
	}()

	signed, err := u.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, signed, nil
}

// Login authenticates a user and returns a signed credential on success.
// A bcrypt comparison runs even when the email is unknown so response
// timing does not reveal whether the account exists.
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, email)

	// Dummy hash keeps bcrypt.CompareHashAndPassword on the path for
	// unknown emails.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil || compareErr != nil {
		return "", ErrInvalidCredentials
	}

	signed, err := u.tokens.GenerateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}

// AuthenticateToken resolves a presented credential to its user.
// It rejects tokens that fail verification, reference a missing or inactive
// user, or were issued before the user's last password change. Every failure
// maps to the same ErrInvalidToken.
func (u *authUsecase) AuthenticateToken(ctx context.Context, raw string) (*entity.User, error) {
	claims, err := u.tokens.ParseToken(raw)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := u.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if user.ChangedPasswordAfter(claims.IssuedAt) {
		return nil, ErrInvalidToken
	}

	return user, nil
}

// UpdatePassword replaces the password of an authenticated user after
// verifying the current one, and returns a fresh credential.
func (u *authUsecase) UpdatePassword(ctx context.Context, userID uint, current, newPassword, confirm string) (string, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return "", ErrIncorrectPassword
	}
	if err := validatePassword(newPassword, confirm); err != nil {
		return "", err
	}

	if err := u.replacePassword(ctx, user, newPassword); err != nil {
		return "", err
	}

	signed, err := u.tokens.GenerateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}

// ForgotPassword issues a single-use reset token and emails it to the user.
// Only the SHA-256 of the secret is persisted. If the email cannot be sent
// the stored token is rolled back so the user is not left with a dangling,
// undeliverable reset token.
func (u *authUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	secret, err := newResetSecret()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expires := time.Now().Add(u.resetTTL)
	user.PasswordResetToken = hashResetSecret(secret)
	user.PasswordResetExpires = &expires
	if err := u.users.Save(ctx, user); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/api/v1/auth/reset-password/%s", u.baseURL, secret)
	if err := u.mail.SendPasswordReset(user.Email, user.Name, resetURL); err != nil {
		user.ClearResetToken()
		if saveErr := u.users.Save(ctx, user); saveErr != nil {
			slog.Error("failed to roll back reset token", "email", user.Email, "error", saveErr)
		}
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}

	return nil
}

// ResetPassword consumes a reset secret and replaces the password.
// The stored token is single-use: both reset fields are cleared in the same
// save that writes the new password, and a second attempt with the same
// secret fails.
func (u *authUsecase) ResetPassword(ctx context.Context, secret, newPassword, confirm string) (string, error) {
	user, err := u.users.FindByResetToken(ctx, hashResetSecret(secret))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrInvalidResetToken
		}
		return "", err
	}
	if !user.HasResetToken(time.Now()) {
		return "", ErrInvalidResetToken
	}

	if err := validatePassword(newPassword, confirm); err != nil {
		return "", err
	}

	if err := u.replacePassword(ctx, user, newPassword); err != nil {
		return "", err
	}

	signed, err := u.tokens.GenerateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}

// replacePassword hashes and stores a new password, clears any outstanding
// reset token, and stamps PasswordChangedAt slightly in the past so tokens
// issued in the same second as the change are already stale.
func (u *authUsecase) replacePassword(ctx context.Context, user *entity.User, newPassword string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	changedAt := time.Now().Add(-passwordChangeMargin)
	user.Password = string(hashed)
	user.PasswordChangedAt = &changedAt
	user.ClearResetToken()

	return u.users.Save(ctx, user)
}

// newResetSecret returns 32 bytes of hex-encoded entropy.
func newResetSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// hashResetSecret is the one-way mapping from a plaintext reset secret to
// its stored form.
func hashResetSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
