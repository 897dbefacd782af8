package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tours_backend/internal/feature/auth/domain/entity"
	"tours_backend/internal/platform/token"
)

// mockUserRepository is a func-field mock of the UserRepository interface.
type mockUserRepository struct {
	CreateFunc           func(ctx context.Context, user *entity.User) error
	FindByEmailFunc      func(ctx context.Context, email string) (*entity.User, error)
	FindByIDFunc         func(ctx context.Context, id uint) (*entity.User, error)
	FindByResetTokenFunc func(ctx context.Context, tokenHash string) (*entity.User, error)
	SaveFunc             func(ctx context.Context, user *entity.User) error
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByResetToken(ctx context.Context, tokenHash string) (*entity.User, error) {
	if m.FindByResetTokenFunc != nil {
		return m.FindByResetTokenFunc(ctx, tokenHash)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) Save(ctx context.Context, user *entity.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, user)
	}
	return nil
}

// mockTokenService is a func-field mock of the TokenService interface.
type mockTokenService struct {
	GenerateTokenFunc func(userID uint) (string, error)
	ParseTokenFunc    func(raw string) (*token.Claims, error)
}

func (m *mockTokenService) GenerateToken(userID uint) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID)
	}
	return "signed-token", nil
}

func (m *mockTokenService) ParseToken(raw string) (*token.Claims, error) {
	if m.ParseTokenFunc != nil {
		return m.ParseTokenFunc(raw)
	}
	return nil, token.ErrInvalidToken
}

// mockMailer is a func-field mock of the Mailer interface.
type mockMailer struct {
	SendWelcomeFunc       func(toEmail, name string) error
	SendPasswordResetFunc func(toEmail, name, resetURL string) error
}

func (m *mockMailer) SendWelcome(toEmail, name string) error {
	if m.SendWelcomeFunc != nil {
		return m.SendWelcomeFunc(toEmail, name)
	}
	return nil
}

func (m *mockMailer) SendPasswordReset(toEmail, name, resetURL string) error {
	if m.SendPasswordResetFunc != nil {
		return m.SendPasswordResetFunc(toEmail, name, resetURL)
	}
	return nil
}

func newTestUsecase(users *mockUserRepository, tokens *mockTokenService, mail *mockMailer) *authUsecase {
	if users == nil {
		users = &mockUserRepository{}
	}
	if tokens == nil {
		tokens = &mockTokenService{}
	}
	if mail == nil {
		mail = &mockMailer{}
	}
	return NewAuthUsecase(users, tokens, mail, 10*time.Minute, "http://localhost:8080")
}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(hashed)
}

func TestSignup_Success(t *testing.T) {
	t.Parallel()

	var created *entity.User
	users := &mockUserRepository{
		CreateFunc: func(ctx context.Context, user *entity.User) error {
			user.ID = 7
			created = user
			return nil
		},
	}

	uc := newTestUsecase(users, nil, nil)
	user, signed, err := uc.Signup(context.Background(), "Alice", "alice@example.com", "password123", "password123")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signed != "signed-token" {
		t.Errorf("expected a signed token, got %q", signed)
	}
	if user.Role != entity.RoleUser {
		t.Errorf("expected default role user, got %q", user.Role)
	}
	if !user.Active {
		t.Error("expected new user to be active")
	}
	if created.Password == "password123" {
		t.Error("password must not be stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password123")); err != nil {
		t.Error("stored hash does not verify against the password")
	}
}

func TestSignup_Validation(t *testing.T) {
	t.Parallel()

	uc := newTestUsecase(nil, nil, nil)

	if _, _, err := uc.Signup(context.Background(), "Bob", "bob@example.com", "short", "short"); err == nil {
		t.Error("expected error for short password")
	}
	if _, _, err := uc.Signup(context.Background(), "Bob", "bob@example.com", "password123", "different123"); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	t.Parallel()

	users := &mockUserRepository{
		CreateFunc: func(ctx context.Context, user *entity.User) error {
			return ErrEmailAlreadyExists
		},
	}

	uc := newTestUsecase(users, nil, nil)
	if _, _, err := uc.Signup(context.Background(), "Bob", "bob@example.com", "password123", "password123"); !errors.Is(err, ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	users := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			return &entity.User{ID: 1, Email: email, Password: hashPassword(t, "password123")}, nil
		},
	}

	uc := newTestUsecase(users, nil, nil)
	signed, err := uc.Login(context.Background(), "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signed == "" {
		t.Error("expected a signed token")
	}
}

func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	t.Parallel()

	users := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			if email == "alice@example.com" {
				return &entity.User{ID: 1, Email: email, Password: hashPassword(t, "password123")}, nil
			}
			return nil, ErrUserNotFound
		},
	}

	uc := newTestUsecase(users, nil, nil)

	_, errUnknown := uc.Login(context.Background(), "nobody@example.com", "password123")
	_, errWrong := uc.Login(context.Background(), "alice@example.com", "wrongpass123")

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrong, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", errWrong)
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Error("both failures must produce an identical message")
	}
}

func TestAuthenticateToken(t *testing.T) {
	t.Parallel()

	now := time.Now()
	changed := now.Add(-time.Minute)
	user := &entity.User{ID: 1, PasswordChangedAt: &changed}

	tests := []struct {
		name    string
		parse   func(raw string) (*token.Claims, error)
		find    func(ctx context.Context, id uint) (*entity.User, error)
		wantErr bool
	}{
		{
			name:  "fresh token resolves",
			parse: func(raw string) (*token.Claims, error) { return &token.Claims{UserID: 1, IssuedAt: now}, nil },
			find:  func(ctx context.Context, id uint) (*entity.User, error) { return user, nil },
		},
		{
			name:    "unparseable token",
			parse:   func(raw string) (*token.Claims, error) { return nil, token.ErrInvalidToken },
			wantErr: true,
		},
		{
			name:    "user gone or inactive",
			parse:   func(raw string) (*token.Claims, error) { return &token.Claims{UserID: 1, IssuedAt: now}, nil },
			find:    func(ctx context.Context, id uint) (*entity.User, error) { return nil, ErrUserNotFound },
			wantErr: true,
		},
		{
			name: "token predates password change",
			parse: func(raw string) (*token.Claims, error) {
				return &token.Claims{UserID: 1, IssuedAt: now.Add(-time.Hour)}, nil
			},
			find:    func(ctx context.Context, id uint) (*entity.User, error) { return user, nil },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := newTestUsecase(
				&mockUserRepository{FindByIDFunc: tt.find},
				&mockTokenService{ParseTokenFunc: tt.parse},
				nil,
			)

			got, err := uc.AuthenticateToken(context.Background(), "raw")
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidToken) {
					t.Fatalf("expected ErrInvalidToken, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID != 1 {
				t.Errorf("expected user 1, got %d", got.ID)
			}
		})
	}
}

func TestUpdatePassword(t *testing.T) {
	t.Parallel()

	user := &entity.User{ID: 1, Password: hashPassword(t, "oldpassword")}
	var saved *entity.User
	users := &mockUserRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) { return user, nil },
		SaveFunc: func(ctx context.Context, u *entity.User) error {
			saved = u
			return nil
		},
	}

	uc := newTestUsecase(users, nil, nil)

	if _, err := uc.UpdatePassword(context.Background(), 1, "wrongpass", "newpassword1", "newpassword1"); !errors.Is(err, ErrIncorrectPassword) {
		t.Fatalf("expected ErrIncorrectPassword, got %v", err)
	}

	signed, err := uc.UpdatePassword(context.Background(), 1, "oldpassword", "newpassword1", "newpassword1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signed == "" {
		t.Error("expected a fresh token")
	}
	if saved == nil {
		t.Fatal("expected the user to be saved")
	}
	if saved.PasswordChangedAt == nil || !saved.PasswordChangedAt.Before(time.Now()) {
		t.Error("expected PasswordChangedAt stamped in the past")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("newpassword1")); err != nil {
		t.Error("stored hash does not verify against the new password")
	}
}

func TestForgotPassword_StoresHashedTokenAndMails(t *testing.T) {
	t.Parallel()

	user := &entity.User{ID: 1, Name: "Alice", Email: "alice@example.com"}
	var saves int
	users := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) { return user, nil },
		SaveFunc: func(ctx context.Context, u *entity.User) error {
			saves++
			return nil
		},
	}

	var sentURL string
	mail := &mockMailer{
		SendPasswordResetFunc: func(toEmail, name, resetURL string) error {
			sentURL = resetURL
			return nil
		},
	}

	uc := newTestUsecase(users, nil, mail)
	if err := uc.ForgotPassword(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if saves != 1 {
		t.Errorf("expected one save, got %d", saves)
	}
	if user.PasswordResetToken == "" || user.PasswordResetExpires == nil {
		t.Fatal("expected a stored reset token with expiry")
	}
	if len(user.PasswordResetToken) != 64 {
		t.Errorf("expected a sha256 hex hash, got %d chars", len(user.PasswordResetToken))
	}

	// The mail carries the plaintext secret, never the stored hash.
	if sentURL == "" {
		t.Fatal("expected a reset mail")
	}
	secret := sentURL[strings.LastIndexByte(sentURL, '/')+1:]
	if secret == user.PasswordResetToken {
		t.Error("mailed secret must not equal the stored hash")
	}
	if hashResetSecret(secret) != user.PasswordResetToken {
		t.Error("stored hash must be the sha256 of the mailed secret")
	}
}

func TestForgotPassword_RollsBackOnMailFailure(t *testing.T) {
	t.Parallel()

	user := &entity.User{ID: 1, Name: "Alice", Email: "alice@example.com"}
	users := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) { return user, nil },
	}
	mail := &mockMailer{
		SendPasswordResetFunc: func(toEmail, name, resetURL string) error {
			return errors.New("smtp unreachable")
		},
	}

	uc := newTestUsecase(users, nil, mail)
	err := uc.ForgotPassword(context.Background(), "alice@example.com")

	if !errors.Is(err, ErrMailDelivery) {
		t.Fatalf("expected ErrMailDelivery, got %v", err)
	}
	if user.PasswordResetToken != "" || user.PasswordResetExpires != nil {
		t.Error("expected the reset token to be rolled back")
	}
}

func TestResetPassword_ConsumesToken(t *testing.T) {
	t.Parallel()

	secret := "plaintext-reset-secret"
	expires := time.Now().Add(10 * time.Minute)
	user := &entity.User{
		ID:                   1,
		Password:             hashPassword(t, "oldpassword"),
		PasswordResetToken:   hashResetSecret(secret),
		PasswordResetExpires: &expires,
	}

	users := &mockUserRepository{
		FindByResetTokenFunc: func(ctx context.Context, tokenHash string) (*entity.User, error) {
			if user.PasswordResetToken != "" && tokenHash == user.PasswordResetToken {
				return user, nil
			}
			return nil, ErrUserNotFound
		},
	}

	uc := newTestUsecase(users, nil, nil)

	signed, err := uc.ResetPassword(context.Background(), secret, "newpassword1", "newpassword1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signed == "" {
		t.Error("expected a fresh token")
	}
	if user.PasswordResetToken != "" || user.PasswordResetExpires != nil {
		t.Error("expected the reset token to be cleared")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("newpassword1")); err != nil {
		t.Error("stored hash does not verify against the new password")
	}

	// Second consume of the same secret must fail.
	if _, err := uc.ResetPassword(context.Background(), secret, "anotherpass1", "anotherpass1"); !errors.Is(err, ErrInvalidResetToken) {
		t.Errorf("expected ErrInvalidResetToken on reuse, got %v", err)
	}
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	t.Parallel()

	secret := "plaintext-reset-secret"
	expires := time.Now().Add(-time.Minute)
	user := &entity.User{
		ID:                   1,
		PasswordResetToken:   hashResetSecret(secret),
		PasswordResetExpires: &expires,
	}

	users := &mockUserRepository{
		FindByResetTokenFunc: func(ctx context.Context, tokenHash string) (*entity.User, error) {
			return user, nil
		},
	}

	uc := newTestUsecase(users, nil, nil)
	if _, err := uc.ResetPassword(context.Background(), secret, "newpassword1", "newpassword1"); !errors.Is(err, ErrInvalidResetToken) {
		t.Errorf("expected ErrInvalidResetToken, got %v", err)
	}
}
