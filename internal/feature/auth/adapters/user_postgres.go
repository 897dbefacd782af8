// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"tours_backend/internal/feature/auth/domain/entity"
	"tours_backend/internal/feature/auth/usecase"
	"tours_backend/internal/platform/query"
)

// pgUniqueViolation is the PostgreSQL error code for a unique constraint hit.
const pgUniqueViolation = "23505"

// userPostgres implements the UserRepository interface over gorm.
type userPostgres struct {
	db *gorm.DB
}

// Compile-time check that userPostgres satisfies the consumer interfaces.
var _ usecase.UserLister = (*userPostgres)(nil)

// NewUserRepository creates a userPostgres instance for dependency injection.
func NewUserRepository(db *gorm.DB) *userPostgres {
	return &userPostgres{db: db}
}

// isDuplicate reports whether err is a unique-key violation. The gorm
// translation covers the SQLite test driver, the pgconn check covers
// production Postgres regardless of translation settings.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// Create adds a user to the database.
// It returns usecase.ErrEmailAlreadyExists on a duplicate email.
func (r *userPostgres) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicate(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail retrieves an active user by email address.
// It returns usecase.ErrUserNotFound when no such user exists.
func (r *userPostgres) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByID retrieves an active user by ID.
// It returns usecase.ErrUserNotFound when no such user exists.
func (r *userPostgres) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByResetToken retrieves an active user by reset token hash.
// It returns usecase.ErrUserNotFound when no such user exists.
func (r *userPostgres) FindByResetToken(ctx context.Context, tokenHash string) (*entity.User, error) {
	return r.findOne(ctx, "password_reset_token = ?", tokenHash)
}

func (r *userPostgres) findOne(ctx context.Context, cond string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.db.WithContext(ctx).
		Where(cond, arg).
		Where("active = ?", true).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Save writes every field of an existing user, including cleared ones, so
// reset-token fields actually empty out on rollback and consumption.
func (r *userPostgres) Save(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Save(u).Error; err != nil {
		if isDuplicate(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// List returns active users matching the translated query specification.
func (r *userPostgres) List(ctx context.Context, spec *query.Spec) ([]entity.User, error) {
	var users []entity.User
	err := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("active = ?", true).
		Scopes(spec.Scope()).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
