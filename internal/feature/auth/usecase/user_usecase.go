package usecase

import (
	"context"
	"net/url"

	"tours_backend/internal/feature/auth/domain/entity"
	"tours_backend/internal/platform/query"
)

// userSchema declares the fields the user collection exposes to querying.
// Credential and reset fields are deliberately absent.
var userSchema = query.Schema{
	"name":      {Column: "name", Kind: query.String},
	"email":     {Column: "email", Kind: query.String},
	"role":      {Column: "role", Kind: query.String},
	"createdAt": {Column: "created_at", Kind: query.String},
}

const defaultUserListLimit = 100

// UserLister extends UserRepository with the admin listing read.
type UserLister interface {
	UserRepository

	// List returns active users matching the specification.
	List(ctx context.Context, spec *query.Spec) ([]entity.User, error)
}

// userUsecase implements profile management business logic.
type userUsecase struct {
	users UserLister
}

// NewUserUsecase creates a new userUsecase instance.
func NewUserUsecase(users UserLister) *userUsecase {
	return &userUsecase{users: users}
}

// List translates raw query parameters and returns matching users.
func (u *userUsecase) List(ctx context.Context, params url.Values) ([]entity.User, error) {
	spec, err := query.Parse(params, userSchema, query.Defaults{
		Sort:  "-createdAt",
		Limit: defaultUserListLimit,
	})
	if err != nil {
		return nil, err
	}
	return u.users.List(ctx, spec)
}

// UpdateMe changes the caller's name and/or email. Password changes are
// rejected here; they go through UpdatePassword so the freshness stamp and
// re-issued credential are never skipped.
func (u *userUsecase) UpdateMe(ctx context.Context, userID uint, name, email string) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = email
	}

	if err := u.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeactivateMe soft-deletes the caller's account. The row stays in place
// with Active=false and disappears from every read path.
func (u *userUsecase) DeactivateMe(ctx context.Context, userID uint) error {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	user.Active = false
	return u.users.Save(ctx, user)
}
