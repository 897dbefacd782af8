package dto

import (
	"time"

	"tours_backend/internal/feature/auth/domain/entity"
)

// UserRes is the public projection of a user. Credential hash and reset
// token fields never leave the server.
type UserRes struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	PhotoURL  string    `json:"photoUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserRes maps a user entity to its public projection.
func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		PhotoURL:  u.PhotoURL,
		CreatedAt: u.CreatedAt,
	}
}

// NewUserResList maps a slice of user entities.
func NewUserResList(users []entity.User) []UserRes {
	out := make([]UserRes, 0, len(users))
	for i := range users {
		out = append(out, NewUserRes(&users[i]))
	}
	return out
}

// TokenRes is the response for endpoints that issue a credential.
type TokenRes struct {
	Token string   `json:"token"`
	User  *UserRes `json:"user,omitempty"`
}
