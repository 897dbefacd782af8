// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Role is a user's authorization role. Routes declare the exact set of
// roles they admit; there is no implicit hierarchy between roles.
type Role string

const (
	RoleUser      Role = "user"
	RoleGuide     Role = "guide"
	RoleLeadGuide Role = "lead-guide"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin:
		return true
	}
	return false
}

// OneOf reports whether r appears in the allowed set.
func (r Role) OneOf(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// User represents a registered user in the system.
// It contains authentication credentials and metadata for user management.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Name is the user's display name.
	Name string `gorm:"size:100;not null"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// This never stores plaintext and never appears in responses.
	Password string `gorm:"size:255;not null"`

	// Role determines which protected routes the user may call.
	Role Role `gorm:"size:16;not null;default:user"`

	// PhotoURL is an optional profile image reference.
	PhotoURL string `gorm:"size:512"`

	// PasswordChangedAt is stamped on every password change or reset.
	// Tokens issued before it are rejected even while otherwise valid.
	PasswordChangedAt *time.Time

	// PasswordResetToken is the SHA-256 hex of an outstanding reset secret.
	// It and PasswordResetExpires are always set and cleared together.
	PasswordResetToken   string `gorm:"size:64;index"`
	PasswordResetExpires *time.Time

	// Active is flipped to false on account deletion. Inactive users are
	// never returned by any read path; rows are not hard-deleted.
	Active bool `gorm:"not null;default:true"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

// ChangedPasswordAfter reports whether the password changed after issuedAt,
// which makes any credential issued at issuedAt stale.
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	return u.PasswordChangedAt != nil && u.PasswordChangedAt.After(issuedAt)
}

// HasResetToken reports whether an unexpired reset token is outstanding.
func (u *User) HasResetToken(now time.Time) bool {
	return u.PasswordResetToken != "" &&
		u.PasswordResetExpires != nil &&
		u.PasswordResetExpires.After(now)
}

// ClearResetToken removes the reset token hash and its expiry together.
func (u *User) ClearResetToken() {
	u.PasswordResetToken = ""
	u.PasswordResetExpires = nil
}
