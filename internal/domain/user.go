package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserID is a value object for user identity.
type UserID struct{ uuid.UUID }

// NewUserID creates a new UserID from uuid.
func NewUserID(id uuid.UUID) UserID { return UserID{UUID: id} }

// String returns the canonical string form.
func (u UserID) String() string { return u.UUID.String() }

// User is a registered account. Email is the login key and unique across all
// users; Phone and Location are optional profile fields.
type User struct {
	ID           UserID
	Username     string
	Email        string
	PasswordHash string
	Phone        string
	Location     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicProfile is the projection of a User safe to return to clients.
// It never carries the password hash.
type PublicProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

// Public returns the client-facing projection of the user.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
		Phone:    u.Phone,
		Location: u.Location,
	}
}
