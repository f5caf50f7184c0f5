package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultUsername is projected when a user never set a username.
const DefaultUsername = "Guest"

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	UpdateMetadata(ctx context.Context, id uuid.UUID, meta UserMetadata) (User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash []byte) error
}

// User represents a stored account.
type User struct {
	ID              uuid.UUID  `json:"id"`
	Email           string     `json:"email"`
	PasswordHash    []byte     `json:"-"`
	Username        string     `json:"username,omitempty"`
	ProfileImageURL string     `json:"profile_image_url,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       *time.Time `json:"-"`
}

// Profile projects the read-only view presentation code consumes.
func (u User) Profile() UserProfile {
	username := u.Username
	if username == "" {
		username = DefaultUsername
	}
	return UserProfile{
		Username:        username,
		Email:           u.Email,
		ProfileImageURL: u.ProfileImageURL,
	}
}

// UserProfile is a derived snapshot of the authenticated user. It is never
// written directly; mutations go through the identity provider.
type UserProfile struct {
	Username        string
	Email           string
	ProfileImageURL string
}

// UserMetadata carries a partial metadata update. Nil fields are left
// untouched.
type UserMetadata struct {
	Username        *string
	ProfileImageURL *string
}
