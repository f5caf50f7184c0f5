package model

import (
	"context"
	"time"
)

// AuthStatus enumerates the session manager states.
type AuthStatus string

const (
	StatusUnauthenticated AuthStatus = "unauthenticated"
	StatusAuthenticated   AuthStatus = "authenticated"
	StatusRefreshing      AuthStatus = "refreshing"
)

// Session is the authenticated token pair plus the user it belongs to.
// Only the session manager mutates it; everyone else receives value copies.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

// Valid reports whether the session carries a usable token pair.
func (s Session) Valid() bool {
	return s.AccessToken != "" && s.RefreshToken != ""
}

// SessionStore persists the session snapshot across cold starts.
type SessionStore interface {
	// Load returns the persisted session, or ErrNotFound when none exists.
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, session Session) error
	Clear(ctx context.Context) error
}

// AuthEvent is delivered to session-change subscribers on every transition.
// Err is ErrSessionExpired when a failed refresh forced the sign-out.
type AuthEvent struct {
	Status  AuthStatus
	Profile *UserProfile
	Err     error
}
