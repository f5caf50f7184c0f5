package model

import "context"

// IdentityProvider is the remote authentication/account service consumed by
// the session manager and the credential validator. Implementations must
// return ErrInvalidCredentials for rejected sign-ins and ErrDuplicateEmail
// for sign-ups against a taken email.
type IdentityProvider interface {
	// Authenticate exchanges credentials for a session.
	Authenticate(ctx context.Context, email, password string) (Session, error)
	// CreateAccount registers a new account. A zero-value session means the
	// account was created but not signed in (e.g. email confirmation is
	// pending); callers must re-check the session manager state.
	CreateAccount(ctx context.Context, email, password string) (Session, error)
	// SignOut revokes the session server-side.
	SignOut(ctx context.Context, session Session) error
	// Refresh rotates the token pair before expiry.
	Refresh(ctx context.Context, session Session) (Session, error)
	// ResetPassword starts a password-reset flow for the email.
	ResetPassword(ctx context.Context, email string) error
	// AccountExists reports whether an account with the email is registered.
	AccountExists(ctx context.Context, email string) (bool, error)
	// UpdateUserMetadata applies a partial metadata update to the session's
	// user and returns the updated user.
	UpdateUserMetadata(ctx context.Context, session Session, meta UserMetadata) (User, error)
	// GetUser re-reads the session's user.
	GetUser(ctx context.Context, session Session) (User, error)
}
