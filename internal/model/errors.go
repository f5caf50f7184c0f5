package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by stores when a row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail rejects a sign-up for an already registered email.
	ErrDuplicateEmail = errors.New("email is already in use")

	// ErrInvalidCredentials rejects an authenticate call with a wrong
	// email/password pair.
	ErrInvalidCredentials = errors.New("invalid login credentials")

	// ErrSessionExpired signals that a session refresh failed and the user
	// must authenticate again. It is the only error that forces a state
	// transition.
	ErrSessionExpired = errors.New("session expired")

	// ErrNotAuthenticated rejects an operation that requires a live session.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrOperationInProgress rejects a submission while another operation of
	// the same kind is still in flight.
	ErrOperationInProgress = errors.New("operation already in progress")

	// ErrPermissionDenied terminates the image pipeline when media-library
	// access is refused.
	ErrPermissionDenied = errors.New("media library permission denied")

	// ErrSelectionCancelled is returned by image pickers when the user backs
	// out of selection. It is not surfaced to callers.
	ErrSelectionCancelled = errors.New("image selection cancelled")

	// ErrUnsupportedImage rejects a picked file that is not an image.
	ErrUnsupportedImage = errors.New("selected file is not an image")
)

var (
	ErrTokenRevoked  = errors.New("refresh token revoked")
	ErrTokenExpired  = errors.New("refresh token expired")
	ErrTokenMismatch = errors.New("refresh token mismatch")
)

// Credential form fields for field-attributed errors.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
)

// ReasonRequired marks an empty mandatory field.
const ReasonRequired = "required"

// ValidationError is a local, field-attributed input error. It is resolved
// before any network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is %s", e.Field, e.Reason)
}

// AuthError is a provider-rejected credential operation. Field names the form
// slot the message is surfaced under; sign-up and sign-in failures are both
// attributed to the email slot, matching the client this replaces. Callers
// that prefer a generic slot can widen Field before display.
type AuthError struct {
	Field   string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// UploadError terminates the image pipeline at the upload or URL-resolution
// step. The profile is unchanged when it is returned.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("image upload failed: %v", e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// MetadataCommitError terminates the image pipeline after a successful upload
// whose URL could not be committed to the user's metadata. The uploaded
// object stays orphaned in storage; the profile is unchanged.
type MetadataCommitError struct {
	Err error
}

func (e *MetadataCommitError) Error() string {
	return fmt.Sprintf("profile image commit failed: %v", e.Err)
}

func (e *MetadataCommitError) Unwrap() error {
	return e.Err
}
