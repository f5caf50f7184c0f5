package credential

import (
	"context"
	"sync/atomic"

	"github.com/placeguide/account-core/internal/logger"
	"github.com/placeguide/account-core/internal/model"
	"github.com/placeguide/account-core/internal/session"
)

// Validator owns input-level validation and orchestrates sign-up, sign-in
// and password-reset submissions. At most one operation is in flight per
// instance; concurrent submissions are rejected, never queued, to avoid
// duplicate account-creation races.
type Validator struct {
	identity model.IdentityProvider
	sessions *session.Manager
	logger   *logger.Logger

	inFlight atomic.Bool
}

func NewValidator(identity model.IdentityProvider, sessions *session.Manager, logger *logger.Logger) *Validator {
	return &Validator{
		identity: identity,
		sessions: sessions,
		logger:   logger,
	}
}

// Validate checks the form fields. It runs strictly before any network call;
// a rejection means nothing was sent.
func (v *Validator) Validate(form model.CredentialForm) error {
	if form.Email == "" {
		return &model.ValidationError{Field: model.FieldEmail, Reason: model.ReasonRequired}
	}
	if form.Password == "" {
		return &model.ValidationError{Field: model.FieldPassword, Reason: model.ReasonRequired}
	}
	return nil
}

// Submit validates the form and executes the flow its mode selects.
// Provider failures are attributed to the email field, matching the client
// this replaces (see model.AuthError).
func (v *Validator) Submit(ctx context.Context, form model.CredentialForm) error {
	if !v.inFlight.CompareAndSwap(false, true) {
		return model.ErrOperationInProgress
	}
	defer v.inFlight.Store(false)

	if err := v.Validate(form); err != nil {
		return err
	}

	switch form.Mode {
	case model.ModeSignUp:
		return v.signUp(ctx, form.Email, form.Password)
	default:
		return v.signIn(ctx, form.Email, form.Password)
	}
}

// RequestPasswordReset fires a single reset call. No retry, no queue.
func (v *Validator) RequestPasswordReset(ctx context.Context, email string) error {
	if !v.inFlight.CompareAndSwap(false, true) {
		return model.ErrOperationInProgress
	}
	defer v.inFlight.Store(false)

	if email == "" {
		return &model.ValidationError{Field: model.FieldEmail, Reason: model.ReasonRequired}
	}

	if err := v.identity.ResetPassword(ctx, email); err != nil {
		v.logger.Error("password reset request failed", "email", email, "error", err)
		return &model.AuthError{Field: model.FieldEmail, Message: err.Error()}
	}

	v.logger.Info("password reset requested", "email", email)
	return nil
}

func (v *Validator) signUp(ctx context.Context, email, password string) error {
	// Duplicate pre-check runs before the create call ever happens.
	exists, err := v.identity.AccountExists(ctx, email)
	if err != nil {
		v.logger.Error("duplicate-email pre-check failed", "email", email, "error", err)
		return &model.AuthError{Field: model.FieldEmail, Message: err.Error()}
	}
	if exists {
		return model.ErrDuplicateEmail
	}

	if err := v.sessions.SignUp(ctx, email, password); err != nil {
		v.logger.Info("sign-up rejected by provider", "email", email, "error", err)
		return &model.AuthError{Field: model.FieldEmail, Message: err.Error()}
	}

	v.logger.Info("sign-up succeeded", "email", email, "status", v.sessions.AuthStatus())
	return nil
}

func (v *Validator) signIn(ctx context.Context, email, password string) error {
	if err := v.sessions.SignIn(ctx, email, password); err != nil {
		v.logger.Info("sign-in rejected by provider", "email", email, "error", err)
		return &model.AuthError{Field: model.FieldEmail, Message: err.Error()}
	}

	v.logger.Info("sign-in succeeded", "email", email)
	return nil
}
