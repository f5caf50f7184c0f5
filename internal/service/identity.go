package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/placeguide/account-core/internal/logger"
	"github.com/placeguide/account-core/internal/model"
)

// PasswordResetTTL is a TTL for password reset tokens.
const PasswordResetTTL = time.Hour

// IdentityOptions tunes provider behaviour.
type IdentityOptions struct {
	// RequireEmailConfirmation makes CreateAccount return a zero session so
	// the account is not implicitly signed in.
	RequireEmailConfirmation bool
	// BcryptCost is the password hashing cost; 0 means bcrypt.DefaultCost.
	BcryptCost int
}

// Identity is a self-hosted identity provider backed by a user store and a
// rotating JWT token pair.
type Identity struct {
	users               model.UserStore
	resets              model.ResetTokenStore
	tokens              *Tokens
	manager             model.TokenManager
	logger              *logger.Logger
	requireConfirmation bool
	bcryptCost          int
}

var _ model.IdentityProvider = (*Identity)(nil)

func NewIdentity(
	users model.UserStore,
	resets model.ResetTokenStore,
	refreshTokens model.RefreshTokenStore,
	manager model.TokenManager,
	logger *logger.Logger,
	opts IdentityOptions,
) *Identity {
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Identity{
		users:               users,
		resets:              resets,
		tokens:              NewTokens(manager, refreshTokens, logger),
		manager:             manager,
		logger:              logger,
		requireConfirmation: opts.RequireEmailConfirmation,
		bcryptCost:          cost,
	}
}

func (s *Identity) Authenticate(ctx context.Context, email, password string) (model.Session, error) {
	s.logger.Debug("Identity service: authenticating user",
		"email", email)

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.Session{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		s.logger.Info("Identity service: password mismatch",
			"email", email)
		return model.Session{}, model.ErrInvalidCredentials
	}

	session, err := s.issueSession(ctx, user)
	if err != nil {
		return model.Session{}, err
	}

	s.logger.Info("Identity service: user authenticated",
		"email", email,
		"user_id", user.ID)

	return session, nil
}

func (s *Identity) CreateAccount(ctx context.Context, email, password string) (model.Session, error) {
	s.logger.Debug("Identity service: creating account",
		"email", email)

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if existing.ID != uuid.Nil {
		s.logger.Info("Identity service: email already registered",
			"email", email)
		return model.Session{}, model.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	user, err = s.users.Create(ctx, user)
	if err != nil {
		s.logger.Error("Identity service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("Identity service: account created",
		"email", email,
		"user_id", user.ID)

	if s.requireConfirmation {
		// Account exists but is not signed in until confirmed.
		return model.Session{}, nil
	}

	return s.issueSession(ctx, user)
}

func (s *Identity) SignOut(ctx context.Context, session model.Session) error {
	if err := s.tokens.RevokeByToken(ctx, session.RefreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func (s *Identity) Refresh(ctx context.Context, session model.Session) (model.Session, error) {
	userID, access, refresh, err := s.tokens.Refresh(ctx, session.RefreshToken)
	if err != nil {
		return model.Session{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return model.Session{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(s.manager.AccessTTL()),
		User:         user,
	}, nil
}

func (s *Identity) ResetPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		// Do not leak which emails are registered.
		s.logger.Info("Identity service: reset requested for unknown email",
			"email", email)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	reset := model.PasswordReset{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(PasswordResetTTL),
	}

	if err := s.resets.Create(ctx, reset); err != nil {
		return fmt.Errorf("failed to create password reset token: %w", err)
	}

	// Delivery is a deployment concern; the token is logged for dev setups.
	s.logger.Info("Identity service: password reset token issued",
		"email", email,
		"token", reset.Token)

	return nil
}

// CompletePasswordReset consumes a reset token and replaces the user's
// password. All refresh tokens issued before the reset stay valid until they
// expire or rotate.
func (s *Identity) CompletePasswordReset(ctx context.Context, token, newPassword string) error {
	reset, err := s.resets.GetByToken(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to get password reset token: %w", err)
	}

	if reset.Consumed || time.Now().After(reset.ExpiresAt) {
		return model.ErrTokenExpired
	}

	if err := s.resets.Consume(ctx, token); err != nil {
		return fmt.Errorf("failed to consume password reset token: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, reset.UserID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("Identity service: password reset completed",
		"user_id", reset.UserID)

	return nil
}

func (s *Identity) AccountExists(ctx context.Context, email string) (bool, error) {
	_, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get user by email: %w", err)
	}
	return true, nil
}

func (s *Identity) UpdateUserMetadata(ctx context.Context, session model.Session, meta model.UserMetadata) (model.User, error) {
	userID, err := s.manager.ParseAccessToken(session.AccessToken)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to parse access token: %w", err)
	}

	user, err := s.users.UpdateMetadata(ctx, userID, meta)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user metadata: %w", err)
	}

	s.logger.Info("Identity service: user metadata updated",
		"user_id", userID)

	return user, nil
}

func (s *Identity) GetUser(ctx context.Context, session model.Session) (model.User, error) {
	userID, err := s.manager.ParseAccessToken(session.AccessToken)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to parse access token: %w", err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (s *Identity) issueSession(ctx context.Context, user model.User) (model.Session, error) {
	access, refresh, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to issue token pair: %w", err)
	}

	return model.Session{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(s.manager.AccessTTL()),
		User:         user,
	}, nil
}
