package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/placeguide/account-core/internal/model"
)

var _ model.ResetTokenStore = (*PasswordResetRepository)(nil)

type PasswordResetRepository struct {
	db *Connection
}

func NewPasswordResetRepository(db *Connection) *PasswordResetRepository {
	return &PasswordResetRepository{
		db: db,
	}
}

func (r *PasswordResetRepository) Create(ctx context.Context, reset model.PasswordReset) error {
	query := `INSERT INTO password_reset_tokens (token, user_id, expires_at, consumed)
			  VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query,
		reset.Token, reset.UserID, reset.ExpiresAt, reset.Consumed,
	)
	if err != nil {
		return fmt.Errorf("failed to create password reset token: %w", err)
	}

	return nil
}

func (r *PasswordResetRepository) GetByToken(ctx context.Context, token string) (model.PasswordReset, error) {
	var reset model.PasswordReset
	query := `SELECT token, user_id, expires_at, consumed, created_at
			  FROM password_reset_tokens WHERE token = $1`

	err := r.db.QueryRow(ctx, query, token).Scan(
		&reset.Token, &reset.UserID, &reset.ExpiresAt, &reset.Consumed, &reset.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PasswordReset{}, model.ErrNotFound
		}
		return model.PasswordReset{}, fmt.Errorf("failed to get password reset token: %w", err)
	}

	return reset, nil
}

func (r *PasswordResetRepository) Consume(ctx context.Context, token string) error {
	query := `UPDATE password_reset_tokens SET consumed = TRUE
			  WHERE token = $1 AND consumed = FALSE`

	tag, err := r.db.Exec(ctx, query, token)
	if err != nil {
		return fmt.Errorf("failed to consume password reset token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
