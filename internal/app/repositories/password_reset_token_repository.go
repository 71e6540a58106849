package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/campusclubs/internal/db"
	"github.com/yigit/campusclubs/internal/pkg/apperrors"
)

// PasswordResetTokenRepository manages password reset tokens in the database
type PasswordResetTokenRepository struct {
	db db.DBTX
}

// NewPasswordResetTokenRepository creates a new PasswordResetTokenRepository
func NewPasswordResetTokenRepository(pool db.DBTX) *PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{
		db: pool,
	}
}

// CreateToken stores a new password reset token in the database
func (r *PasswordResetTokenRepository) CreateToken(ctx context.Context, userID int64, token string, expiryDate time.Time) error {
	query := `
		INSERT INTO password_reset_tokens (user_id, token, expiry_date)
		VALUES ($1, $2, $3)
	`

	if _, err := r.db.Exec(ctx, query, userID, token, expiryDate); err != nil {
		return fmt.Errorf("error creating password reset token: %w", err)
	}
	return nil
}

// ResetPassword consumes token and replaces the owner's password hash in one
// transaction. Unknown, used and expired tokens are rejected alike.
func (r *PasswordResetTokenRepository) ResetPassword(ctx context.Context, token, passwordHash string, now time.Time) error {
	return db.RunInTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var userID int64
		var expiryDate time.Time
		var used bool

		err := tx.QueryRow(ctx, `
			SELECT user_id, expiry_date, used
			FROM password_reset_tokens
			WHERE token = $1
			FOR UPDATE`, token).Scan(&userID, &expiryDate, &used)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrInvalidPasswordResetToken
			}
			return fmt.Errorf("error retrieving password reset token: %w", err)
		}
		if used || !now.Before(expiryDate) {
			return apperrors.ErrInvalidPasswordResetToken
		}

		tag, err := tx.Exec(ctx, `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`, passwordHash, userID)
		if err != nil {
			return fmt.Errorf("error updating password: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrInvalidPasswordResetToken
		}

		if _, err := tx.Exec(ctx, `UPDATE password_reset_tokens SET used = TRUE, updated_at = NOW() WHERE token = $1`, token); err != nil {
			return fmt.Errorf("error marking token as used: %w", err)
		}
		return nil
	})
}

// DeleteExpiredTokens removes tokens that expired before now
func (r *PasswordResetTokenRepository) DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM password_reset_tokens WHERE expiry_date < $1 OR used = TRUE`, now)
	if err != nil {
		return 0, fmt.Errorf("error deleting expired password reset tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
