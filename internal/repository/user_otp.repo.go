package repository

import (
	"context"
	"fmt"

	"auth-service/internal/domain"
)

// SetVerifyOTP stores a pending verification code and its expiry together.
func (r *PostgresUserRepository) SetVerifyOTP(ctx context.Context, userID, code string, expireAt int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET verify_otp = $2, verify_otp_expire_at = $3, updated_at = now()
		WHERE id = $1`,
		userID, code, expireAt,
	)
	if err != nil {
		return fmt.Errorf("set verify otp: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ConsumeVerifyOTP marks the account verified and clears the code in one
// conditional update. The update only matches while the stored code still
// equals the presented one, so two racing consumers cannot both win.
func (r *PostgresUserRepository) ConsumeVerifyOTP(ctx context.Context, userID, code string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET is_account_verified = true, verify_otp = '', verify_otp_expire_at = 0, updated_at = now()
		WHERE id = $1 AND verify_otp = $2 AND verify_otp <> ''`,
		userID, code,
	)
	if err != nil {
		return false, fmt.Errorf("consume verify otp: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// SetResetOTP stores a pending password-reset code and its expiry together.
func (r *PostgresUserRepository) SetResetOTP(ctx context.Context, userID, code string, expireAt int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET reset_otp = $2, reset_otp_expire_at = $3, updated_at = now()
		WHERE id = $1`,
		userID, code, expireAt,
	)
	if err != nil {
		return fmt.Errorf("set reset otp: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ConsumeResetOTP swaps in the new password hash and clears the reset code in
// one conditional update, so each issued code is consumable at most once.
func (r *PostgresUserRepository) ConsumeResetOTP(ctx context.Context, userID, code, newPasswordHash string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET password_hash = $3, reset_otp = '', reset_otp_expire_at = 0, updated_at = now()
		WHERE id = $1 AND reset_otp = $2 AND reset_otp <> ''`,
		userID, code, newPasswordHash,
	)
	if err != nil {
		return false, fmt.Errorf("consume reset otp: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
