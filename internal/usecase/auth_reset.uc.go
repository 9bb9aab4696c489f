package usecase

import (
	"context"
	"fmt"
	"time"

	"auth-service/internal/domain"
	"auth-service/pkg/hashutil"
	"auth-service/pkg/otp"
)

// SendResetOTP issues a password-reset code for the account behind the email.
// No session is required: the caller is locked out by definition.
func (uc *AuthUsecase) SendResetOTP(ctx context.Context, email string) error {
	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, expireAt, err := otp.Generate(uc.otpTTL)
	if err != nil {
		return err
	}
	if err := uc.userRepo.SetResetOTP(ctx, user.ID, code, expireAt); err != nil {
		return err
	}

	if err := uc.mailer.SendOTP(ctx, user.ID, user.Email, PurposePasswordReset, code); err != nil {
		return fmt.Errorf("send reset otp: %w", err)
	}
	return nil
}

// ResetPassword consumes a pending reset code and swaps in the new password
// hash in a single conditional store update, so each code works exactly once.
func (uc *AuthUsecase) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.ResetOTP == "" || user.ResetOTP != code {
		return domain.ErrOTPMismatch
	}
	if otp.Expired(user.ResetOTPExpireAt, time.Now()) {
		return domain.ErrOTPExpired
	}

	hash, err := hashutil.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	ok, err := uc.userRepo.ConsumeResetOTP(ctx, user.ID, code, hash)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrOTPMismatch
	}
	return nil
}

// GetUserByID exposes store lookup for callers that already hold a session.
func (uc *AuthUsecase) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return uc.userRepo.GetUserByID(ctx, id)
}
