package usecase

import (
	"context"
	"fmt"
	"time"

	"auth-service/internal/domain"
	"auth-service/pkg/otp"
)

// SendVerifyOTP issues a fresh verification code for an unverified account
// and mails it. The code is persisted before the send, so a delivery failure
// leaves a valid pending code behind.
func (uc *AuthUsecase) SendVerifyOTP(ctx context.Context, userID string) error {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsAccountVerified {
		return domain.ErrAlreadyVerified
	}

	code, expireAt, err := otp.Generate(uc.otpTTL)
	if err != nil {
		return err
	}
	if err := uc.userRepo.SetVerifyOTP(ctx, user.ID, code, expireAt); err != nil {
		return err
	}

	if err := uc.mailer.SendOTP(ctx, user.ID, user.Email, PurposeAccountVerification, code); err != nil {
		return fmt.Errorf("send verification otp: %w", err)
	}
	return nil
}

// VerifyEmail consumes a pending verification code. The mismatch check runs
// before the expiry check, so a repeat attempt with an already-consumed code
// reports mismatch rather than expiry. The final consume is conditional on
// the stored code, so concurrent attempts cannot both succeed.
func (uc *AuthUsecase) VerifyEmail(ctx context.Context, userID, code string) error {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsAccountVerified {
		return domain.ErrAlreadyVerified
	}
	if user.VerifyOTP == "" || user.VerifyOTP != code {
		return domain.ErrOTPMismatch
	}
	if otp.Expired(user.VerifyOTPExpireAt, time.Now()) {
		return domain.ErrOTPExpired
	}

	ok, err := uc.userRepo.ConsumeVerifyOTP(ctx, user.ID, code)
	if err != nil {
		return err
	}
	if !ok {
		// lost a race: the stored code changed between read and consume
		return domain.ErrOTPMismatch
	}
	return nil
}
