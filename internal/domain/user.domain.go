package domain

import (
	"errors"
	"time"
)

// Sentinel errors surfaced by the repository and usecase layers. Handlers map
// these to user-facing messages.
var (
	ErrUserExists      = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrAlreadyVerified = errors.New("account already verified")
	ErrOTPMismatch     = errors.New("otp mismatch")
	ErrOTPExpired      = errors.New("otp expired")
)

// User is the sole persistent entity. OTP codes and their expiries (epoch
// milliseconds) live on the user row and are always set and cleared together.
type User struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	IsAccountVerified bool      `json:"is_account_verified"`
	VerifyOTP         string    `json:"-"`
	VerifyOTPExpireAt int64     `json:"-"`
	ResetOTP          string    `json:"-"`
	ResetOTPExpireAt  int64     `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
