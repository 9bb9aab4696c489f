package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"auth-service/internal/domain"
	"auth-service/internal/repository"
	"auth-service/pkg/hashutil"

	"github.com/google/uuid"
)

// Mailer is the notification side-channel. Failures are the caller's to
// interpret; nothing here retries.
type Mailer interface {
	SendOTP(ctx context.Context, userID, to, purpose, code string) error
	SendWelcome(ctx context.Context, userID, to, name string) error
}

const (
	PurposeAccountVerification = "account_verification"
	PurposePasswordReset       = "password_reset"
)

type AuthUsecase struct {
	userRepo repository.UserRepository
	mailer   Mailer
	otpTTL   time.Duration
}

func NewAuthUsecase(userRepo repository.UserRepository, mailer Mailer, otpTTL time.Duration) *AuthUsecase {
	return &AuthUsecase{
		userRepo: userRepo,
		mailer:   mailer,
		otpTTL:   otpTTL,
	}
}

// Register hashes the password, creates the user unverified, and fires a
// best-effort welcome email. A duplicate email yields domain.ErrUserExists.
func (uc *AuthUsecase) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	hash, err := hashutil.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	saved, err := uc.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	// Welcome mail must never fail the registration.
	go func() {
		mailCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := uc.mailer.SendWelcome(mailCtx, saved.ID, saved.Email, saved.Name); err != nil {
			log.Printf("welcome email for user %s failed: %v", saved.ID, err)
		}
	}()

	return saved, nil
}

// Login verifies credentials. Unknown email and wrong password are reported
// as different errors on purpose; see the handler for the messages.
func (uc *AuthUsecase) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !hashutil.CheckPasswordHash(password, user.PasswordHash) {
		return nil, domain.ErrInvalidPassword
	}
	return user, nil
}
