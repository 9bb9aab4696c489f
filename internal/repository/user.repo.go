package repository

import (
	"context"
	"errors"
	"fmt"

	"auth-service/internal/domain"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the slice of pgxpool.Pool the repositories need. pgxmock satisfies it
// in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository is the credential store contract: lookup by primary key or
// unique email, plus field-level updates for the OTP lifecycle.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)

	SetVerifyOTP(ctx context.Context, userID, code string, expireAt int64) error
	ConsumeVerifyOTP(ctx context.Context, userID, code string) (bool, error)
	SetResetOTP(ctx context.Context, userID, code string, expireAt int64) error
	ConsumeResetOTP(ctx context.Context, userID, code, newPasswordHash string) (bool, error)
}

type PostgresUserRepository struct {
	db DB
}

func NewUserRepository(db DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, is_account_verified,
		verify_otp, verify_otp_expire_at, reset_otp, reset_otp_expire_at,
		created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	u := new(domain.User)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAccountVerified,
		&u.VerifyOTP, &u.VerifyOTPExpireAt, &u.ResetOTP, &u.ResetOTPExpireAt,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		user.ID, user.Name, user.Email, user.PasswordHash,
	)

	saved, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return saved, nil
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1`,
		email,
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1`,
		id,
	)
	return scanUser(row)
}
