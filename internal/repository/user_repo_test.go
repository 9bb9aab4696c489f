package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-service/internal/domain"
)

var userCols = []string{
	"id", "name", "email", "password_hash", "is_account_verified",
	"verify_otp", "verify_otp_expire_at", "reset_otp", "reset_otp_expire_at",
	"created_at", "updated_at",
}

func userRow(id, name, email string) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(userCols).
		AddRow(id, name, email, "$2a$10$hash", false, "", int64(0), "", int64(0), now, now)
}

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "successful insert",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("u1", "Alice", "alice@x.com", "$2a$10$hash").
					WillReturnRows(userRow("u1", "Alice", "alice@x.com"))
			},
		},
		{
			name: "duplicate email maps to ErrUserExists",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("u1", "Alice", "alice@x.com", "$2a$10$hash").
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
			},
			wantErr: domain.ErrUserExists,
		},
		{
			name: "database error passes through",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("u1", "Alice", "alice@x.com", "$2a$10$hash").
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewUserRepository(mock)
			user := &domain.User{ID: "u1", Name: "Alice", Email: "alice@x.com", PasswordHash: "$2a$10$hash"}
			saved, err := repo.CreateUser(context.Background(), user)

			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, domain.ErrUserExists) {
					assert.ErrorIs(t, err, domain.ErrUserExists)
				} else {
					assert.Contains(t, err.Error(), tt.wantErr.Error())
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, "u1", saved.ID)
				assert.Equal(t, "alice@x.com", saved.Email)
				assert.False(t, saved.IsAccountVerified)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetUserByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT(.|\s)+FROM users`).
		WithArgs("alice@x.com").
		WillReturnRows(userRow("u1", "Alice", "alice@x.com"))

	repo := NewUserRepository(mock)
	user, err := repo.GetUserByEmail(context.Background(), "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmailNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT(.|\s)+FROM users`).
		WithArgs("ghost@x.com").
		WillReturnError(pgx.ErrNoRows)

	repo := NewUserRepository(mock)
	_, err = repo.GetUserByEmail(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT(.|\s)+FROM users`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	repo := NewUserRepository(mock)
	_, err = repo.GetUserByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetVerifyOTP(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE users\s+SET verify_otp`).
		WithArgs("u1", "123456", int64(1234)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewUserRepository(mock)
	require.NoError(t, repo.SetVerifyOTP(context.Background(), "u1", "123456", 1234))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetVerifyOTPUnknownUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE users\s+SET verify_otp`).
		WithArgs("ghost", "123456", int64(1234)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewUserRepository(mock)
	err = repo.SetVerifyOTP(context.Background(), "ghost", "123456", 1234)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeVerifyOTP(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{"matching code consumes", 1, true},
		{"changed or cleared code loses", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			mock.ExpectExec(`UPDATE users\s+SET is_account_verified`).
				WithArgs("u1", "123456").
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.affected))

			repo := NewUserRepository(mock)
			ok, err := repo.ConsumeVerifyOTP(context.Background(), "u1", "123456")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestConsumeResetOTP(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{"matching code swaps password", 1, true},
		{"stale code loses", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			mock.ExpectExec(`UPDATE users\s+SET password_hash`).
				WithArgs("u1", "654321", "$2a$10$newhash").
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.affected))

			repo := NewUserRepository(mock)
			ok, err := repo.ConsumeResetOTP(context.Background(), "u1", "654321", "$2a$10$newhash")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
