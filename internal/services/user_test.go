package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dimitrije/sweetshop-api/internal/database"
	"github.com/dimitrije/sweetshop-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var userColumns = []string{"id", "email", "password_hash", "created_at", "updated_at"}

func setupUserService(t *testing.T) (*UserService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	svc := NewUserService(&database.DB{Pool: mock})
	svc.hashCost = bcrypt.MinCost
	return svc, mock
}

func TestUserService_SignUp(t *testing.T) {
	svc, mock := setupUserService(t)
	userID := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("buyer@sweets.test", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow(userID, "buyer@sweets.test", "hash", now, now))
	mock.ExpectExec(`INSERT INTO user_profiles`).
		WithArgs(userID, models.RoleUser).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	user, err := svc.SignUp(context.Background(), "  Buyer@Sweets.test", "secret1")

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "buyer@sweets.test", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_SignUp_ShortPasswordNeverReachesStore(t *testing.T) {
	svc, mock := setupUserService(t)

	_, err := svc.SignUp(context.Background(), "buyer@sweets.test", "12345")

	assert.ErrorIs(t, err, ErrPasswordTooShort)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_SignUp_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"empty email", "", "secret1", ErrInvalidEmail},
		{"no at sign", "buyer.sweets.test", "secret1", ErrInvalidEmail},
		{"display name", "Buyer <buyer@sweets.test>", "secret1", ErrInvalidEmail},
		{"empty password", "buyer@sweets.test", "", ErrPasswordTooShort},
		{"long password", "buyer@sweets.test", strings.Repeat("x", 73), ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mock := setupUserService(t)

			_, err := svc.SignUp(context.Background(), tt.email, tt.password)

			assert.ErrorIs(t, err, tt.want)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserService_SignUp_EmailTaken(t *testing.T) {
	svc, mock := setupUserService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("buyer@sweets.test", pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, err := svc.SignUp(context.Background(), "buyer@sweets.test", "secret1")

	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_SignIn(t *testing.T) {
	svc, mock := setupUserService(t)
	userID := uuid.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs("buyer@sweets.test").
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow(userID, "buyer@sweets.test", string(hash), time.Now(), time.Now()))

	user, err := svc.SignIn(context.Background(), "BUYER@sweets.test", "secret1")

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_SignIn_WrongPassword(t *testing.T) {
	svc, mock := setupUserService(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs("buyer@sweets.test").
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow(uuid.New(), "buyer@sweets.test", string(hash), time.Now(), time.Now()))

	_, err = svc.SignIn(context.Background(), "buyer@sweets.test", "secret2")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_SignIn_UnknownEmail(t *testing.T) {
	svc, mock := setupUserService(t)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs("ghost@sweets.test").
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.SignIn(context.Background(), "ghost@sweets.test", "secret1")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	svc, mock := setupUserService(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE id`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
