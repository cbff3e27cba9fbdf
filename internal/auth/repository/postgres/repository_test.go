package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Shaurya8425/Blogs/internal/auth/domain"
	repo "github.com/Shaurya8425/Blogs/internal/auth/repository/postgres"
	autherror "github.com/Shaurya8425/Blogs/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "email", "password_hash", "name", "created_at", "updated_at"}

func TestGetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()
	userEmail := "test@example.com"

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, email").
			WithArgs(userEmail).
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow("user-123", userEmail, "hash", nil, time.Now(), time.Now()))

		user, err := r.GetByEmail(ctx, userEmail)
		require.NoError(t, err)
		assert.Equal(t, "user-123", user.ID)
		assert.Nil(t, user.Name)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, email").
			WithArgs(userEmail).
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByEmail(ctx, userEmail)
		require.NoError(t, err) // nil user, nil error
		assert.Nil(t, user)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, email").
			WithArgs(userEmail).
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.GetByEmail(ctx, userEmail)
		assert.Error(t, err)
	})
}

func TestGetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		name := "Alice"
		mock.ExpectQuery("SELECT id, email").
			WithArgs("user-123").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow("user-123", "a@example.com", "hash", &name, time.Now(), time.Now()))

		user, err := r.GetByID(ctx, "user-123")
		require.NoError(t, err)
		assert.Equal(t, "a@example.com", user.Email)
		assert.Equal(t, "Alice", *user.Name)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, email").
			WithArgs("missing").
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByID(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()

	user := &domain.User{
		ID:           "user-123",
		Email:        "new@example.com",
		PasswordHash: "new-hash",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.Email, user.PasswordHash, user.Name, user.CreatedAt, user.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		assert.NoError(t, r.Create(ctx, user))
	})

	t.Run("duplicate email maps to sentinel", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.Email, user.PasswordHash, user.Name, user.CreatedAt, user.UpdatedAt).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		assert.ErrorIs(t, r.Create(ctx, user), autherror.ErrEmailAlreadyInUse)
	})
}

func TestUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()

	name := "Renamed"
	user := &domain.User{ID: "user-123", Name: &name, PasswordHash: "hash", UpdatedAt: time.Now()}

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs(user.ID, user.Name, user.PasswordHash, user.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, r.Update(ctx, user))
	})

	t.Run("missing row maps to sentinel", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs(user.ID, user.Name, user.PasswordHash, user.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		assert.ErrorIs(t, r.Update(ctx, user), autherror.ErrUserNotFound)
	})
}
