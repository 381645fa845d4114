package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"dealership/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserRepoMock(t *testing.T) (pgxmock.PgxPoolIface, UserRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewUserRepository(mock)
}

func TestUserRepository_Create(t *testing.T) {
	mock, repo := newUserRepoMock(t)
	now := time.Now()

	user := &model.User{
		Fullname:     "John Doe",
		Username:     "johndoe",
		Email:        "john@example.com",
		PasswordHash: "$2a$12$hash",
		CreatedAt:    now,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("John Doe", "johndoe", "john@example.com", "$2a$12$hash", false, now).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))

	err := repo.Create(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByLogin(t *testing.T) {
	mock, repo := newUserRepoMock(t)
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "fullname", "username", "email", "password_hash", "is_admin", "created_at"}).
		AddRow(int64(1), "John Doe", "johndoe", "john@example.com", "$2a$12$hash", false, now)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE username = $1 OR email = $1")).
		WithArgs("johndoe").
		WillReturnRows(rows)

	user, err := repo.FindByLogin(context.Background(), "johndoe")
	require.NoError(t, err)
	assert.Equal(t, "johndoe", user.Username)
	assert.Equal(t, "$2a$12$hash", user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByLogin_NotFound(t *testing.T) {
	mock, repo := newUserRepoMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE username = $1 OR email = $1")).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByLogin(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindAll_ExcludesPasswordHash(t *testing.T) {
	mock, repo := newUserRepoMock(t)
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "fullname", "username", "email", "is_admin", "created_at"}).
		AddRow(int64(1), "John Doe", "johndoe", "john@example.com", false, now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, fullname, username, email, is_admin, created_at FROM users")).
		WillReturnRows(rows)

	users, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Empty(t, users[0].PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Delete_NotFound(t *testing.T) {
	mock, repo := newUserRepoMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
