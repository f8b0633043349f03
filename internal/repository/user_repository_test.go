package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learn-sphere/analytics-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestUserRepositoryFindByEmail(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "role", "password_hash", "created_at"}).
		AddRow("jane@example.com", "Jane Doe", "jane@example.com", "student", "hash", now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, role, password_hash, created_at FROM users WHERE LOWER(email) = $1")).
		WithArgs("jane@example.com").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "Jane@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.ID)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT id, name, email, role, password_hash, created_at FROM users WHERE id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, sql.ErrNoRows), "not-found must surface sql.ErrNoRows")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("jane@example.com", "Jane Doe", "jane@example.com", models.RoleStudent, "hash", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), &models.User{
		ID:           "jane@example.com",
		Name:         "Jane Doe",
		Email:        "jane@example.com",
		Role:         models.RoleStudent,
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "role", "password_hash", "created_at"}).
		AddRow("a@example.com", "A", "a@example.com", "student", "h", now).
		AddRow("root", "Root", "root@example.com", "admin", "h", now)
	mock.ExpectQuery("SELECT id, name, email, role, password_hash, created_at FROM users ORDER BY id").
		WillReturnRows(rows)

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, models.RoleAdmin, users[1].Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}
