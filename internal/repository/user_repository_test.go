package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksonn455/user-service/internal/apperrors"
	"github.com/jacksonn455/user-service/internal/models"
)

func newMockRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepository(db), mock
}

func testUser() *models.User {
	now := time.Now().UTC()
	return &models.User{
		ID:           "5f0c1a2b-0000-4000-8000-000000000001",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Name:         "Alice",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func userColumns() []string {
	return []string{"id", "email", "password_hash", "name", "is_active", "created_at", "updated_at"}
}

func TestCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	user := testUser()

	mock.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, user.Email, user.PasswordHash, user.Name, user.IsActive, user.CreatedAt, user.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), user)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDuplicateEmail(t *testing.T) {
	repo, mock := newMockRepo(t)
	user := testUser()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), user)
	assert.ErrorIs(t, err, apperrors.ErrEmailExists)
}

func TestGetByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)
	want := testUser()

	rows := sqlmock.NewRows(userColumns()).
		AddRow(want.ID, want.Email, want.PasswordHash, want.Name, want.IsActive, want.CreatedAt, want.UpdatedAt)
	mock.ExpectQuery("SELECT (.+) FROM users\\s+WHERE email").
		WithArgs(want.Email).
		WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), want.Email)
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.PasswordHash, got.PasswordHash)
}

func TestGetByEmailNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users\\s+WHERE email").
		WithArgs("missing@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users\\s+WHERE id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListAllOrdersByCreatedAtDesc(t *testing.T) {
	repo, mock := newMockRepo(t)

	older := testUser()
	newer := testUser()
	newer.ID = "5f0c1a2b-0000-4000-8000-000000000002"
	newer.Email = "bob@example.com"
	newer.CreatedAt = older.CreatedAt.Add(time.Hour)

	rows := sqlmock.NewRows(userColumns()).
		AddRow(newer.ID, newer.Email, newer.PasswordHash, newer.Name, newer.IsActive, newer.CreatedAt, newer.UpdatedAt).
		AddRow(older.ID, older.Email, older.PasswordHash, older.Name, older.IsActive, older.CreatedAt, older.UpdatedAt)
	mock.ExpectQuery("SELECT (.+) FROM users\\s+ORDER BY created_at DESC").
		WillReturnRows(rows)

	users, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, newer.ID, users[0].ID)
	assert.Equal(t, older.ID, users[1].ID)
}
