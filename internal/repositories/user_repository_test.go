package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfdesk/internal/models"
)

func newUserRepoWithMock(t *testing.T) (UserRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewUserRepository(db), mock, db
}

var userRowColumns = []string{
	"id", "first_name", "last_name", "email", "password_hash", "user_role",
	"is_verify", "otp", "otp_expires_at", "created_at",
}

func TestUserRepository_Create_AssignsIDAndTimestamp(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^\s*INSERT\s+INTO\s+users`).
		WithArgs(sqlmock.AnyArg(), "Ann", "Lee", "ann@x.com", "hash", "user", false,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u := &models.User{FirstName: "Ann", LastName: "Lee", Email: "ann@x.com", PasswordHash: "hash", UserRole: "user"}
	require.NoError(t, repo.Create(context.Background(), u))

	_, err := uuid.Parse(u.ID)
	assert.NoError(t, err)
	assert.False(t, u.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^\s*INSERT\s+INTO\s+users`).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &models.User{Email: "dup@x.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserRepository_Create_DBError(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^\s*INSERT\s+INTO\s+users`).
		WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &models.User{Email: "a@x.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create user: db down")
}

func TestUserRepository_GetByEmail_ScansNullableOTP(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	id := uuid.NewString()
	exp := time.Date(2026, 1, 1, 10, 5, 0, 0, time.UTC)
	created := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(userRowColumns).
		AddRow(id, "Ann", "Lee", "ann@x.com", "hash", "user", false, "123456", exp, created)
	mock.ExpectQuery(`(?s)^SELECT\s+id,.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1$`).
		WithArgs("ann@x.com").
		WillReturnRows(rows)

	u, err := repo.GetByEmail(context.Background(), "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	require.NotNil(t, u.OTP)
	assert.Equal(t, "123456", *u.OTP)
	require.NotNil(t, u.OTPExpiresAt)
	assert.True(t, exp.Equal(*u.OTPExpiresAt))
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+email`).
		WithArgs("ghost@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_GetByID_InvalidID(t *testing.T) {
	repo, _, db := newUserRepoWithMock(t)
	defer db.Close()

	_, err := repo.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestUserRepository_GetByID_ClearedOTP(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	id := uuid.NewString()
	rows := sqlmock.NewRows(userRowColumns).
		AddRow(id, "Ann", "Lee", "ann@x.com", "hash", "admin", true, nil, nil, time.Now())
	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(id).
		WillReturnRows(rows)

	u, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, u.OTP)
	assert.Nil(t, u.OTPExpiresAt)
	assert.True(t, u.IsVerify)
	assert.Equal(t, "admin", u.UserRole)
}

func TestUserRepository_Update_NotFound(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^\s*UPDATE\s+users`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.User{ID: uuid.NewString()})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_Update_WritesStoredHash(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	id := uuid.NewString()
	mock.ExpectExec(`(?s)^\s*UPDATE\s+users`).
		WithArgs("Ann", "Lee", "ann@x.com", "$2a$10$stored", "user", true, nil, nil, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u := &models.User{ID: id, FirstName: "Ann", LastName: "Lee", Email: "ann@x.com",
		PasswordHash: "$2a$10$stored", UserRole: "user", IsVerify: true}
	require.NoError(t, repo.Update(context.Background(), u))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ListExcept(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	caller := uuid.NewString()
	rows := sqlmock.NewRows(userRowColumns).
		AddRow(uuid.NewString(), "B", "B", "b@x.com", "h", "user", true, nil, nil, time.Now()).
		AddRow(uuid.NewString(), "C", "C", "c@x.com", "h", "user", false, nil, nil, time.Now())
	mock.ExpectQuery(`(?s)FROM\s+users\s+WHERE\s+id::text\s*<>\s*\$1`).
		WithArgs(caller).
		WillReturnRows(rows)

	users, err := repo.ListExcept(context.Background(), caller)
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.NotEqual(t, caller, u.ID)
	}
}
