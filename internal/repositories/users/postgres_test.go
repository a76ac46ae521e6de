package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/investrack/server/internal/common"
	"github.com/investrack/server/internal/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func userRows(t *testing.T) *sqlmock.Rows {
	t.Helper()
	return sqlmock.NewRows([]string{
		"id", "username", "email", "password_hash", "first_name", "last_name",
		"enabled", "email_verified", "last_login", "created_at",
	})
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users\b.*RETURNING\s+id,\s*created_at\s*$`).
		WithArgs("alice", "alice@example.com", "hash", "Alice", "Smith", true, false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("u1", time.Now()))

	got, err := repo.Create(context.Background(), &models.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		FirstName:    "Alice",
		LastName:     "Smith",
		Enabled:      true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "u1" {
		t.Fatalf("expected generated ID, got %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByLogin_FoundWithRoles(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*username,.*FROM\s+users\s+WHERE\s+username\s*=\s*\$1\s+OR\s+email\s*=\s*\$1\s*$`).
		WithArgs("alice").
		WillReturnRows(userRows(t).AddRow(
			"u1", "alice", "alice@example.com", "hash", "", "",
			true, false, nil, time.Now(),
		))
	mock.ExpectQuery(`(?s)^SELECT\s+r\.name\s+FROM\s+roles\b`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("ADMIN").AddRow("USER"))

	got, err := repo.GetByLogin(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Username != "alice" || len(got.Roles) != 2 || got.Roles[0] != "ADMIN" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByLogin_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*username,.*FROM\s+users\b`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByLogin(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*username,.*FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`).
		WithArgs("u1").
		WillReturnRows(userRows(t).AddRow(
			"u1", "alice", "alice@example.com", "hash", "", "",
			true, false, nil, time.Now(),
		))
	mock.ExpectQuery(`(?s)^SELECT\s+r\.name\s+FROM\s+roles\b`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	got, err := repo.GetByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "u1" || len(got.Roles) != 0 {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestUpdateLastLogin(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectExec(`(?s)^UPDATE\s+users\s+SET\s+last_login\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$1\s*$`).
		WithArgs("u1", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateLastLogin(context.Background(), "u1", now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAssignRole(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+user_roles\b`).
		WithArgs("u1", "r1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.AssignRole(context.Background(), "u1", "r1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
