package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/playbox/game-rental/internal/model"
)

func TestUserRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewUserRepo(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (login, password_hash, role, phone, overdue_games) VALUES (?,?,?,?,0)")).
			WithArgs("alice", sqlmock.AnyArg(), model.RoleCustomer, "555-0100").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Create(ctx, "alice", "s3cret", "555-0100", bcrypt.MinCost))
	})

	t.Run("DuplicateLogin", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (login, password_hash, role, phone, overdue_games) VALUES (?,?,?,?,0)")).
			WithArgs("alice", sqlmock.AnyArg(), model.RoleCustomer, "555-0100").
			WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'alice' for key 'users.PRIMARY'"))

		err := repo.Create(ctx, "alice", "s3cret", "555-0100", bcrypt.MinCost)
		assert.ErrorIs(t, err, ErrLoginExists)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_UpdateRoleAndOverdue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewUserRepo(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET role=?, overdue_games=? WHERE login=?")).
			WithArgs(model.RoleEmployee, uint32(2), "alice").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateRoleAndOverdue(ctx, "alice", model.RoleEmployee, 2))
	})

	t.Run("MissingUser", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET role=?, overdue_games=? WHERE login=?")).
			WithArgs(model.RoleEmployee, uint32(2), "ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE login=?)")).
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		err := repo.UpdateRoleAndOverdue(ctx, "ghost", model.RoleEmployee, 2)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("UnchangedRowStillExists", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET role=?, overdue_games=? WHERE login=?")).
			WithArgs(model.RoleCustomer, uint32(0), "alice").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE login=?)")).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		assert.NoError(t, repo.UpdateRoleAndOverdue(ctx, "alice", model.RoleCustomer, 0))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
