package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/playbox/game-rental/internal/model"
	"github.com/playbox/game-rental/internal/repository"
	"github.com/playbox/game-rental/internal/utils"
)

const userSelect = "SELECT login,password_hash,role,phone,fav_games,overdue_games,created_at,updated_at FROM users WHERE login=? LIMIT 1"

func userRow(login, hash, role string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"login", "password_hash", "role", "phone", "fav_games", "overdue_games", "created_at", "updated_at"}).
		AddRow(login, hash, role, "555-0100", "", 0, now, now)
}

func TestAuthService_Authenticate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	svc := NewAuthService(repository.NewUserRepo(db))
	ctx := context.Background()

	hash, err := utils.HashPassword("s3cret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(userSelect)).
			WithArgs("alice").
			WillReturnRows(userRow("alice", hash, model.RoleCustomer))

		ident, err := svc.Authenticate(ctx, "alice", "s3cret")
		assert.NoError(t, err)
		assert.Equal(t, model.Identity{Login: "alice", Role: model.RoleCustomer}, ident)
	})

	t.Run("UnknownLogin", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(userSelect)).
			WithArgs("nobody").
			WillReturnRows(sqlmock.NewRows([]string{"login"}))

		_, err := svc.Authenticate(ctx, "nobody", "s3cret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(userSelect)).
			WithArgs("alice").
			WillReturnRows(userRow("alice", hash, model.RoleCustomer))

		_, err := svc.Authenticate(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("EmptyCredentials", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "", "s3cret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.Authenticate(ctx, "alice", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
