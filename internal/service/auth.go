package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/playbox/game-rental/internal/model"
	"github.com/playbox/game-rental/internal/repository"
	"github.com/playbox/game-rental/internal/utils"
)

// AuthService verifies credentials against stored user records.  It is
// read-only; token issuance stays in the HTTP layer.
type AuthService struct {
	Users *repository.UserRepo
}

func NewAuthService(users *repository.UserRepo) *AuthService {
	return &AuthService{Users: users}
}

// Authenticate looks up the user by exact login match and compares the
// bcrypt hash.  Both an unknown login and a wrong password return
// ErrInvalidCredentials; any other storage failure is passed through
// for the handler to report as a server error.
func (s *AuthService) Authenticate(ctx context.Context, login, password string) (model.Identity, error) {
	if login == "" || password == "" {
		return model.Identity{}, ErrInvalidCredentials
	}
	u, err := s.Users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Identity{}, ErrInvalidCredentials
		}
		return model.Identity{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return model.Identity{}, ErrInvalidCredentials
	}
	return model.Identity{Login: u.Login, Role: u.Role}, nil
}
