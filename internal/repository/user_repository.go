package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/playbox/game-rental/internal/model"
	"github.com/playbox/game-rental/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a new customer account.  The password is hashed with
// bcrypt before it is stored; the plaintext never reaches the database.
func (r *UserRepo) Create(ctx context.Context, login, password, phone string, cost int) error {
	login = strings.TrimSpace(login)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO users (login, password_hash, role, phone, overdue_games) VALUES (?,?,?,?,0)",
		login, hash, model.RoleCustomer, phone)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrLoginExists
		}
		return err
	}
	return nil
}

// GetByLogin fetches a user by exact login match.
func (r *UserRepo) GetByLogin(ctx context.Context, login string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT login,password_hash,role,phone,fav_games,overdue_games,created_at,updated_at FROM users WHERE login=? LIMIT 1",
		login).Scan(&u.Login, &u.PasswordHash, &u.Role, &u.Phone, &u.FavGames, &u.OverdueGames, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// UpdatePassword replaces the stored credential hash for a user.
func (r *UserRepo) UpdatePassword(ctx context.Context, login, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=? WHERE login=?", hash, login)
	return err
}

// UpdatePhone sets a new contact phone number.
func (r *UserRepo) UpdatePhone(ctx context.Context, login, phone string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET phone=? WHERE login=?", phone, login)
	return err
}

// UpdateFavGames sets the free-form favourite games field.
func (r *UserRepo) UpdateFavGames(ctx context.Context, login, favGames string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET fav_games=? WHERE login=?", favGames, login)
	return err
}

// UpdateRoleAndOverdue is the administrative mutation used by managers
// to change a user's role and overdue-games counter.  It returns
// sql.ErrNoRows when the target login does not exist.
func (r *UserRepo) UpdateRoleAndOverdue(ctx context.Context, login, role string, overdue uint32) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET role=?, overdue_games=? WHERE login=?", role, overdue, login)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// distinguish a missing user from a no-op update
		var exists bool
		if err := r.DB.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM users WHERE login=?)", login).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return sql.ErrNoRows
		}
	}
	return nil
}
