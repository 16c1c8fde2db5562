package model

import "time"

// Role names stored in the `users.role` column and carried in the JWT
// "role" claim.  CUSTOMER accounts are created through registration;
// EMPLOYEE and MANAGER are assigned administratively.
const (
	RoleCustomer = "CUSTOMER"
	RoleEmployee = "EMPLOYEE"
	RoleManager  = "MANAGER"
)

// ValidRole reports whether the given string is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleEmployee, RoleManager:
		return true
	}
	return false
}

// User represents an application user record as stored in the `users`
// table.  The login acts as the primary key; accounts are never hard
// deleted.
//
// Fields:
//  Login        – unique login name (primary key).
//  PasswordHash – bcrypt hashed password.
//  Role         – CUSTOMER, EMPLOYEE or MANAGER.
//  Phone        – contact phone number.
//  FavGames     – free-form favourite games list.
//  OverdueGames – count of games the user has kept past the due date.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	Login        string    // users.login
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	Phone        string    // users.phone
	FavGames     string    // users.fav_games
	OverdueGames uint32    // users.overdue_games
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// Identity is the authenticated view of a user handed to the order and
// tracking services after credential or token verification.  It carries
// no secret material.
type Identity struct {
	Login string `json:"login"`
	Role  string `json:"role"`
}
