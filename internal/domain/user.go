package domain

import "time"

// RoleAdmin may act on any account; every other role only on its own.
const RoleAdmin = "admin"

// User is the account record. Email is the natural key and doubles as the
// login username. PasswordHash never leaves the process: it is excluded
// from JSON and stripped before token claims are built.
type User struct {
	ID           string    `db:"id"            json:"id"`
	FirstName    string    `db:"first_name"    json:"firstName"`
	LastName     string    `db:"last_name"     json:"lastName"`
	Role         string    `db:"scope"         json:"jobRole"`
	Email        string    `db:"email"         json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at"    json:"-"`
	UpdatedAt    time.Time `db:"updated_at"    json:"-"`
}

// IsAdmin reports whether the user record carries the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
