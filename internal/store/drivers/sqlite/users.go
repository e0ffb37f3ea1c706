package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/teamhq/userauth/internal/domain"
	"github.com/teamhq/userauth/internal/store"
)

type usersRepo struct {
	db *sqlx.DB
}

const userColumns = `id, first_name, last_name, scope, email, password_hash, created_at, updated_at`

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) Create(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO users (id, first_name, last_name, scope, email, password_hash, created_at, updated_at)
		 VALUES (:id, :first_name, :last_name, :scope, :email, :password_hash, :created_at, :updated_at)`,
		map[string]any{
			"id":            u.ID,
			"first_name":    u.FirstName,
			"last_name":     u.LastName,
			"scope":         u.Role,
			"email":         u.Email,
			"password_hash": u.PasswordHash,
			"created_at":    now,
			"updated_at":    now,
		})
	return mapConstraint(err)
}

func (r *usersRepo) Update(ctx context.Context, u domain.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET first_name = ?, last_name = ?, email = ?, updated_at = ? WHERE id = ?`,
		u.FirstName, u.LastName, u.Email, time.Now().UTC(), u.ID)
	if err != nil {
		return mapConstraint(err)
	}
	return requireAffected(res)
}

func (r *usersRepo) SetPassword(ctx context.Context, email, newHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE email = ?`,
		newHash, time.Now().UTC(), email)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *usersRepo) DeleteByEmail(ctx context.Context, email string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE email = ?`, email)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// requireAffected turns a zero-row mutation into ErrNotFound. "No such
// user" is a domain error, not a silent success.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
