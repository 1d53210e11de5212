package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/tickettango/api/internal/model"
	"github.com/tickettango/api/internal/query"
	"github.com/tickettango/api/internal/store"
	"github.com/tickettango/api/internal/utils"
)

// UserRepo provides account storage.  Username uniqueness is enforced by
// the table's UNIQUE constraint, not by a pre-check, so concurrent
// registrations of the same name cannot both succeed.
type UserRepo struct {
	q *query.Runner
}

// NewUserRepo returns a UserRepo bound to the given store.
func NewUserRepo(st *store.Store) *UserRepo {
	return &UserRepo{q: query.New(st)}
}

// Create hashes the password and inserts the user, returning its ID.
// A duplicate username maps to ErrUsernameExists.
func (r *UserRepo) Create(ctx context.Context, username, password string, email *string, cost int) (uint64, error) {
	username = strings.TrimSpace(username)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.q.Exec(ctx,
		"INSERT INTO users (username, password_hash, email) VALUES (@username, @password_hash, @email)",
		query.Params{"username": username, "password_hash": hash, "email": email})
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by name.  sql.ErrNoRows passes through so
// the login handler can treat unknown users and bad passwords identically.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	row, err := r.q.QueryRow(ctx,
		"SELECT id, username, password_hash, email, created_at FROM users WHERE username = @username",
		query.Params{"username": strings.TrimSpace(username)})
	if err != nil {
		return model.User{}, err
	}
	return scanUser(row)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	row, err := r.q.QueryRow(ctx,
		"SELECT id, username, password_hash, email, created_at FROM users WHERE id = @id",
		query.Params{"id": id})
	if err != nil {
		return model.User{}, err
	}
	return scanUser(row)
}

func scanUser(row *sql.Row) (model.User, error) {
	var (
		u       model.User
		email   sql.NullString
		created dbTime
	)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &email, &created); err != nil {
		return model.User{}, err
	}
	if email.Valid {
		e := email.String
		u.Email = &e
	}
	u.CreatedAt = created.Time()
	return u, nil
}
