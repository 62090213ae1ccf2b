package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/guideshare/guideshare/pkg/pg"
)

// Store is the PostgreSQL-backed user store.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a user store over the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// UserByUsername fetches a user by username. Absence surfaces as
// ErrInvalidCredentials so the service never distinguishes "no such
// user" from "wrong password".
func (s *Store) UserByUsername(ctx context.Context, username string) (User, error) {
	var user User
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, is_admin FROM users WHERE username = $1`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.IsAdmin)
	if err != nil {
		if pg.IsNotFound(err) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	return user, nil
}

// CreateUser inserts a new account. Username conflicts surface as
// ErrUsernameTaken.
func (s *Store) CreateUser(ctx context.Context, username string, passwordHash []byte) (User, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id`,
		username, passwordHash,
	).Scan(&id)
	if err != nil {
		if pg.IsDuplicateKey(err) {
			return User{}, ErrUsernameTaken
		}
		return User{}, err
	}

	return User{ID: id, Username: username, PasswordHash: passwordHash}, nil
}
