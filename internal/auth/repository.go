// Package auth provides user registration, login, and session tokens for the
// newsboard API: Argon2id password hashing, HMAC-signed JWT session tokens,
// and the middleware that guards protected routes.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/GyroZepelix/newsboard/internal/apperr"
	"github.com/GyroZepelix/newsboard/internal/database"
	"github.com/GyroZepelix/newsboard/internal/users"
	"github.com/GyroZepelix/newsboard/internal/validate"
)

// Credentials is the stored login material for one user.
type Credentials struct {
	Username     string
	PasswordHash string
}

// Repository provides database access for registration and login.
type Repository struct {
	db database.Querier
}

// NewRepository creates a new auth Repository.
func NewRepository(db database.Querier) *Repository {
	return &Repository{db: db}
}

// CreateUser inserts a user with an already hashed password and returns the
// public view of the new row. Duplicate usernames or emails surface as
// unique violations for the error classifier.
func (r *Repository) CreateUser(ctx context.Context, reg validate.Registration, passwordHash string) (*users.User, error) {
	row := r.db.QueryRow(ctx,
		`WITH u AS (
			INSERT INTO users (username, name, email, password, avatar_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING username, name, email, avatar_id, created_at
		)
		SELECT `+users.SelectColumns+`
		FROM u LEFT JOIN avatars av ON av.avatar_id = u.avatar_id`,
		reg.Username, reg.Name, reg.Email, passwordHash, reg.AvatarID,
	)

	u, err := users.ScanUser(row)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return u, nil
}

// GetCredentialsByEmail returns the username and password hash registered
// for email, or a not-found error naming the email.
func (r *Repository) GetCredentialsByEmail(ctx context.Context, email string) (*Credentials, error) {
	row := r.db.QueryRow(ctx,
		`SELECT username, password FROM users WHERE email = $1`,
		email,
	)

	var c Credentials
	if err := row.Scan(&c.Username, &c.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("email", email)
		}
		return nil, fmt.Errorf("querying credentials by email: %w", err)
	}
	return &c, nil
}

// GetUser returns the public view of username.
func (r *Repository) GetUser(ctx context.Context, username string) (*users.User, error) {
	return users.NewRepository(r.db).GetByUsername(ctx, username)
}
