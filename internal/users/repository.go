// Package users serves the public user directory: listing users and looking
// one up by username. Passwords never leave the repository layer.
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/GyroZepelix/newsboard/internal/apperr"
	"github.com/GyroZepelix/newsboard/internal/database"
)

// User is the public view of a users row joined with its avatar.
type User struct {
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	AvatarID     int       `json:"avatar_id"`
	AvatarImgURL *string   `json:"avatar_img_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// SelectColumns is the column list scanned by ScanUser, qualified against
// users u LEFT JOIN avatars av.
const SelectColumns = `u.username, u.name, u.email, u.avatar_id, av.avatar_img_url, u.created_at`

// ScanUser scans a row selected with SelectColumns.
func ScanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.Username, &u.Name, &u.Email, &u.AvatarID, &u.AvatarImgURL, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Repository provides read access to the users table.
type Repository struct {
	db database.Querier
}

// NewRepository creates a new users Repository.
func NewRepository(db database.Querier) *Repository {
	return &Repository{db: db}
}

// List returns every user ordered by username.
func (r *Repository) List(ctx context.Context) ([]*User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+SelectColumns+`
		 FROM users u LEFT JOIN avatars av ON av.avatar_id = u.avatar_id
		 ORDER BY u.username`)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*User, error) {
		return ScanUser(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scanning users: %w", err)
	}
	return users, nil
}

// GetByUsername returns the user with the given username, or a not-found
// error naming the username.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+SelectColumns+`
		 FROM users u LEFT JOIN avatars av ON av.avatar_id = u.avatar_id
		 WHERE u.username = $1`,
		username,
	)

	u, err := ScanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("username", username)
		}
		return nil, fmt.Errorf("querying user by username: %w", err)
	}
	return u, nil
}
