package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/GyroZepelix/newsboard/internal/apperr"
)

// Entity describes a table and the column that identifies one of its rows.
type Entity struct {
	// Name is the client-facing resource name used in not-found messages.
	Name   string
	Table  string
	Column string
}

// Entities checked before dependent reads and writes.
var (
	Topics   = Entity{Name: "topic", Table: "topics", Column: "slug"}
	Articles = Entity{Name: "article", Table: "articles", Column: "article_id"}
	Users    = Entity{Name: "username", Table: "users", Column: "username"}
)

// Checker verifies that a referenced row exists.
type Checker struct {
	q Querier
}

// NewChecker creates a Checker that queries through q.
func NewChecker(q Querier) *Checker {
	return &Checker{q: q}
}

// Check returns the row of entity identified by key as a column map, or an
// apperr not-found error carrying the entity name and key when no row
// matches. The table and column come from the Entity value and are quoted as
// identifiers; key is always bound as a parameter.
func (c *Checker) Check(ctx context.Context, entity Entity, key any) (map[string]any, error) {
	sql := fmt.Sprintf(
		"SELECT to_jsonb(t) FROM %s t WHERE t.%s = $1 LIMIT 1",
		pgx.Identifier{entity.Table}.Sanitize(),
		pgx.Identifier{entity.Column}.Sanitize(),
	)

	var row map[string]any
	err := c.q.QueryRow(ctx, sql, key).Scan(&row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound(entity.Name, fmt.Sprint(key))
	}
	if err != nil {
		return nil, fmt.Errorf("checking %s %v: %w", entity.Name, key, err)
	}
	return row, nil
}
