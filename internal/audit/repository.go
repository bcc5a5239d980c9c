// Package audit records significant user actions (registration, failed
// logins, article and comment creation and deletion) in the audit_log table.
// Events are written asynchronously so that logging never blocks or fails
// API requests.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/GyroZepelix/newsboard/internal/database"
)

// Repository provides database operations for the audit_log table.
type Repository struct {
	db database.Querier
}

// NewRepository creates a new audit Repository.
func NewRepository(db database.Querier) *Repository {
	return &Repository{db: db}
}

// Insert writes a single audit event to the database. Empty string values for
// Actor and EntityKey are stored as NULL.
func (r *Repository) Insert(ctx context.Context, event Event) error {
	var payloadJSON []byte
	if event.Payload != nil {
		var err error
		payloadJSON, err = json.Marshal(event.Payload)
		if err != nil {
			return fmt.Errorf("marshaling audit payload: %w", err)
		}
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO audit_log (action, actor, entity, entity_key, payload)
		 VALUES ($1, $2, $3, $4, $5)`,
		event.Action,
		nullIfEmpty(event.Actor),
		event.Entity,
		nullIfEmpty(event.EntityKey),
		nullableJSON(payloadJSON),
	)
	if err != nil {
		return fmt.Errorf("inserting audit event: %w", err)
	}
	return nil
}

// nullIfEmpty returns nil for an empty string, or a pointer to the string
// otherwise. Used to store optional text columns as NULL.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// nullableJSON returns nil for empty JSON, or the raw bytes otherwise.
func nullableJSON(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}
