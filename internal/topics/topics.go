// Package topics lists the article categories.
package topics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/GyroZepelix/newsboard/internal/cache"
	"github.com/GyroZepelix/newsboard/internal/database"
	"github.com/GyroZepelix/newsboard/internal/server"
)

// CacheKey is the cache entry holding the topic list.
const CacheKey = "topics"

// Topic is a row of the topics table.
type Topic struct {
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Repository reads the topics table.
type Repository struct {
	db database.Querier
}

// NewRepository creates a new topics Repository.
func NewRepository(db database.Querier) *Repository {
	return &Repository{db: db}
}

// List returns every topic ordered by slug.
func (r *Repository) List(ctx context.Context) ([]Topic, error) {
	rows, err := r.db.Query(ctx, `SELECT slug, description FROM topics ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("querying topics: %w", err)
	}
	topics, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Topic])
	if err != nil {
		return nil, fmt.Errorf("scanning topics: %w", err)
	}
	return topics, nil
}

// Lister is the read surface the handler needs.
type Lister interface {
	List(ctx context.Context) ([]Topic, error)
}

// Handler serves GET /api/topics through the reference-list cache.
type Handler struct {
	store Lister
	cache *cache.Cache
}

// NewHandler creates a new topics Handler. c may be nil.
func NewHandler(store Lister, c *cache.Cache) *Handler {
	return &Handler{store: store, cache: c}
}

// List handles GET /api/topics.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	topics, err := cache.Aside(r.Context(), h.cache, CacheKey, h.store.List)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	if topics == nil {
		topics = []Topic{}
	}
	server.JSON(w, http.StatusOK, map[string]any{"topics": topics})
}
