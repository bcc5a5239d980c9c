package images

import (
	"context"
	"net/http"

	"github.com/GyroZepelix/newsboard/internal/cache"
	"github.com/GyroZepelix/newsboard/internal/server"
)

// Cache entries holding the reference lists.
const (
	GalleryCacheKey = "gallery"
	AvatarsCacheKey = "avatars"
)

// Store is the read surface the handler needs.
type Store interface {
	Gallery(ctx context.Context) ([]Image, error)
	Avatars(ctx context.Context) ([]Avatar, error)
}

// Handler serves the gallery and avatar lists through the reference-list
// cache.
type Handler struct {
	store Store
	cache *cache.Cache
}

// NewHandler creates a new images Handler. c may be nil.
func NewHandler(store Store, c *cache.Cache) *Handler {
	return &Handler{store: store, cache: c}
}

// Gallery handles GET /api/gallery.
func (h *Handler) Gallery(w http.ResponseWriter, r *http.Request) {
	images, err := cache.Aside(r.Context(), h.cache, GalleryCacheKey, h.store.Gallery)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	if images == nil {
		images = []Image{}
	}
	server.JSON(w, http.StatusOK, map[string]any{"images": images})
}

// Avatars handles GET /api/avatars.
func (h *Handler) Avatars(w http.ResponseWriter, r *http.Request) {
	avatars, err := cache.Aside(r.Context(), h.cache, AvatarsCacheKey, h.store.Avatars)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	if avatars == nil {
		avatars = []Avatar{}
	}
	server.JSON(w, http.StatusOK, map[string]any{"avatars": avatars})
}
