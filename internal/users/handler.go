package users

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GyroZepelix/newsboard/internal/server"
)

// Store is the read surface the handler needs.
type Store interface {
	List(ctx context.Context) ([]*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// Handler provides HTTP handlers for the user directory.
type Handler struct {
	store Store
}

// NewHandler creates a new users Handler.
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// List handles GET /api/users.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.List(r.Context())
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	if users == nil {
		users = []*User{}
	}
	server.JSON(w, http.StatusOK, map[string]any{"users": users})
}

// Get handles GET /api/users/{username}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.JSON(w, http.StatusOK, map[string]any{"user": user})
}
