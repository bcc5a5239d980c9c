package articles

import (
	"net/http"

	"github.com/GyroZepelix/newsboard/internal/auth"
	"github.com/GyroZepelix/newsboard/internal/query"
	"github.com/GyroZepelix/newsboard/internal/server"
	"github.com/GyroZepelix/newsboard/internal/validate"
)

// Handler provides HTTP handlers for article operations.
type Handler struct {
	service *Service
}

// NewHandler creates a new articles Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /api/articles.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params, err := query.ParseArticleParams(r.URL.Query())
	if err != nil {
		server.WriteError(w, r, err)
		return
	}

	page, err := h.service.List(r.Context(), params)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.JSON(w, http.StatusOK, page)
}

// Mine handles GET /api/my-articles. The author filter is always the
// authenticated user; an author query parameter is ignored.
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	params, err := query.ParseArticleParams(r.URL.Query())
	if err != nil {
		server.WriteError(w, r, err)
		return
	}

	page, err := h.service.ListByAuthor(r.Context(), auth.UsernameFromContext(r.Context()), params)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.JSON(w, http.StatusOK, page)
}

// Get handles GET /api/articles/{article_id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := server.IntParam(r, "article_id")
	if err != nil {
		server.WriteError(w, r, err)
		return
	}

	article, err := h.service.Get(r.Context(), id)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.JSON(w, http.StatusOK, map[string]any{"article": article})
}

// Create handles POST /api/articles.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var p validate.ArticlePayload
	if err := server.DecodeJSON(w, r, &p); err != nil {
		server.WriteError(w, r, err)
		return
	}
	in, err := validate.NewArticle(p)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}

	article, err := h.service.Create(r.Context(), in)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.JSON(w, http.StatusCreated, map[string]any{"article": article})
}

// Vote handles PATCH /api/articles/{article_id}.
func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	id, err := server.IntParam(r, "article_id")
	if err != nil {
		server.WriteError(w, r, err)
		return
	}

	var p validate.VotePayload
	if err := server.DecodeJSON(w, r, &p); err != nil {
		server.WriteError(w, r, err)
		return
	}
	delta, err := validate.VoteIncrement(p)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}

	article, err := h.service.Vote(r.Context(), id, delta)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.JSON(w, http.StatusOK, map[string]any{"updatedArticle": article})
}

// Delete handles DELETE /api/articles/{article_id}. Only the author may
// delete an article.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := server.IntParam(r, "article_id")
	if err != nil {
		server.WriteError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), auth.UsernameFromContext(r.Context()), id); err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.NoContent(w)
}
