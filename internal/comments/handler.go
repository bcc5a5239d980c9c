package comments

import (
	"net/http"

	"github.com/GyroZepelix/newsboard/internal/auth"
	"github.com/GyroZepelix/newsboard/internal/query"
	"github.com/GyroZepelix/newsboard/internal/server"
	"github.com/GyroZepelix/newsboard/internal/validate"
)

// Handler provides HTTP handlers for comment operations.
type Handler struct {
	service *Service
}

// NewHandler creates a new comments Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /api/articles/{article_id}/comments.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	articleID, err := server.IntParam(r, "article_id")
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	p, err := query.ParsePage(r.URL.Query())
	if err != nil {
		server.WriteError(w, r, err)
		return
	}

	page, err := h.service.List(r.Context(), articleID, p)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.JSON(w, http.StatusOK, page)
}

// Create handles POST /api/articles/{article_id}/comments.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	articleID, err := server.IntParam(r, "article_id")
	if err != nil {
		server.WriteError(w, r, err)
		return
	}

	var p validate.CommentPayload
	if err := server.DecodeJSON(w, r, &p); err != nil {
		server.WriteError(w, r, err)
		return
	}
	in, err := validate.NewComment(p)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}

	c, err := h.service.Create(r.Context(), articleID, in)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.JSON(w, http.StatusCreated, map[string]any{"comment": c})
}

// Vote handles PATCH /api/comments/{comment_id}.
func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	id, err := server.IntParam(r, "comment_id")
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

	c, err := h.service.Vote(r.Context(), id, delta)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.JSON(w, http.StatusOK, map[string]any{"updatedComment": c})
}

// Delete handles DELETE /api/comments/{comment_id}. Only the author may
// delete a comment.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := server.IntParam(r, "comment_id")
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
