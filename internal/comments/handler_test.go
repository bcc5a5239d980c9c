package comments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/GyroZepelix/newsboard/internal/apperr"
	"github.com/GyroZepelix/newsboard/internal/auth"
	"github.com/GyroZepelix/newsboard/internal/database"
	"github.com/GyroZepelix/newsboard/internal/query"
	"github.com/GyroZepelix/newsboard/internal/validate"
)

type fakeStore struct {
	comments map[int]*Comment
	users    map[string]bool
	nextID   int
}

func newFakeStore() *fakeStore {
	base := time.Date(2020, 4, 6, 12, 0, 0, 0, time.UTC)
	s := &fakeStore{
		comments: map[int]*Comment{
			1: {CommentID: 1, Body: "Oh, I've got compassion running out of my nose", ArticleID: 1, Author: "butter_bridge", Votes: 16, CreatedAt: base},
			2: {CommentID: 2, Body: "The beautiful thing about treasure", ArticleID: 1, Author: "icellusedkars", Votes: 14, CreatedAt: base.Add(time.Hour)},
		},
		users:  map[string]bool{"butter_bridge": true, "icellusedkars": true, "lurker": true},
		nextID: 3,
	}
	return s
}

func (s *fakeStore) ListByArticle(_ context.Context, articleID int, p query.Page) ([]*Comment, int, error) {
	var out []*Comment
	for id := 1; id < s.nextID; id++ {
		if c, ok := s.comments[id]; ok && c.ArticleID == articleID {
			out = append([]*Comment{c}, out...)
		}
	}
	total := len(out)
	start := min(p.Offset(), total)
	end := min(start+p.Limit, total)
	return out[start:end], total, nil
}

func (s *fakeStore) Create(_ context.Context, articleID int, in validate.Comment) (*Comment, error) {
	if !s.users[in.Username] {
		return nil, fmt.Errorf("creating comment: %w", &pgconn.PgError{Code: "23503", ConstraintName: "comments_author_fkey"})
	}
	c := &Comment{CommentID: s.nextID, Body: in.Body, ArticleID: articleID, Author: in.Username, CreatedAt: time.Now()}
	s.comments[c.CommentID] = c
	s.nextID++
	return c, nil
}

func (s *fakeStore) IncrementVotes(_ context.Context, id, delta int) (*Comment, error) {
	c, ok := s.comments[id]
	if !ok {
		return nil, apperr.NotFound("comment", strconv.Itoa(id))
	}
	c.Votes += delta
	return c, nil
}

func (s *fakeStore) Author(_ context.Context, id int) (string, error) {
	c, ok := s.comments[id]
	if !ok {
		return "", apperr.NotFound("comment", strconv.Itoa(id))
	}
	return c.Author, nil
}

func (s *fakeStore) Delete(_ context.Context, id int) error {
	if _, ok := s.comments[id]; !ok {
		return apperr.NotFound("comment", strconv.Itoa(id))
	}
	delete(s.comments, id)
	return nil
}

// fakeChecker knows articles 1 and 2 and the users in users.
type fakeChecker struct {
	users   map[string]bool
	checked []database.Entity
}

func (c *fakeChecker) Check(_ context.Context, entity database.Entity, key any) (map[string]any, error) {
	c.checked = append(c.checked, entity)
	switch entity {
	case database.Articles:
		if id, _ := key.(int); id == 1 || id == 2 {
			return map[string]any{"article_id": id}, nil
		}
	case database.Users:
		if name, _ := key.(string); c.users[name] {
			return map[string]any{"username": name}, nil
		}
	}
	return nil, apperr.NotFound(entity.Name, fmt.Sprint(key))
}

func newTestRouter() (http.Handler, *fakeStore) {
	store := newFakeStore()
	checker := &fakeChecker{users: map[string]bool{"butter_bridge": true, "icellusedkars": true, "lurker": true}}
	h := NewHandler(NewService(store, checker, nil))
	r := chi.NewRouter()
	r.Get("/api/articles/{article_id}/comments", h.List)
	r.Post("/api/articles/{article_id}/comments", h.Create)
	r.Patch("/api/comments/{comment_id}", h.Vote)
	r.Delete("/api/comments/{comment_id}", h.Delete)
	return r, store
}

func do(router http.Handler, method, path, body, identity string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if identity != "" {
		req = req.WithContext(auth.WithUsername(req.Context(), identity))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestHandler_List_NewestFirst(t *testing.T) {
	router, _ := newTestRouter()

	w := do(router, http.MethodGet, "/api/articles/1/comments", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Comments   []Comment `json:"comments"`
		TotalCount int       `json:"total_count"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.TotalCount != 2 || len(resp.Comments) != 2 {
		t.Fatalf("got %d comments, total %d; want 2, 2", len(resp.Comments), resp.TotalCount)
	}
	if resp.Comments[0].CommentID != 2 {
		t.Errorf("first comment = %d, want 2", resp.Comments[0].CommentID)
	}
}

func TestHandler_List_ArticleWithoutComments(t *testing.T) {
	router, _ := newTestRouter()

	w := do(router, http.MethodGet, "/api/articles/2/comments", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if c, ok := resp["comments"].([]any); !ok || len(c) != 0 {
		t.Errorf("comments = %v, want empty array", resp["comments"])
	}
}

func TestHandler_List_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantMsg    string
	}{
		{"missing article", "/api/articles/999/comments", http.StatusNotFound, "Not Found: article 999 does not exist."},
		{"malformed id", "/api/articles/banana/comments", http.StatusBadRequest, "Error: invalid data format - article_id."},
		{"bad page", "/api/articles/1/comments?p=0", http.StatusBadRequest, "Error: Invalid query - 0."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter()
			w := do(router, http.MethodGet, tt.path, "", "")
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			if msg := decodeError(t, w).Error.Message; msg != tt.wantMsg {
				t.Errorf("message = %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestHandler_Create(t *testing.T) {
	router, _ := newTestRouter()

	w := do(router, http.MethodPost, "/api/articles/2/comments", `{"username":"lurker","body":"First!"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Comment Comment `json:"comment"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Comment.ArticleID != 2 || resp.Comment.Author != "lurker" || resp.Comment.Votes != 0 {
		t.Errorf("unexpected comment: %+v", resp.Comment)
	}
}

func TestHandler_Create_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"empty body", "/api/articles/1/comments", `{"username":"lurker","body":""}`, http.StatusBadRequest, "EMPTY_COMMENT"},
		{"missing body", "/api/articles/1/comments", `{"username":"lurker"}`, http.StatusBadRequest, "MISSING_FIELD"},
		{"unknown user", "/api/articles/1/comments", `{"username":"nobody","body":"hi"}`, http.StatusNotFound, "NOT_FOUND"},
		{"unknown article", "/api/articles/999/comments", `{"username":"lurker","body":"hi"}`, http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter()
			w := do(router, http.MethodPost, tt.path, tt.body, "")
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if code := decodeError(t, w).Error.Code; code != tt.wantCode {
				t.Errorf("code = %q, want %q", code, tt.wantCode)
			}
		})
	}
}

func TestHandler_Vote(t *testing.T) {
	router, _ := newTestRouter()

	w := do(router, http.MethodPatch, "/api/comments/1", `{"inc_votes":-1}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		UpdatedComment Comment `json:"updatedComment"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.UpdatedComment.Votes != 15 {
		t.Errorf("votes = %d, want 15", resp.UpdatedComment.Votes)
	}

	if w := do(router, http.MethodPatch, "/api/comments/999", `{"inc_votes":1}`, ""); w.Code != http.StatusNotFound {
		t.Errorf("missing comment: expected 404, got %d", w.Code)
	}
}

func TestHandler_Delete(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		identity   string
		wantStatus int
		wantCode   string
	}{
		{"owner", "/api/comments/1", "butter_bridge", http.StatusNoContent, ""},
		{"other user", "/api/comments/1", "lurker", http.StatusUnauthorized, "NOT_OWNER"},
		{"missing comment", "/api/comments/999", "butter_bridge", http.StatusNotFound, "NOT_FOUND"},
		{"malformed id", "/api/comments/abc", "butter_bridge", http.StatusBadRequest, "INVALID_FORMAT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, store := newTestRouter()
			w := do(router, http.MethodDelete, tt.path, "", tt.identity)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantCode == "" {
				if _, ok := store.comments[1]; ok {
					t.Error("comment should have been deleted")
				}
				return
			}
			if code := decodeError(t, w).Error.Code; code != tt.wantCode {
				t.Errorf("code = %q, want %q", code, tt.wantCode)
			}
		})
	}
}
