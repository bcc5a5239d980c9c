package images

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeStore struct{}

func (fakeStore) Gallery(context.Context) ([]Image, error) {
	return []Image{{ImgID: 1, ImgURL: "https://example.com/placeholder.jpg"}, {ImgID: 2, ImgURL: "https://example.com/cat.jpg"}}, nil
}

func (fakeStore) Avatars(context.Context) ([]Avatar, error) {
	return nil, nil
}

func TestHandler_Gallery(t *testing.T) {
	h := NewHandler(fakeStore{}, nil)

	w := httptest.NewRecorder()
	h.Gallery(w, httptest.NewRequest(http.MethodGet, "/api/gallery", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Images []Image `json:"images"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Images) != 2 || resp.Images[1].ImgURL != "https://example.com/cat.jpg" {
		t.Errorf("unexpected images: %+v", resp.Images)
	}
}

func TestHandler_Avatars_EmptyIsArray(t *testing.T) {
	h := NewHandler(fakeStore{}, nil)

	w := httptest.NewRecorder()
	h.Avatars(w, httptest.NewRequest(http.MethodGet, "/api/avatars", nil))

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if _, ok := resp["avatars"].([]any); !ok {
		t.Errorf("avatars = %v, want empty array", resp["avatars"])
	}
}
