package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/GyroZepelix/newsboard/internal/apperr"
)

func decodeInto[T any](t *testing.T, body string) T {
	t.Helper()
	var p T
	if err := Decode(strings.NewReader(body), &p); err != nil {
		t.Fatalf("Decode(%s): %v", body, err)
	}
	return p
}

func TestNewComment(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantKind apperr.Kind
		wantErr  bool
	}{
		{"valid", `{"username":"lurker","body":"nice"}`, 0, false},
		{"missing body", `{"username":"lurker"}`, apperr.KindMissingField, true},
		{"missing username", `{"body":"nice"}`, apperr.KindMissingField, true},
		{"empty username", `{"username":"","body":"nice"}`, apperr.KindMissingField, true},
		{"empty body", `{"username":"lurker","body":""}`, apperr.KindEmptyComment, true},
		{"blank body", `{"username":"lurker","body":"   "}`, apperr.KindEmptyComment, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewComment(decodeInto[CommentPayload](t, tt.body))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if c.Username != "lurker" || c.Body != "nice" {
					t.Errorf("got %+v", c)
				}
				return
			}
			e, ok := apperr.As(err)
			if !ok {
				t.Fatalf("err = %v, want *apperr.Error", err)
			}
			if e.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", e.Kind, tt.wantKind)
			}
		})
	}
}

func TestNewComment_MissingFieldNamed(t *testing.T) {
	_, err := NewComment(decodeInto[CommentPayload](t, `{"username":"lurker"}`))
	e, _ := apperr.As(err)
	if e == nil || e.Field != "body" {
		t.Fatalf("err = %v, want missing body", err)
	}
}

func TestNewArticle(t *testing.T) {
	a, err := NewArticle(decodeInto[ArticlePayload](t,
		`{"title":"T","body":"B","topic":"cats","author":"lurker"}`))
	if err != nil {
		t.Fatal(err)
	}
	if a.ImgID != DefaultImageID {
		t.Errorf("img_id = %d, want default %d", a.ImgID, DefaultImageID)
	}

	a, err = NewArticle(decodeInto[ArticlePayload](t,
		`{"title":"T","body":"B","topic":"cats","author":"lurker","img_id":4}`))
	if err != nil {
		t.Fatal(err)
	}
	if a.ImgID != 4 {
		t.Errorf("img_id = %d, want 4", a.ImgID)
	}
}

func TestNewArticle_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantKind apperr.Kind
	}{
		{"missing title", `{"body":"B","topic":"cats","author":"lurker"}`, apperr.KindMissingField},
		{"empty topic", `{"title":"T","body":"B","topic":"","author":"lurker"}`, apperr.KindMissingField},
		{"missing author", `{"title":"T","body":"B","topic":"cats"}`, apperr.KindMissingField},
		{"zero img_id", `{"title":"T","body":"B","topic":"cats","author":"lurker","img_id":0}`, apperr.KindInvalidFormat},
		{"img_id beyond int4", `{"title":"T","body":"B","topic":"cats","author":"lurker","img_id":2147483648}`, apperr.KindInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewArticle(decodeInto[ArticlePayload](t, tt.body))
			e, ok := apperr.As(err)
			if !ok || e.Kind != tt.wantKind {
				t.Fatalf("err = %v, want kind %v", err, tt.wantKind)
			}
		})
	}
}

func TestVoteIncrement(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		want     int
		wantKind apperr.Kind
		wantErr  bool
	}{
		{"positive", `{"inc_votes":10}`, 10, 0, false},
		{"negative", `{"inc_votes":-10}`, -10, 0, false},
		{"zero", `{"inc_votes":0}`, 0, 0, false},
		{"missing", `{}`, 0, apperr.KindMissingField, true},
		{"string", `{"inc_votes":"cat"}`, 0, apperr.KindInvalidFormat, true},
		{"numeric string", `{"inc_votes":"5"}`, 0, apperr.KindInvalidFormat, true},
		{"fraction", `{"inc_votes":1.5}`, 0, apperr.KindInvalidFormat, true},
		{"null", `{"inc_votes":null}`, 0, apperr.KindInvalidFormat, true},
		{"largest int4", `{"inc_votes":2147483647}`, 2147483647, 0, false},
		{"beyond int4", `{"inc_votes":99999999999}`, 0, apperr.KindInvalidFormat, true},
		{"below int4", `{"inc_votes":-2147483649}`, 0, apperr.KindInvalidFormat, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := VoteIncrement(decodeInto[VotePayload](t, tt.body))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if n != tt.want {
					t.Errorf("got %d, want %d", n, tt.want)
				}
				return
			}
			e, ok := apperr.As(err)
			if !ok || e.Kind != tt.wantKind {
				t.Fatalf("err = %v, want kind %v", err, tt.wantKind)
			}
		})
	}
}

func TestNewRegistration(t *testing.T) {
	r, err := NewRegistration(decodeInto[RegistrationPayload](t,
		`{"username":"lurker","name":"Do Nothing","email":"Lurker@Example.com","password":"pw"}`))
	if err != nil {
		t.Fatal(err)
	}
	if r.AvatarID != DefaultAvatarID {
		t.Errorf("avatar_id = %d, want default", r.AvatarID)
	}
	if r.Email != "lurker@example.com" {
		t.Errorf("email = %q, want lowercased", r.Email)
	}
}

func TestNewRegistration_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantKind  apperr.Kind
		wantField string
	}{
		{"missing password", `{"username":"u","name":"n","email":"a@b.com"}`, apperr.KindMissingField, "password"},
		{"missing name", `{"username":"u","email":"a@b.com","password":"pw"}`, apperr.KindMissingField, "name"},
		{"bad email", `{"username":"u","name":"n","email":"nope","password":"pw"}`, apperr.KindInvalidFormat, "email"},
		{"avatar_id beyond int4", `{"username":"u","name":"n","email":"a@b.com","password":"pw","avatar_id":99999999999}`, apperr.KindInvalidFormat, "avatar_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistration(decodeInto[RegistrationPayload](t, tt.body))
			e, ok := apperr.As(err)
			if !ok {
				t.Fatalf("err = %v, want *apperr.Error", err)
			}
			if e.Kind != tt.wantKind || e.Field != tt.wantField {
				t.Errorf("got %v/%q, want %v/%q", e.Kind, e.Field, tt.wantKind, tt.wantField)
			}
		})
	}
}

func TestDecode_UnknownFieldNamed(t *testing.T) {
	var p CommentPayload
	err := Decode(strings.NewReader(`{"username":"lurker","body":"hi","votes":100}`), &p)
	e, ok := apperr.As(err)
	if !ok || e.Field != "votes" {
		t.Fatalf("err = %v, want invalid format on votes", err)
	}
}

func TestDecode_TrailingWhitespaceAccepted(t *testing.T) {
	var p CommentPayload
	if err := Decode(strings.NewReader("{\"username\":\"lurker\",\"body\":\"hi\"}\n\t "), &p); err != nil {
		t.Fatalf("Decode: %v", err)
	}
}

func TestInt(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"7", 7, false},
		{"-2147483648", -2147483648, false},
		{"2147483647", 2147483647, false},
		{"2147483648", 0, true},
		{"", 0, true},
		{" 7", 0, true},
	}
	for _, tt := range tests {
		n, err := Int("article_id", tt.raw)
		if tt.wantErr {
			e, ok := apperr.As(err)
			if !ok || e.Kind != apperr.KindInvalidFormat || e.Field != "article_id" {
				t.Errorf("Int(%q) err = %v, want invalid format on article_id", tt.raw, err)
			}
			continue
		}
		if err != nil || n != tt.want {
			t.Errorf("Int(%q) = %d, %v; want %d", tt.raw, n, err, tt.want)
		}
	}
}

func TestNewLogin(t *testing.T) {
	_, err := NewLogin(decodeInto[LoginPayload](t, `{"email":"a@b.com"}`))
	if !errors.Is(err, apperr.ErrMissingField) {
		t.Fatalf("err = %v, want missing field", err)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantKind apperr.Kind
	}{
		{"empty body", ``, apperr.KindMissingField},
		{"malformed", `{"username":`, apperr.KindInvalidFormat},
		{"wrong type", `{"username":42}`, apperr.KindInvalidFormat},
		{"unknown field", `{"username":"lurker","body":"hi","votes":100}`, apperr.KindInvalidFormat},
		{"trailing object", `{"username":"lurker","body":"hi"}{"body":"again"}`, apperr.KindInvalidFormat},
		{"trailing garbage", `{"username":"lurker","body":"hi"} x`, apperr.KindInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p CommentPayload
			err := Decode(strings.NewReader(tt.body), &p)
			e, ok := apperr.As(err)
			if !ok || e.Kind != tt.wantKind {
				t.Fatalf("err = %v, want kind %v", err, tt.wantKind)
			}
		})
	}
}
