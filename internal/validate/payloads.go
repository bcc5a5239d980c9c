package validate

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/GyroZepelix/newsboard/internal/apperr"
)

// CommentPayload is the body of POST /api/articles/{id}/comments.
type CommentPayload struct {
	Username *string `json:"username" validate:"required,min=1"`
	Body     *string `json:"body" validate:"required"`
}

// Comment is a validated comment creation request.
type Comment struct {
	Username string
	Body     string
}

// NewComment requires username and body. A body that is present but blank
// is an empty comment, which is reported separately from a missing body.
func NewComment(p CommentPayload) (Comment, error) {
	if err := check(p); err != nil {
		return Comment{}, err
	}
	if strings.TrimSpace(*p.Body) == "" {
		return Comment{}, apperr.EmptyComment()
	}
	return Comment{Username: *p.Username, Body: *p.Body}, nil
}

// ArticlePayload is the body of POST /api/articles.
type ArticlePayload struct {
	Title  *string `json:"title" validate:"required,min=1"`
	Body   *string `json:"body" validate:"required,min=1"`
	Topic  *string `json:"topic" validate:"required,min=1"`
	Author *string `json:"author" validate:"required,min=1"`
	ImgID  *int    `json:"img_id"`
}

// Article is a validated article creation request.
type Article struct {
	Title  string
	Body   string
	Topic  string
	Author string
	ImgID  int
}

// NewArticle requires title, body, topic and author. img_id defaults to the
// placeholder image.
func NewArticle(p ArticlePayload) (Article, error) {
	if p.ImgID != nil && !validID(*p.ImgID) {
		return Article{}, apperr.InvalidFormat("img_id", nil)
	}
	if err := check(p); err != nil {
		return Article{}, err
	}
	return Article{
		Title:  *p.Title,
		Body:   *p.Body,
		Topic:  *p.Topic,
		Author: *p.Author,
		ImgID:  deref(p.ImgID, DefaultImageID),
	}, nil
}

// VotePayload is the body of PATCH /api/articles/{id} and
// PATCH /api/comments/{id}. inc_votes is kept raw so that a value of the
// wrong type is reported as a format error rather than a decode failure.
type VotePayload struct {
	IncVotes json.RawMessage `json:"inc_votes" validate:"required"`
}

// VoteIncrement requires inc_votes and that it is an integer literal that
// fits a vote column.
func VoteIncrement(p VotePayload) (int, error) {
	if err := check(p); err != nil {
		return 0, err
	}
	return Int("inc_votes", strings.TrimSpace(string(p.IncVotes)))
}

// RegistrationPayload is the body of POST /api/users/register.
type RegistrationPayload struct {
	Username *string `json:"username" validate:"required,min=1"`
	Name     *string `json:"name" validate:"required,min=1"`
	Email    *string `json:"email" validate:"required,min=1,email"`
	Password *string `json:"password" validate:"required,min=1"`
	AvatarID *int    `json:"avatar_id"`
}

// Registration is a validated registration request.
type Registration struct {
	Username string
	Name     string
	Email    string
	Password string
	AvatarID int
}

// NewRegistration requires username, name, email and password. avatar_id
// defaults to the placeholder avatar.
func NewRegistration(p RegistrationPayload) (Registration, error) {
	if p.AvatarID != nil && !validID(*p.AvatarID) {
		return Registration{}, apperr.InvalidFormat("avatar_id", nil)
	}
	if err := check(p); err != nil {
		return Registration{}, err
	}
	return Registration{
		Username: *p.Username,
		Name:     *p.Name,
		Email:    strings.ToLower(strings.TrimSpace(*p.Email)),
		Password: *p.Password,
		AvatarID: deref(p.AvatarID, DefaultAvatarID),
	}, nil
}

// LoginPayload is the body of POST /api/users/login.
type LoginPayload struct {
	Email    *string `json:"email" validate:"required,min=1"`
	Password *string `json:"password" validate:"required,min=1"`
}

// Login is a validated login request.
type Login struct {
	Email    string
	Password string
}

// NewLogin requires email and password.
func NewLogin(p LoginPayload) (Login, error) {
	if err := check(p); err != nil {
		return Login{}, err
	}
	return Login{
		Email:    strings.ToLower(strings.TrimSpace(*p.Email)),
		Password: *p.Password,
	}, nil
}

func validID(id int) bool {
	return id >= 1 && id <= math.MaxInt32
}
