package comments

import (
	"context"
	"strconv"

	"github.com/GyroZepelix/newsboard/internal/audit"
	"github.com/GyroZepelix/newsboard/internal/authz"
	"github.com/GyroZepelix/newsboard/internal/database"
	"github.com/GyroZepelix/newsboard/internal/query"
	"github.com/GyroZepelix/newsboard/internal/validate"
)

// Store is the persistence surface the Service needs.
type Store interface {
	ListByArticle(ctx context.Context, articleID int, p query.Page) ([]*Comment, int, error)
	Create(ctx context.Context, articleID int, in validate.Comment) (*Comment, error)
	IncrementVotes(ctx context.Context, id, delta int) (*Comment, error)
	Author(ctx context.Context, id int) (string, error)
	Delete(ctx context.Context, id int) error
}

// Checker confirms that a referenced row exists.
type Checker interface {
	Check(ctx context.Context, entity database.Entity, key any) (map[string]any, error)
}

// Page is one page of an article's comments.
type Page struct {
	Comments   []*Comment `json:"comments"`
	TotalCount int        `json:"total_count"`
}

// Service implements the comment operations.
type Service struct {
	store        Store
	checker      Checker
	gate         *authz.Gate
	auditService *audit.Service
}

// NewService creates a new comments Service. The audit service is optional.
func NewService(store Store, checker Checker, auditService *audit.Service) *Service {
	return &Service{
		store:        store,
		checker:      checker,
		gate:         authz.NewGate("comment", store.Author),
		auditService: auditService,
	}
}

// List returns a page of comments for an existing article. An article with
// no comments yields an empty page; a missing article is not found.
func (s *Service) List(ctx context.Context, articleID int, p query.Page) (*Page, error) {
	if _, err := s.checker.Check(ctx, database.Articles, articleID); err != nil {
		return nil, err
	}

	comments, total, err := s.store.ListByArticle(ctx, articleID, p)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*Comment{}
	}
	return &Page{Comments: comments, TotalCount: total}, nil
}

// Create posts a validated comment on an existing article by an existing
// user. Both are checked before the insert is attempted.
func (s *Service) Create(ctx context.Context, articleID int, in validate.Comment) (*Comment, error) {
	if _, err := s.checker.Check(ctx, database.Articles, articleID); err != nil {
		return nil, err
	}
	if _, err := s.checker.Check(ctx, database.Users, in.Username); err != nil {
		return nil, err
	}

	c, err := s.store.Create(ctx, articleID, in)
	if err != nil {
		return nil, err
	}
	s.auditService.Log(ctx, audit.Event{
		Action:    audit.ActionCommentCreate,
		Actor:     c.Author,
		Entity:    "comment",
		EntityKey: strconv.Itoa(c.CommentID),
		Payload:   map[string]any{"article_id": articleID},
	})
	return c, nil
}

// Vote applies a relative vote change.
func (s *Service) Vote(ctx context.Context, id, delta int) (*Comment, error) {
	return s.store.IncrementVotes(ctx, id, delta)
}

// Delete removes a comment owned by identity.
func (s *Service) Delete(ctx context.Context, identity string, id int) error {
	if err := s.gate.Authorize(ctx, identity, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.auditService.Log(ctx, audit.Event{
		Action:    audit.ActionCommentDelete,
		Actor:     identity,
		Entity:    "comment",
		EntityKey: strconv.Itoa(id),
	})
	return nil
}
