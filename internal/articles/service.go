package articles

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
	List(ctx context.Context, p query.ArticleParams) ([]*Article, int, error)
	GetByID(ctx context.Context, id int) (*Article, error)
	Create(ctx context.Context, in validate.Article) (*Article, error)
	IncrementVotes(ctx context.Context, id, delta int) (*Article, error)
	Author(ctx context.Context, id int) (string, error)
	Delete(ctx context.Context, id int) error
}

// Checker confirms that a referenced row exists.
type Checker interface {
	Check(ctx context.Context, entity database.Entity, key any) (map[string]any, error)
}

// Page is one page of a filtered article listing.
type Page struct {
	Articles   []*Article `json:"articles"`
	TotalCount int        `json:"total_count"`
}

// Service implements the article operations.
type Service struct {
	store        Store
	checker      Checker
	gate         *authz.Gate
	auditService *audit.Service
}

// NewService creates a new articles Service. The audit service is optional.
func NewService(store Store, checker Checker, auditService *audit.Service) *Service {
	return &Service{
		store:        store,
		checker:      checker,
		gate:         authz.NewGate("article", store.Author),
		auditService: auditService,
	}
}

// List returns a page of articles. A topic filter must name an existing
// topic; it is checked before the listing runs so that an unknown topic is
// not found rather than an empty page.
func (s *Service) List(ctx context.Context, p query.ArticleParams) (*Page, error) {
	if p.Topic != "" {
		if _, err := s.checker.Check(ctx, database.Topics, p.Topic); err != nil {
			return nil, err
		}
	}

	articles, total, err := s.store.List(ctx, p)
	if err != nil {
		return nil, err
	}
	if articles == nil {
		articles = []*Article{}
	}
	return &Page{Articles: articles, TotalCount: total}, nil
}

// ListByAuthor returns a page of articles written by username.
func (s *Service) ListByAuthor(ctx context.Context, username string, p query.ArticleParams) (*Page, error) {
	p.Author = username
	return s.List(ctx, p)
}

// Get returns one article.
func (s *Service) Get(ctx context.Context, id int) (*Article, error) {
	return s.store.GetByID(ctx, id)
}

// Create stores a validated article.
func (s *Service) Create(ctx context.Context, in validate.Article) (*Article, error) {
	a, err := s.store.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.auditService.Log(ctx, audit.Event{
		Action:    audit.ActionArticleCreate,
		Actor:     a.Author,
		Entity:    "article",
		EntityKey: strconv.Itoa(a.ArticleID),
		Payload:   map[string]any{"topic": a.Topic},
	})
	return a, nil
}

// Vote applies a relative vote change.
func (s *Service) Vote(ctx context.Context, id, delta int) (*Article, error) {
	return s.store.IncrementVotes(ctx, id, delta)
}

// Delete removes an article owned by identity.
func (s *Service) Delete(ctx context.Context, identity string, id int) error {
	if err := s.gate.Authorize(ctx, identity, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.auditService.Log(ctx, audit.Event{
		Action:    audit.ActionArticleDelete,
		Actor:     identity,
		Entity:    "article",
		EntityKey: strconv.Itoa(id),
	})
	return nil
}
