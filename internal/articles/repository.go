// Package articles implements listing, reading, creating, voting on and
// deleting articles, including the per-user "my articles" listing.
package articles

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/GyroZepelix/newsboard/internal/apperr"
	"github.com/GyroZepelix/newsboard/internal/database"
	"github.com/GyroZepelix/newsboard/internal/query"
	"github.com/GyroZepelix/newsboard/internal/validate"
)

// Article is an articles row with its gallery URL and derived comment count.
type Article struct {
	ArticleID     int       `json:"article_id"`
	Title         string    `json:"title"`
	Topic         string    `json:"topic"`
	Author        string    `json:"author"`
	Body          string    `json:"body"`
	CreatedAt     time.Time `json:"created_at"`
	Votes         int       `json:"votes"`
	ImgID         int       `json:"img_id"`
	ArticleImgURL *string   `json:"article_img_url"`
	CommentCount  int       `json:"comment_count"`
}

func scanArticle(row pgx.Row) (*Article, error) {
	var a Article
	err := row.Scan(&a.ArticleID, &a.Title, &a.Topic, &a.Author, &a.Body,
		&a.CreatedAt, &a.Votes, &a.ImgID, &a.ArticleImgURL, &a.CommentCount)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Repository runs article queries.
type Repository struct {
	db database.Querier
}

// NewRepository creates a new articles Repository.
func NewRepository(db database.Querier) *Repository {
	return &Repository{db: db}
}

// List returns one page of articles matching p and the total number of
// matching articles ignoring pagination.
func (r *Repository) List(ctx context.Context, p query.ArticleParams) ([]*Article, int, error) {
	pageStmt, countStmt := query.ArticleList(p)

	var total int
	if err := r.db.QueryRow(ctx, countStmt.SQL, countStmt.Args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting articles: %w", err)
	}

	rows, err := r.db.Query(ctx, pageStmt.SQL, pageStmt.Args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying articles: %w", err)
	}
	articles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Article, error) {
		return scanArticle(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scanning articles: %w", err)
	}

	return articles, total, nil
}

// GetByID returns the article with the given id.
func (r *Repository) GetByID(ctx context.Context, id int) (*Article, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+query.ArticleColumns+`
		 FROM `+query.ArticleFrom+`
		 WHERE a.article_id = $1
		 GROUP BY `+query.ArticleGroupBy,
		id,
	)

	a, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("article", strconv.Itoa(id))
		}
		return nil, fmt.Errorf("querying article %d: %w", id, err)
	}
	return a, nil
}

// Create inserts an article. Unknown topics, authors and images surface as
// foreign-key violations.
func (r *Repository) Create(ctx context.Context, in validate.Article) (*Article, error) {
	row := r.db.QueryRow(ctx,
		`WITH a AS (
			INSERT INTO articles (title, body, topic, author, img_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING *
		)
		SELECT a.article_id, a.title, a.topic, a.author, a.body, a.created_at, a.votes, a.img_id,
			g.img_url, 0
		FROM a LEFT JOIN gallery g ON g.img_id = a.img_id`,
		in.Title, in.Body, in.Topic, in.Author, in.ImgID,
	)

	a, err := scanArticle(row)
	if err != nil {
		return nil, fmt.Errorf("creating article: %w", err)
	}
	return a, nil
}

// IncrementVotes adds delta to the article's votes in a single relative
// update and returns the updated article.
func (r *Repository) IncrementVotes(ctx context.Context, id, delta int) (*Article, error) {
	row := r.db.QueryRow(ctx,
		`WITH a AS (
			UPDATE articles SET votes = votes + $1
			WHERE article_id = $2
			RETURNING *
		)
		SELECT a.article_id, a.title, a.topic, a.author, a.body, a.created_at, a.votes, a.img_id,
			g.img_url,
			(SELECT COUNT(*)::int FROM comments c WHERE c.article_id = a.article_id)
		FROM a LEFT JOIN gallery g ON g.img_id = a.img_id`,
		delta, id,
	)

	a, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("article", strconv.Itoa(id))
		}
		return nil, fmt.Errorf("updating votes of article %d: %w", id, err)
	}
	return a, nil
}

// Author returns the username that wrote the article.
func (r *Repository) Author(ctx context.Context, id int) (string, error) {
	var author string
	err := r.db.QueryRow(ctx, `SELECT author FROM articles WHERE article_id = $1`, id).Scan(&author)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperr.NotFound("article", strconv.Itoa(id))
		}
		return "", fmt.Errorf("querying author of article %d: %w", id, err)
	}
	return author, nil
}

// Delete removes the article; its comments are removed by the cascading
// foreign key.
func (r *Repository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM articles WHERE article_id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting article %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("article", strconv.Itoa(id))
	}
	return nil
}
