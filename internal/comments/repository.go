// Package comments implements the comment thread of an article: listing,
// posting, voting and owner-only deletion.
package comments

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

// Comment is a comments row.
type Comment struct {
	CommentID int       `json:"comment_id"`
	Body      string    `json:"body"`
	ArticleID int       `json:"article_id"`
	Author    string    `json:"author"`
	Votes     int       `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository runs comment queries.
type Repository struct {
	db database.Querier
}

// NewRepository creates a new comments Repository.
func NewRepository(db database.Querier) *Repository {
	return &Repository{db: db}
}

// ListByArticle returns one page of an article's comments, newest first, and
// the article's total comment count.
func (r *Repository) ListByArticle(ctx context.Context, articleID int, p query.Page) ([]*Comment, int, error) {
	pageStmt, countStmt := query.CommentList(articleID, p)

	var total int
	if err := r.db.QueryRow(ctx, countStmt.SQL, countStmt.Args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting comments of article %d: %w", articleID, err)
	}

	rows, err := r.db.Query(ctx, pageStmt.SQL, pageStmt.Args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying comments of article %d: %w", articleID, err)
	}
	comments, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByPos[Comment])
	if err != nil {
		return nil, 0, fmt.Errorf("scanning comments: %w", err)
	}

	return comments, total, nil
}

// Create inserts a comment. An unknown author surfaces as a foreign-key
// violation.
func (r *Repository) Create(ctx context.Context, articleID int, in validate.Comment) (*Comment, error) {
	rows, err := r.db.Query(ctx,
		`INSERT INTO comments (body, article_id, author)
		 VALUES ($1, $2, $3)
		 RETURNING `+query.CommentColumns,
		in.Body, articleID, in.Username,
	)
	if err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	c, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByPos[Comment])
	if err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	return c, nil
}

// IncrementVotes adds delta to the comment's votes in a single relative
// update.
func (r *Repository) IncrementVotes(ctx context.Context, id, delta int) (*Comment, error) {
	rows, err := r.db.Query(ctx,
		`UPDATE comments SET votes = votes + $1
		 WHERE comment_id = $2
		 RETURNING `+query.CommentColumns,
		delta, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating votes of comment %d: %w", id, err)
	}
	c, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByPos[Comment])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("comment", strconv.Itoa(id))
		}
		return nil, fmt.Errorf("updating votes of comment %d: %w", id, err)
	}
	return c, nil
}

// Author returns the username that wrote the comment.
func (r *Repository) Author(ctx context.Context, id int) (string, error) {
	var author string
	err := r.db.QueryRow(ctx, `SELECT author FROM comments WHERE comment_id = $1`, id).Scan(&author)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperr.NotFound("comment", strconv.Itoa(id))
		}
		return "", fmt.Errorf("querying author of comment %d: %w", id, err)
	}
	return author, nil
}

// Delete removes the comment.
func (r *Repository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE comment_id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting comment %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("comment", strconv.Itoa(id))
	}
	return nil
}
