package query

import (
	"fmt"
	"strings"

	"github.com/GyroZepelix/newsboard/internal/search"
)

// Statement is a SQL string with its positional arguments.
type Statement struct {
	SQL  string
	Args []any
}

// ArticleColumns is the select list shared by every article read. Rows
// scanned from it carry the derived comment_count and the gallery URL.
const ArticleColumns = `a.article_id, a.title, a.topic, a.author, a.body, a.created_at, a.votes, a.img_id,
	g.img_url AS article_img_url, COUNT(c.comment_id)::int AS comment_count`

// ArticleFrom joins comments for the aggregate and gallery for the image URL.
// Articles without comments still appear with a zero count.
const ArticleFrom = `articles a
	LEFT JOIN comments c ON c.article_id = a.article_id
	LEFT JOIN gallery g ON g.img_id = a.img_id`

// ArticleGroupBy groups the join back to one row per article.
const ArticleGroupBy = `a.article_id, g.img_url`

// ArticleList builds the page query and the matching count query for p. Both
// carry the same WHERE clause so the count reflects the filtered population.
func ArticleList(p ArticleParams) (page Statement, count Statement) {
	var whereParts []string
	var args []any
	argIdx := 1

	if p.Topic != "" {
		whereParts = append(whereParts, fmt.Sprintf("a.topic = $%d", argIdx))
		args = append(args, p.Topic)
		argIdx++
	}
	if p.Author != "" {
		whereParts = append(whereParts, fmt.Sprintf("a.author = $%d", argIdx))
		args = append(args, p.Author)
		argIdx++
	}
	if clause, searchArgs := search.Clause(p.Search, argIdx); clause != "" {
		whereParts = append(whereParts, clause)
		args = append(args, searchArgs...)
		argIdx += len(searchArgs)
	}

	whereClause := ""
	if len(whereParts) > 0 {
		whereClause = " WHERE " + strings.Join(whereParts, " AND ")
	}

	count = Statement{
		SQL:  "SELECT COUNT(*) FROM articles a" + whereClause,
		Args: append([]any(nil), args...),
	}

	page = Statement{
		SQL: fmt.Sprintf("SELECT %s FROM %s%s GROUP BY %s ORDER BY %s LIMIT $%d OFFSET $%d",
			ArticleColumns,
			ArticleFrom,
			whereClause,
			ArticleGroupBy,
			orderBy(p.SortBy, p.Order),
			argIdx,
			argIdx+1,
		),
		Args: append(args, p.Limit, p.Offset()),
	}

	return page, count
}

// orderBy renders the ORDER BY list. article_id breaks ties in the same
// direction so paging over equal keys is deterministic.
func orderBy(sortBy, order string) string {
	col, ok := sortColumns[sortBy]
	if !ok {
		col = sortColumns[DefaultSort]
	}
	dir := "DESC"
	if strings.EqualFold(order, "asc") {
		dir = "ASC"
	}
	if sortBy == "article_id" {
		return col + " " + dir
	}
	return fmt.Sprintf("%s %s, a.article_id %s", col, dir, dir)
}

// CommentColumns is the select list for comment reads.
const CommentColumns = `comment_id, body, article_id, author, votes, created_at`

// CommentList builds the page and count queries for an article's comments,
// newest first.
func CommentList(articleID int, p Page) (page Statement, count Statement) {
	count = Statement{
		SQL:  "SELECT COUNT(*) FROM comments WHERE article_id = $1",
		Args: []any{articleID},
	}
	page = Statement{
		SQL: "SELECT " + CommentColumns + ` FROM comments WHERE article_id = $1
			ORDER BY created_at DESC, comment_id DESC LIMIT $2 OFFSET $3`,
		Args: []any{articleID, p.Limit, p.Offset()},
	}
	return page, count
}
