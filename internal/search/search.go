// Package search builds PostgreSQL full-text search fragments over article
// titles and bodies.
package search

import (
	"fmt"
	"strings"
)

// Document is the text search vector of an article row aliased as "a". The
// expression matches idx_articles_search so the planner can use the index.
const Document = `to_tsvector('english', a.title || ' ' || a.body)`

// Clause generates a WHERE fragment matching query against Document, bound
// to placeholder $paramIdx. A blank query yields no clause and no args.
func Clause(query string, paramIdx int) (where string, args []any) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", nil
	}
	where = fmt.Sprintf("%s @@ plainto_tsquery('english', $%d)", Document, paramIdx)
	return where, []any{query}
}
