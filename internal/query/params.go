// Package query parses list query parameters and composes the parameterized
// SQL used to read filtered, sorted and paginated article and comment pages.
package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/GyroZepelix/newsboard/internal/apperr"
)

const (
	DefaultLimit = 10
	DefaultPage  = 1
	// MaxLimit caps page size; larger requests are clamped rather than rejected.
	MaxLimit = 100

	DefaultSort  = "created_at"
	DefaultOrder = "desc"
)

// sortColumns maps each accepted sort_by value to the expression ordered on.
// comment_count is the aggregate alias from the select list.
var sortColumns = map[string]string{
	"author":        "a.author",
	"title":         "a.title",
	"article_id":    "a.article_id",
	"topic":         "a.topic",
	"created_at":    "a.created_at",
	"votes":         "a.votes",
	"comment_count": "comment_count",
}

// Page holds validated pagination parameters.
type Page struct {
	Limit int
	Page  int
}

// Offset returns the number of rows skipped before this page.
func (p Page) Offset() int {
	return p.Limit * (p.Page - 1)
}

// ArticleParams holds the normalized parameters of an article list request.
type ArticleParams struct {
	SortBy string
	Order  string // "asc" or "desc"
	// Topic filters by topic slug when non-empty. Its existence is checked
	// separately before the list query runs.
	Topic string
	// Author filters by author username when non-empty.
	Author string
	// Search is a free-text query over title and body.
	Search string
	Page
}

// ParsePage reads limit and p from values. Both must be positive integers
// when present, and p must keep the offset representable; a rejected value
// is reported verbatim.
func ParsePage(values url.Values) (Page, error) {
	p := Page{Limit: DefaultLimit, Page: DefaultPage}

	if v, ok := lookup(values, "limit"); ok {
		n, err := positiveInt(v)
		if err != nil {
			return p, apperr.InvalidQuery("limit", v)
		}
		p.Limit = min(n, MaxLimit)
	}

	if v, ok := lookup(values, "p"); ok {
		n, err := positiveInt(v)
		if err != nil || n-1 > math.MaxInt/p.Limit {
			return p, apperr.InvalidQuery("p", v)
		}
		p.Page = n
	}

	return p, nil
}

// ParseArticleParams validates sort_by, order, limit and p, and passes the
// topic and q filters through.
func ParseArticleParams(values url.Values) (ArticleParams, error) {
	params := ArticleParams{SortBy: DefaultSort, Order: DefaultOrder}

	if v, ok := lookup(values, "sort_by"); ok {
		if _, allowed := sortColumns[v]; !allowed {
			return params, apperr.InvalidQuery("sort_by", v)
		}
		params.SortBy = v
	}

	if v, ok := lookup(values, "order"); ok {
		lower := strings.ToLower(v)
		if lower != "asc" && lower != "desc" {
			return params, apperr.InvalidQuery("order", v)
		}
		params.Order = lower
	}

	params.Topic = values.Get("topic")
	params.Search = strings.TrimSpace(values.Get("q"))

	page, err := ParsePage(values)
	if err != nil {
		return params, err
	}
	params.Page = page

	return params, nil
}

// lookup reports the first value of key and whether the key was supplied.
// An empty value counts as supplied so that "?limit=" is rejected.
func lookup(values url.Values, key string) (string, bool) {
	vs, ok := values[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

func positiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
