// Package apperr defines the closed set of failure categories the API can
// report, the rendering of those categories into HTTP status codes and
// messages, and the classification of PostgreSQL errors into them.
package apperr

import (
	"errors"
	"fmt"
)

// Kind identifies one outward error category.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidQuery
	KindInvalidFormat
	KindMissingField
	KindEmptyComment
	KindNotFound
	KindUnauthenticated
	KindInvalidToken
	KindNotOwner
	KindBadPassword
	KindConflict
	KindTooManyRequests
)

var kindNames = map[Kind]string{
	KindInternal:        "internal",
	KindInvalidQuery:    "invalid_query",
	KindInvalidFormat:   "invalid_format",
	KindMissingField:    "missing_field",
	KindEmptyComment:    "empty_comment",
	KindNotFound:        "not_found",
	KindUnauthenticated: "unauthenticated",
	KindInvalidToken:    "invalid_token",
	KindNotOwner:        "not_owner",
	KindBadPassword:     "bad_password",
	KindConflict:        "conflict",
	KindTooManyRequests: "too_many_requests",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a classified application error. Only the structured fields are
// ever rendered to clients; Err is kept for logging and errors.Is/As.
type Error struct {
	Kind Kind

	// Entity names the resource class involved ("topic", "article", ...).
	Entity string
	// Key is the lookup key or offending raw value.
	Key string
	// Field and Value describe a payload field, or the colliding column and
	// value of a uniqueness violation.
	Field string
	Value string

	Err error
}

func (e *Error) Error() string {
	msg := Message(e)
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind, so callers can
// write errors.Is(err, apperr.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Entity == "" && t.Key == "" && t.Field == "" && t.Err == nil
}

// Sentinels for errors.Is comparisons against a category.
var (
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrInvalidQuery    = &Error{Kind: KindInvalidQuery}
	ErrInvalidFormat   = &Error{Kind: KindInvalidFormat}
	ErrMissingField    = &Error{Kind: KindMissingField}
	ErrEmptyComment    = &Error{Kind: KindEmptyComment}
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated}
	ErrInvalidToken    = &Error{Kind: KindInvalidToken}
	ErrNotOwner        = &Error{Kind: KindNotOwner}
	ErrBadPassword     = &Error{Kind: KindBadPassword}
	ErrConflict        = &Error{Kind: KindConflict}
	ErrInternal        = &Error{Kind: KindInternal}
)

// InvalidQuery reports a query parameter whose raw value was rejected.
func InvalidQuery(param, raw string) *Error {
	return &Error{Kind: KindInvalidQuery, Field: param, Key: raw}
}

// InvalidFormat reports a malformed identifier or a value of the wrong type.
func InvalidFormat(field string, err error) *Error {
	return &Error{Kind: KindInvalidFormat, Field: field, Err: err}
}

// MissingField reports a required payload field that was absent.
func MissingField(field string) *Error {
	return &Error{Kind: KindMissingField, Field: field}
}

// EmptyComment reports a comment body that was present but empty.
func EmptyComment() *Error {
	return &Error{Kind: KindEmptyComment, Field: "body"}
}

// NotFound reports that no entity of the given class exists for key.
func NotFound(entity, key string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, Key: key}
}

// Unauthenticated reports a request that carried no session credential.
func Unauthenticated() *Error {
	return &Error{Kind: KindUnauthenticated}
}

// InvalidToken reports a credential that was present but could not be verified.
func InvalidToken(err error) *Error {
	return &Error{Kind: KindInvalidToken, Err: err}
}

// NotOwner reports an authenticated identity acting on another user's resource.
func NotOwner(entity, key string) *Error {
	return &Error{Kind: KindNotOwner, Entity: entity, Key: key}
}

// BadPassword reports a login attempt with the wrong password.
func BadPassword() *Error {
	return &Error{Kind: KindBadPassword}
}

// Conflict reports a uniqueness violation on field with the colliding value.
func Conflict(field, value string, err error) *Error {
	return &Error{Kind: KindConflict, Field: field, Value: value, Err: err}
}

// TooManyRequests reports a rate-limited client.
func TooManyRequests() *Error {
	return &Error{Kind: KindTooManyRequests}
}

// Internal wraps an unclassified failure.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Err: err}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
