package apperr

import (
	"errors"
	"regexp"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes recognised by Classify.
const (
	pgInvalidTextRepresentation = "22P02"
	pgNumericValueOutOfRange    = "22003"
	pgInvalidDatetimeFormat     = "22007"
	pgDatetimeFieldOverflow     = "22008"
	pgNotNullViolation          = "23502"
	pgForeignKeyViolation       = "23503"
	pgUniqueViolation           = "23505"
	pgCheckViolation            = "23514"
)

// foreignKeys maps foreign-key constraint names to the entity whose absence
// they signal.
var foreignKeys = map[string]string{
	"comments_author_fkey":     "username",
	"comments_article_id_fkey": "article",
	"articles_author_fkey":     "author",
	"articles_topic_fkey":      "topic",
	"articles_img_id_fkey":     "image",
	"users_avatar_id_fkey":     "avatar",
}

// checkConstraints maps check constraint names to the error they produce.
var checkConstraints = map[string]func() *Error{
	"comments_body_check": EmptyComment,
}

// uniqueDetail matches the DETAIL of a unique violation:
// Key (email)=(a@b.c) already exists.
var uniqueDetail = regexp.MustCompile(`^Key \((.+?)\)=\((.*)\) already exists\.?$`)

// Classify maps err onto exactly one Kind. Errors already classified pass
// through untouched; PostgreSQL errors are mapped by SQLSTATE and constraint;
// everything else, including cancellation and timeouts, is Internal.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := As(err); ok {
		return e
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return Internal(err)
	}

	switch pgErr.Code {
	case pgInvalidTextRepresentation, pgNumericValueOutOfRange,
		pgInvalidDatetimeFormat, pgDatetimeFieldOverflow:
		return InvalidFormat(pgErr.ColumnName, err)

	case pgForeignKeyViolation:
		entity, ok := foreignKeys[pgErr.ConstraintName]
		if !ok {
			entity = "referenced record"
		}
		return &Error{Kind: KindNotFound, Entity: entity, Err: err}

	case pgNotNullViolation:
		e := MissingField(pgErr.ColumnName)
		e.Err = err
		return e

	case pgUniqueViolation:
		field, value := parseUniqueDetail(pgErr.Detail)
		return Conflict(field, value, err)

	case pgCheckViolation:
		if mk, ok := checkConstraints[pgErr.ConstraintName]; ok {
			e := mk()
			e.Err = err
			return e
		}
		return InvalidFormat(pgErr.ColumnName, err)
	}

	return Internal(err)
}

// parseUniqueDetail extracts the colliding column and value from a unique
// violation DETAIL message.
func parseUniqueDetail(detail string) (field, value string) {
	m := uniqueDetail.FindStringSubmatch(detail)
	if m == nil {
		return "", ""
	}
	return m[1], m[2]
}
