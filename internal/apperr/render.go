package apperr

import (
	"fmt"
	"net/http"
)

// Status returns the HTTP status code for a Kind.
func Status(k Kind) int {
	switch k {
	case KindInvalidQuery, KindInvalidFormat, KindMissingField, KindEmptyComment:
		return http.StatusBadRequest
	case KindUnauthenticated, KindNotOwner, KindBadPassword:
		return http.StatusUnauthorized
	case KindInvalidToken:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Code returns the machine-readable error code for a Kind.
func Code(k Kind) string {
	switch k {
	case KindInvalidQuery:
		return "INVALID_QUERY"
	case KindInvalidFormat:
		return "INVALID_FORMAT"
	case KindMissingField:
		return "MISSING_FIELD"
	case KindEmptyComment:
		return "EMPTY_COMMENT"
	case KindNotFound:
		return "NOT_FOUND"
	case KindUnauthenticated:
		return "UNAUTHENTICATED"
	case KindInvalidToken:
		return "FORBIDDEN"
	case KindNotOwner:
		return "NOT_OWNER"
	case KindBadPassword:
		return "BAD_PASSWORD"
	case KindConflict:
		return "CONFLICT"
	case KindTooManyRequests:
		return "RATE_LIMITED"
	default:
		return "INTERNAL_ERROR"
	}
}

// Message renders the client-facing text for e. It never includes the
// wrapped cause.
func Message(e *Error) string {
	switch e.Kind {
	case KindInvalidQuery:
		return fmt.Sprintf("Error: Invalid query - %s.", e.Key)
	case KindInvalidFormat:
		if e.Field != "" {
			return fmt.Sprintf("Error: invalid data format - %s.", e.Field)
		}
		return "Error: invalid data format."
	case KindMissingField:
		return "Error: missing information."
	case KindEmptyComment:
		return "Error: empty comment."
	case KindNotFound:
		switch {
		case e.Entity == "":
			return "Not found!"
		case e.Key == "":
			return fmt.Sprintf("Not Found: %s does not exist.", e.Entity)
		default:
			return fmt.Sprintf("Not Found: %s %s does not exist.", e.Entity, e.Key)
		}
	case KindUnauthenticated:
		return "Error: Not authorized."
	case KindInvalidToken:
		return "Forbidden: invalid or expired token."
	case KindNotOwner:
		return fmt.Sprintf("Unauthorized: %s %s belongs to another user.", e.Entity, e.Key)
	case KindBadPassword:
		return "Unauthorized: incorrect password."
	case KindConflict:
		if e.Field == "" {
			return "Error: duplicate key."
		}
		return fmt.Sprintf("Error: Key (%s)=(%s) already exists.", e.Field, e.Value)
	case KindTooManyRequests:
		return "Error: too many requests."
	default:
		return "Internal server error."
	}
}
