package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/GyroZepelix/newsboard/internal/apperr"
	"github.com/GyroZepelix/newsboard/internal/server"
)

type contextKey string

// ContextKeyUsername is the context key for the authenticated username.
const ContextKeyUsername contextKey = "username"

// CookieName is the cookie that carries the session token for browser clients.
const CookieName = "token"

// Middleware returns an HTTP middleware that requires a session token, read
// from an "Authorization: Bearer" header or the token cookie. A request with
// no credential gets 401; a credential that fails verification gets 403. On
// success the username is stored in the request context.
func Middleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, present := tokenFromRequest(r)
			if !present {
				server.WriteError(w, r, apperr.Unauthenticated())
				return
			}
			if tokenString == "" {
				server.WriteError(w, r, apperr.InvalidToken(nil))
				return
			}

			claims, err := ValidateToken(tokenString, jwtSecret)
			if err != nil {
				server.WriteError(w, r, apperr.InvalidToken(err))
				return
			}

			ctx := WithUsername(r.Context(), claims.Username())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// tokenFromRequest extracts the raw token. present reports whether the
// client sent any credential at all; an Authorization header that is not a
// well-formed Bearer credential is present but yields an empty token.
func tokenFromRequest(r *http.Request) (token string, present bool) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", true
		}
		return strings.TrimSpace(parts[1]), true
	}

	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value, true
	}
	return "", false
}

// WithUsername returns a copy of ctx carrying username as the authenticated
// identity.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, ContextKeyUsername, username)
}

// UsernameFromContext extracts the authenticated username from the request
// context. Returns an empty string if no user is authenticated.
func UsernameFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ContextKeyUsername).(string)
	return v
}
