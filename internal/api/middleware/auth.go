// Package middleware provides HTTP middleware for the FileVault API.
package middleware

import (
	"context"
	"net/http"

	"github.com/marmos91/filevault/pkg/auth"
	"github.com/marmos91/filevault/pkg/models"
)

// TokenHeader is the request header carrying the session token.
const TokenHeader = "X-Token"

// Context key type for storing the resolved user
type contextKey string

const userContextKey contextKey = "user"

// UserFromContext retrieves the authenticated user from the request context.
// Returns nil if no user is present (unauthenticated or anonymous request).
//
// This should only be called in handler code that runs after TokenAuth or
// OptionalTokenAuth has processed the request.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

// TokenAuth validates the X-Token header against the auth gate and stores
// the resolved user in the request context.
// Missing or invalid tokens get 401 with the standard error payload.
func TokenAuth(gate *auth.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := gate.ResolveUser(r.Context(), r.Header.Get(TokenHeader))
			if err != nil {
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalTokenAuth resolves the X-Token header when present but lets the
// request through anonymously when the token is missing or invalid. Used for
// endpoints that serve public content to unauthenticated callers.
func OptionalTokenAuth(gate *auth.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if user, err := gate.ResolveUser(ctx, r.Header.Get(TokenHeader)); err == nil {
				ctx = context.WithValue(ctx, userContextKey, user)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeUnauthorized writes the canonical 401 payload without importing the
// handlers package (which would create an import cycle).
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized"}` + "\n"))
}
