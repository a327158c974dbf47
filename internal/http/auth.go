package httpapi

import (
	"context"
	"log"
	"net/http"
	"strings"

	"championsite-backend-go/internal/services"
)

type contextKey string

const ctxIdentity contextKey = "identity"

// WithAuth requires a valid bearer token and attaches the decoded identity to
// the request context. Tampered and expired tokens both get the same 401
// body; the log line keeps the jwt library's distinction.
func WithAuth(tokenService services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				WriteError(w, http.StatusUnauthorized, "You are not logged in! Please log in to get access.")
				return
			}
			tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if tokenStr == "" {
				WriteError(w, http.StatusUnauthorized, "Invalid authentication token format.")
				return
			}
			identity, err := tokenService.Verify(tokenStr)
			if err != nil {
				log.Printf("auth: token rejected: %v", err)
				WriteError(w, http.StatusUnauthorized, "Invalid token or session expired. Please log in again.")
				return
			}
			ctx := context.WithValue(r.Context(), ctxIdentity, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentIdentity returns the authenticated identity, or the zero value on
// unauthenticated requests.
func CurrentIdentity(r *http.Request) services.Identity {
	if value, ok := r.Context().Value(ctxIdentity).(services.Identity); ok {
		return value
	}
	return services.Identity{}
}

// RequireCapability gates a route on the identity's role carrying the given
// capability. Runs after WithAuth.
func RequireCapability(cap services.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := CurrentIdentity(r)
			if identity.ID == "" {
				WriteError(w, http.StatusUnauthorized, "You are not logged in! Please log in to get access.")
				return
			}
			if !services.HasCapability(identity.Role, cap) {
				WriteError(w, http.StatusForbidden, "You do not have permission to perform this action.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
