// Middleware resolving the acting user from the external chat identity.

package api

import (
	"context"
	"log"
	"net/http"

	"github.com/ademenev/booktrack/internal/models"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey string

const userContextKey = contextKey("user")

// IdentityMiddleware resolves the external identity asserted by the chat
// transport into an internal user and injects it into the request context.
// First contact creates the user row; the underlying lookup is idempotent,
// so every request with the same external id resolves to the same user.
func (s *Server) IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		externalID := r.Header.Get("X-External-ID")
		if externalID == "" {
			RespondWithError(w, http.StatusUnauthorized, "Missing X-External-ID header")
			return
		}

		hints := &models.ProfileHints{
			Username: r.Header.Get("X-Username"),
			FullName: r.Header.Get("X-Full-Name"),
		}
		user, err := s.store.GetOrCreateUser(externalID, hints)
		if err != nil {
			log.Printf("Error resolving user for external id %s: %v", externalID, err)
			RespondWithError(w, http.StatusInternalServerError, "Could not resolve user")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getUserFromContext is a helper function to safely retrieve the user object
// from the request context. It returns nil if the user is not found.
func getUserFromContext(r *http.Request) *models.User {
	user, ok := r.Context().Value(userContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
