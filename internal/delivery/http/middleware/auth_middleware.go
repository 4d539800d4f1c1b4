package middleware

import (
	"context"
	"net/http"

	"parcelrate-backend/internal/domain"
	"parcelrate-backend/pkg/utils"
)

// AuthMiddleware authenticates the request from its bearer token or access
// cookie and places the resulting user in the context. Rate resolution is
// public; only the audit read routes sit behind this.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := utils.ExtractClaims(r)
		if err != nil {
			http.Error(w, "Unauthorized: invalid or missing token", http.StatusUnauthorized)
			return
		}

		// The token claims are trusted as-is; roles change rarely enough
		// that a DB round trip per request buys nothing here.
		user := &domain.User{
			ID:    claims.UserID,
			Email: claims.Email,
			Role:  claims.Role,
		}

		ctx := context.WithValue(r.Context(), domain.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
