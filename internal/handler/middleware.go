package handler

import (
	"context"
	"net/http"
	"strings"

	"pandar-wallet/internal/auth"
	"pandar-wallet/internal/errors"
	"pandar-wallet/internal/store"
)

type contextKey string

const userIDKey contextKey = "userID"

// Auth validates the bearer token and resolves the acting user. The
// layers below only ever see a resolved user id, never raw credentials.
func Auth(tokens *auth.Manager, users *store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString := strings.TrimPrefix(header, "Bearer ")
			if header == "" || tokenString == header {
				writeError(w, errors.ErrUnauthorized)
				return
			}

			userID, err := tokens.Verify(tokenString)
			if err != nil {
				writeError(w, errors.NewAppError(errors.Unauthorized, "invalid or expired token"))
				return
			}
			if !users.Has(userID) {
				writeError(w, errors.NewAppError(errors.Unauthorized, "user not found"))
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user id stored by Auth. Empty for
// unauthenticated routes.
func UserID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}
