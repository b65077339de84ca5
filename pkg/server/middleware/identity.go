package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const userIDKey contextKey = "user_id"

const userIDHeader = "X-User-ID"

// Identity lifts the authenticated user identifier set by the upstream
// auth layer into the request context. Anonymous requests pass through
// untouched; reports stay downloadable without a session.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if userID := req.Header.Get(userIDHeader); userID != "" {
			req = req.WithContext(context.WithValue(req.Context(), userIDKey, userID))
		}
		next.ServeHTTP(w, req)
	})
}

// UserIDFromContext returns the authenticated user identifier, or nil
// for anonymous requests.
func UserIDFromContext(ctx context.Context) *string {
	if userID, ok := ctx.Value(userIDKey).(string); ok {
		return &userID
	}
	return nil
}
