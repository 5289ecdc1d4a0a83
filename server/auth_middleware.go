package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/linkedin-post-stats/auth"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyUserID stores the authenticated user ID
	ContextKeyUserID ContextKey = "user_id"
	// ContextKeySessionToken stores the raw session cookie value
	ContextKeySessionToken ContextKey = "session_token"
)

// RequireSession rejects requests without a live login session with 401 and
// otherwise puts the user id and session token on the request context.
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token := s.sessionToken(r)
			userID, ok := s.auth.CurrentUser(r.Context(), token)
			if !ok {
				writeJSON(w, http.StatusUnauthorized, messageResponse{Message: auth.MsgUnauthorized})
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUserID, userID)
			ctx = context.WithValue(ctx, ContextKeySessionToken, token)
			next(w, r.WithContext(ctx))
		}
	}
}

func userIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(ContextKeyUserID).(string)
	return userID
}

func sessionTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(ContextKeySessionToken).(string)
	return token
}
