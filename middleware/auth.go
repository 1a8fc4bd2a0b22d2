package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/HadarPadael/facyBook-Server/logger"
)

type contextKey string

const callerKey contextKey = "caller"

// TokenVerifier resolves a bearer token to the handle it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// RequireAuth rejects requests without a valid "Authorization: Bearer" token
// and stores the resolved caller handle on the request context. Every
// ownership or relationship check downstream assumes this ran first.
func RequireAuth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				unauthorized(w, "Missing or invalid token")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			caller, err := tokens.Verify(tokenString)
			if err != nil || caller == "" {
				logger.Debugf("token rejected: %v", err)
				unauthorized(w, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), callerKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Caller returns the authenticated handle stored by RequireAuth, or "" when
// the request never passed through it.
func Caller(r *http.Request) string {
	if caller, ok := r.Context().Value(callerKey).(string); ok {
		return caller
	}
	return ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
