package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"auth-service/pkg/jwtutil"
	"auth-service/pkg/response"
)

type contextKey string

const (
	ContextUserID contextKey = "userID"
	ContextToken  contextKey = "token"
)

func GetUserID(ctx context.Context) (string, bool) {
	val, ok := ctx.Value(ContextUserID).(string)
	return val, ok
}

func GetToken(ctx context.Context) (string, bool) {
	val, ok := ctx.Value(ContextToken).(string)
	return val, ok
}

type AuthMiddleware struct {
	codec *jwtutil.Codec
}

func NewAuthMiddleware(codec *jwtutil.Codec) *AuthMiddleware {
	return &AuthMiddleware{codec: codec}
}

// RequireAuth resolves the session token from the request, validates it, and
// injects the user id into the context. Every failure reason collapses to the
// same 401 for the caller; the reason is only logged.
func (am *AuthMiddleware) RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)

			claims, err := am.codec.ParseAndValidate(token)
			if err != nil {
				log.Printf("session rejected: %v", err)
				response.Error(w, http.StatusUnauthorized, "Not authorized. Login again")
				return
			}

			ctx := context.WithValue(r.Context(), ContextUserID, claims.UserID)
			ctx = context.WithValue(ctx, ContextToken, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie("token"); err == nil {
		return cookie.Value
	}
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}
