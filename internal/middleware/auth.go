package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/xelth-com/goodstrack/internal/models"
	"github.com/xelth-com/goodstrack/internal/utils"
)

type contextKey string

const UserContextKey contextKey = "user"

// Auth verifies bearer JWT tokens signed with secret and puts the session
// claims into the request context.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			// Bearer token
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := utils.ValidateToken(parts[1], secret)
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// WithClaims returns a context carrying the session claims
func WithClaims(ctx context.Context, claims *utils.SessionClaims) context.Context {
	return context.WithValue(ctx, UserContextKey, claims)
}

// ClaimsFromContext returns the session claims set by Auth
func ClaimsFromContext(ctx context.Context) (*utils.SessionClaims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*utils.SessionClaims)
	return claims, ok && claims != nil
}

// ContextAuthenticator resolves the current caller from the request context
type ContextAuthenticator struct{}

// CurrentCallerID returns the authenticated user id
func (ContextAuthenticator) CurrentCallerID(ctx context.Context) (string, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok || claims.UserID == "" {
		return "", false
	}
	return claims.UserID, true
}

// CurrentCallerMetadata returns the carrier fields carried by the session
func (ContextAuthenticator) CurrentCallerMetadata(ctx context.Context) models.CarrierProfile {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return models.CarrierProfile{}
	}
	return claims.Carrier
}
