package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"bus-track/internal/journey-service/adapters/driver/myhttp/handle"

	"github.com/golang-jwt/jwt"
)

// AuthMiddleware verifies bearer tokens minted by the surrounding product's
// auth system; issuing tokens is not this service's job.
type AuthMiddleware struct {
	accessSecret string
}

func NewAuthMiddleware(accessSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		accessSecret: accessSecret,
	}
}

// RequireRole wraps next, rejecting requests whose token lacks the role claim.
func (am *AuthMiddleware) RequireRole(role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			handle.JsonError(w, http.StatusUnauthorized, fmt.Errorf("empty bearer token"))
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			return []byte(am.accessSecret), nil
		})
		if err != nil {
			handle.JsonError(w, http.StatusUnauthorized, fmt.Errorf("failed to parse bearer token"))
			return
		}
		if !token.Valid {
			handle.JsonError(w, http.StatusUnauthorized, fmt.Errorf("invalid bearer token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			handle.JsonError(w, http.StatusUnauthorized, fmt.Errorf("invalid claims"))
			return
		}

		tokenRole, ok := claims["role"].(string)
		if !ok || tokenRole != role {
			handle.JsonError(w, http.StatusForbidden, fmt.Errorf("role %q required", role))
			return
		}

		if subject, ok := claims["sub"].(string); ok {
			r.Header.Set("X-Subject", subject)
		}

		next.ServeHTTP(w, r)
	})
}
