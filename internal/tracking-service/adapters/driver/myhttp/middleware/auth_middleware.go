package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"bus-track/internal/tracking-service/adapters/driver/myhttp/handlers"

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

// ValidateRole parses tokenString and checks the role claim. It returns the
// token subject so callers can match it against the addressed device.
func (am *AuthMiddleware) ValidateRole(tokenString, role string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(am.accessSecret), nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse bearer token")
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid bearer token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid claims")
	}

	tokenRole, ok := claims["role"].(string)
	if !ok || tokenRole != role {
		return "", fmt.Errorf("role %q required", role)
	}

	subject, _ := claims["sub"].(string)
	return subject, nil
}

// RequireRole wraps next, rejecting requests whose token lacks the role claim.
func (am *AuthMiddleware) RequireRole(role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			handlers.JsonError(w, http.StatusUnauthorized, fmt.Errorf("empty bearer token"))
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		subject, err := am.ValidateRole(tokenString, role)
		if err != nil {
			status := http.StatusUnauthorized
			if strings.Contains(err.Error(), "role") {
				status = http.StatusForbidden
			}
			handlers.JsonError(w, status, err)
			return
		}

		if subject != "" {
			r.Header.Set("X-Subject", subject)
		}

		next.ServeHTTP(w, r)
	})
}
