package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/taiwoajasa245/memories-api/pkg/response"
	"github.com/taiwoajasa245/memories-api/pkg/util"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// AuthMiddleware requires a valid bearer token when a site password is set.
func (s *AuthService) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		claims, ok := s.claimsFrom(w, r)
		if !ok {
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *AuthService) claimsFrom(w http.ResponseWriter, r *http.Request) (*util.Claims, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		response.Error(w, http.StatusUnauthorized, "Missing Authorization header", "not logged in")
		return nil, false
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		response.Error(w, http.StatusUnauthorized, "Invalid token format", "")
		return nil, false
	}

	claims, err := s.Verify(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		response.Error(w, http.StatusUnauthorized, "Invalid or expired token", err.Error())
		return nil, false
	}
	return claims, true
}

func GetClaimsFromContext(r *http.Request) (*util.Claims, bool) {
	claims, ok := r.Context().Value(claimsContextKey).(*util.Claims)
	return claims, ok
}
