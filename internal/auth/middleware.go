package auth

import (
	"context"
	"net/http"
	"strings"

	"lilypay/internal/models"
)

type contextKey string

const claimsKey contextKey = "claims"

// ClaimsFromContext returns the authenticated user's claims, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}

// Middleware validates bearer tokens and places claims in the request context.
func (tm *TokenManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			http.Error(w, `{"success": false, "message": "No Authorization header provided"}`, http.StatusUnauthorized)
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, `{"success": false, "message": "Invalid Authorization format"}`, http.StatusUnauthorized)
			return
		}

		claims, err := tm.Verify(parts[1])
		if err != nil {
			http.Error(w, `{"success": false, "message": "Invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects requests whose session is not an admin session.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			http.Error(w, `{"success": false, "message": "Authentication required"}`, http.StatusUnauthorized)
			return
		}

		switch claims.Role {
		case models.RoleAdmin:
			next.ServeHTTP(w, r)
		case models.RoleCashier:
			http.Error(w, `{"success": false, "message": "Admin access required"}`, http.StatusForbidden)
		default:
			http.Error(w, `{"success": false, "message": "Unknown role"}`, http.StatusForbidden)
		}
	})
}
