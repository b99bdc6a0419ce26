package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKeyType string

const claimsKey contextKeyType = "claims"

// Claims represents the token claims extracted by the auth middleware.
// The role fields are a snapshot taken at token issuance; they do not
// reflect role changes made after the token was issued.
type Claims struct {
	PrincipalID string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	RoleID      int    `json:"role_id"`
	RoleName    string `json:"role_name"`
	RoleLevel   int    `json:"role_level"`
	IsCompany   bool   `json:"is_company"`
	CompanyID   string `json:"company_id,omitempty"`
}

// TokenValidator validates a bearer token and returns its claims.
// This allows the router to inject the token codec without a package cycle.
type TokenValidator func(token string) (*Claims, bool)

// Auth validates bearer tokens and injects the decoded claims into the
// request context. Missing or malformed headers are rejected before the
// validator runs.
func Auth(validate TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				writeAuthError(w, "invalid authorization header format")
				return
			}

			claims, ok := validate(parts[1])
			if !ok {
				writeAuthError(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireLevel checks the authenticated principal's role level against the
// required level using the given policy. Must be mounted after Auth.
func RequireLevel(policy func(tokenLevel, required int) bool, required int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil || !policy(claims.RoleLevel, required) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"code":    "FORBIDDEN",
					"message": "insufficient permissions",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFromContext extracts the decoded token claims from the request context.
// Returns nil if the request did not pass through Auth.
func ClaimsFromContext(ctx context.Context) *Claims {
	if claims, ok := ctx.Value(claimsKey).(*Claims); ok {
		return claims
	}
	return nil
}

// PrincipalIDFromContext extracts the authenticated principal's ID from context.
func PrincipalIDFromContext(ctx context.Context) string {
	if claims := ClaimsFromContext(ctx); claims != nil {
		return claims.PrincipalID
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    "UNAUTHORIZED",
		"message": message,
	})
}
