package api

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/vinyldns/batchcore/internal/core/domain"
	"github.com/vinyldns/batchcore/internal/core/ports"
)

type contextKey string

const (
	CtxAuthPrincipal contextKey = "auth_principal"
)

// AuthMiddleware authenticates the bearer API key against authRepo and
// injects the resulting AuthPrincipal into the request context. Unlike the
// teacher's original middleware, this repository method is actually backed
// by a query rather than existing only in test doubles.
func AuthMiddleware(authRepo ports.AuthRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "Unauthorized: missing or invalid authorization header", http.StatusUnauthorized)
				return
			}

			key := strings.TrimPrefix(authHeader, "Bearer ")
			hash := sha256.Sum256([]byte(key))
			keyHash := hex.EncodeToString(hash[:])

			apiKey, err := authRepo.GetAPIKeyByHash(r.Context(), keyHash)
			if err != nil {
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			if apiKey == nil || !apiKey.Active {
				http.Error(w, "Unauthorized: invalid or inactive API key", http.StatusUnauthorized)
				return
			}

			if apiKey.ExpiresAt != nil && apiKey.ExpiresAt.Before(time.Now()) {
				http.Error(w, "Unauthorized: API key expired", http.StatusUnauthorized)
				return
			}

			principal := domain.AuthPrincipal{
				UserID:   apiKey.ID,
				UserName: apiKey.Name,
				TenantID: apiKey.TenantID,
				IsAdmin:  apiKey.Role == domain.RoleAdmin,
			}

			ctx := context.WithValue(r.Context(), CtxAuthPrincipal, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole restricts a route to admin principals. The batch pipeline has
// only two roles (spec §1's "authenticated user" vs. an administrative
// operator); reader-role principals may submit and view their own batches
// but never those of other users (enforced in the service layer instead).
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := r.Context().Value(CtxAuthPrincipal).(domain.AuthPrincipal)
			if !ok {
				http.Error(w, "Forbidden: principal not found in context", http.StatusForbidden)
				return
			}

			allowed := false
			for _, role := range roles {
				if role == domain.RoleAdmin && principal.IsAdmin {
					allowed = true
					break
				}
			}

			if !allowed {
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// principalFromContext extracts the AuthPrincipal injected by AuthMiddleware.
func principalFromContext(ctx context.Context) (domain.AuthPrincipal, bool) {
	p, ok := ctx.Value(CtxAuthPrincipal).(domain.AuthPrincipal)
	return p, ok
}
