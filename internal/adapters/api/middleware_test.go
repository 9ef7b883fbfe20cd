package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vinyldns/batchcore/internal/core/domain"
	"github.com/vinyldns/batchcore/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	authRepo := &testutil.MockAuthRepository{}
	mw := AuthMiddleware(authRepo)

	req := httptest.NewRequest(http.MethodGet, "/zones/batchrecordchanges", nil)
	rec := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsUnknownKey(t *testing.T) {
	authRepo := &testutil.MockAuthRepository{}
	authRepo.On("GetAPIKeyByHash", mock.Anything).Return(nil, nil)
	mw := AuthMiddleware(authRepo)

	req := httptest.NewRequest(http.MethodGet, "/zones/batchrecordchanges", nil)
	req.Header.Set("Authorization", "Bearer bad-key")
	rec := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	authRepo.AssertExpectations(t)
}

func TestAuthMiddlewareInjectsPrincipalForValidKey(t *testing.T) {
	authRepo := &testutil.MockAuthRepository{}
	authRepo.On("GetAPIKeyByHash", mock.Anything).Return(&domain.APIKey{
		ID: "key-1", TenantID: "tenant-1", Name: "ci", Role: domain.RoleAdmin, Active: true,
	}, nil)
	mw := AuthMiddleware(authRepo)

	var captured domain.AuthPrincipal
	req := httptest.NewRequest(http.MethodGet, "/zones/batchrecordchanges", nil)
	req.Header.Set("Authorization", "Bearer good-key")
	rec := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := principalFromContext(r.Context())
		assert.True(t, ok)
		captured = p
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tenant-1", captured.TenantID)
	assert.True(t, captured.IsAdmin)
}

func TestRequireRoleRejectsNonAdmin(t *testing.T) {
	h := RequireRole(domain.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodPost, "/zones", nil)
	ctx := context.WithValue(req.Context(), CtxAuthPrincipal, domain.AuthPrincipal{IsAdmin: false})
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
