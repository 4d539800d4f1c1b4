package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"parcelrate-backend/internal/domain"
	"parcelrate-backend/pkg/utils"
)

func protectedEndpoint(t *testing.T) http.Handler {
	t.Helper()
	return AuthMiddleware(AdminMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
		if !ok || user == nil {
			t.Error("user missing from context inside handler")
		}
		w.WriteHeader(http.StatusOK)
	})))
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	utils.SetSecret("test-secret")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/calculations", nil)
	rec := httptest.NewRecorder()
	protectedEndpoint(t).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthMiddlewareRejectsInvalidToken(t *testing.T) {
	utils.SetSecret("test-secret")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/calculations", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	protectedEndpoint(t).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAdminMiddlewareRejectsNonAdmin(t *testing.T) {
	utils.SetSecret("test-secret")

	token, err := utils.GenerateJWT("u1", "user@example.com", "user", time.Hour)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/calculations", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protectedEndpoint(t).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestAdminMiddlewareAllowsAdmin(t *testing.T) {
	utils.SetSecret("test-secret")

	token, err := utils.GenerateJWT("a1", "admin@example.com", "admin", time.Hour)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/calculations", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protectedEndpoint(t).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
