package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kyrylklymenko/BankingManagementSystem/internal/domain"
)

func TestPrincipal_AllowsForwardedPrincipal(t *testing.T) {
	var seen domain.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = PrincipalFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Auth-Client-Id", "7")
	req.Header.Set("X-Auth-Role", "Client")

	rr := httptest.NewRecorder()
	Principal(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if seen.ClientID != 7 || seen.Role != domain.RoleClient {
		t.Fatalf("principal = %+v, want client 7 with Client role", seen)
	}
}

func TestPrincipal_RejectsMissingHeaders(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rr := httptest.NewRecorder()
	Principal(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestPrincipal_RejectsUnknownRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Auth-Client-Id", "7")
	req.Header.Set("X-Auth-Role", "Superuser")

	rr := httptest.NewRecorder()
	Principal(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestRequireRole_BlocksOtherRoles(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Principal(RequireRole(domain.RoleManager)(next))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Auth-Client-Id", "7")
	req.Header.Set("X-Auth-Role", "Client")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, rr.Code)
	}
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Principal(RequireRole(domain.RoleManager)(next))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Auth-Client-Id", "3")
	req.Header.Set("X-Auth-Role", "Manager")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}
