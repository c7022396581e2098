package jwtverify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmikhr/blog-platform/backend/internal/auth/service"
	"github.com/dmikhr/blog-platform/backend/internal/common/clock"
	"github.com/dmikhr/blog-platform/backend/internal/common/crypto"
	"github.com/dmikhr/blog-platform/backend/internal/common/jwtverify"
	"github.com/dmikhr/blog-platform/backend/internal/common/logger"
	userdomain "github.com/dmikhr/blog-platform/backend/internal/user/domain"
)

const testSecret = "test-secret-key-must-be-at-least-32-bytes-long"

func setupGuard(t *testing.T) http.Handler {
	t.Helper()

	log, err := logger.New("", "test", "error")
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := jwtverify.FromContext(r.Context())
		if !ok {
			t.Error("claims missing from context behind the guard")
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(claims); err != nil {
			t.Errorf("encode claims: %v", err)
		}
	})

	return jwtverify.Middleware(testSecret, log)(inner)
}

func issueToken(t *testing.T, issuedAt time.Time) string {
	t.Helper()

	issuer := service.NewTokenIssuer(testSecret, crypto.NewUUIDGenerator(), 15*time.Minute, clock.NewMockClock(issuedAt))
	token, _, err := issuer.IssueAccessToken(userdomain.User{ID: 42, Email: "a@x.com"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	return token
}

func TestMiddleware_ValidTokenPassesWithClaims(t *testing.T) {
	guard := setupGuard(t)
	token := issueToken(t, time.Now())

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	guard.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var claims jwtverify.Claims
	if err := json.NewDecoder(rec.Body).Decode(&claims); err != nil {
		t.Fatalf("decode claims: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "a@x.com" {
		t.Errorf("unexpected claims behind guard: %+v", claims)
	}
}

func TestMiddleware_MissingHeaderRejected(t *testing.T) {
	guard := setupGuard(t)

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	rec := httptest.NewRecorder()
	guard.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
}

func TestMiddleware_MissingBearerPrefixRejected(t *testing.T) {
	guard := setupGuard(t)
	token := issueToken(t, time.Now())

	// A perfectly valid token still fails without the Bearer scheme.
	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Authorization", token)
	rec := httptest.NewRecorder()
	guard.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
}

func TestMiddleware_TamperedTokenRejected(t *testing.T) {
	guard := setupGuard(t)
	token := issueToken(t, time.Now())

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected three token segments, got %d", len(parts))
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Authorization", "Bearer "+tampered)
	rec := httptest.NewRecorder()
	guard.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
}

func TestMiddleware_ExpiredTokenRejected(t *testing.T) {
	guard := setupGuard(t)
	token := issueToken(t, time.Now().Add(-time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	guard.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
}

func TestMiddleware_GarbageTokenRejected(t *testing.T) {
	guard := setupGuard(t)

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	guard.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
}
