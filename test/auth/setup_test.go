package auth

import (
	"testing"
	"time"

	"github.com/dmikhr/blog-platform/backend/internal/auth/service"
	"github.com/dmikhr/blog-platform/backend/internal/common/clock"
	"github.com/dmikhr/blog-platform/backend/internal/common/logger"
)

const testSecret = "test-secret-key-must-be-at-least-32-bytes-long"

func setupAuthService(t *testing.T) (*service.AuthService, *mockUserRepo, *mockHasher, *clock.MockClock) {
	t.Helper()

	repo := &mockUserRepo{}
	hasher := &mockHasher{}
	clk := clock.NewMockClock(time.Now())

	log, err := logger.New("", "test", "error")
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}

	issuer := service.NewTokenIssuer(testSecret, &mockIDGenerator{}, 15*time.Minute, clk)
	svc := service.NewAuthService(repo, hasher, issuer, log)

	return svc, repo, hasher, clk
}
