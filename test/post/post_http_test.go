package post

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authservice "github.com/dmikhr/blog-platform/backend/internal/auth/service"
	"github.com/dmikhr/blog-platform/backend/internal/common/clock"
	"github.com/dmikhr/blog-platform/backend/internal/common/config"
	"github.com/dmikhr/blog-platform/backend/internal/common/crypto"
	"github.com/dmikhr/blog-platform/backend/internal/common/jwtverify"
	"github.com/dmikhr/blog-platform/backend/internal/common/logger"
	"github.com/dmikhr/blog-platform/backend/internal/post/domain"
	posthttp "github.com/dmikhr/blog-platform/backend/internal/post/http"
	"github.com/dmikhr/blog-platform/backend/internal/post/service"
	userdomain "github.com/dmikhr/blog-platform/backend/internal/user/domain"
)

const testSecret = "test-secret-key-must-be-at-least-32-bytes-long"

func setupGuardedHandler(t *testing.T) (http.Handler, *mockPostRepo) {
	t.Helper()

	repo := &mockPostRepo{}
	log, err := logger.New("", "test", "error")
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}

	svc := service.NewPostService(repo, log)
	cfg := config.Config{RequestTimeout: 5 * time.Second}
	handler := posthttp.NewHandler(svc, cfg, log)

	return jwtverify.Middleware(testSecret, log)(handler), repo
}

func bearerToken(t *testing.T, userID userdomain.ID) string {
	t.Helper()

	issuer := authservice.NewTokenIssuer(testSecret, crypto.NewUUIDGenerator(), 15*time.Minute, clock.NewMockClock(time.Now()))
	token, _, err := issuer.IssueAccessToken(userdomain.User{ID: userID, Email: "actor@x.com"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	return token
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPostHTTP_ListRequiresToken(t *testing.T) {
	h, repo := setupGuardedHandler(t)

	repo.findAllFunc = func(ctx context.Context) ([]domain.WithAuthor, error) {
		return []domain.WithAuthor{storedPost(1, ownerID)}, nil
	}

	rec := doJSON(t, h, http.MethodGet, "/api/posts", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/posts", bearerToken(t, strangerID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", rec.Code)
	}

	var posts []service.PostDTO
	if err := json.NewDecoder(rec.Body).Decode(&posts); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != 1 {
		t.Errorf("unexpected listing: %+v", posts)
	}
}

func TestPostHTTP_CreateOwnedByTokenSubject(t *testing.T) {
	h, repo := setupGuardedHandler(t)

	var receivedOwner userdomain.ID
	repo.createFunc = func(ctx context.Context, post domain.Post) (domain.WithAuthor, error) {
		receivedOwner = post.UserID
		return domain.WithAuthor{
			Post: domain.Post{ID: 5, Title: post.Title, Content: post.Content, UserID: post.UserID},
		}, nil
	}

	rec := doJSON(t, h, http.MethodPost, "/api/posts", bearerToken(t, ownerID), map[string]string{
		"title":   "hello",
		"content": "world",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if receivedOwner != ownerID {
		t.Errorf("expected post owned by %d, got %d", ownerID, receivedOwner)
	}
}

func TestPostHTTP_CreateValidation(t *testing.T) {
	h, _ := setupGuardedHandler(t)
	token := bearerToken(t, ownerID)

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}

	cases := []struct {
		name string
		body map[string]string
	}{
		{"missing title", map[string]string{"content": "world"}},
		{"missing content", map[string]string{"title": "hello"}},
		{"title too long", map[string]string{"title": string(long), "content": "world"}},
		{"content too long", map[string]string{"title": "hello", "content": string(long)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/api/posts", token, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestPostHTTP_UpdateByNonOwnerForbidden(t *testing.T) {
	h, repo := setupGuardedHandler(t)

	repo.findByIDFunc = func(ctx context.Context, id domain.ID) (domain.WithAuthor, error) {
		return storedPost(id, ownerID), nil
	}

	rec := doJSON(t, h, http.MethodPut, "/api/posts/1", bearerToken(t, strangerID), map[string]string{
		"title": "hijacked",
	})

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestPostHTTP_UpdateMissingPostIs404(t *testing.T) {
	h, _ := setupGuardedHandler(t)

	rec := doJSON(t, h, http.MethodPut, "/api/posts/999", bearerToken(t, strangerID), map[string]string{
		"title": "whatever",
	})

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestPostHTTP_DeleteByOwner(t *testing.T) {
	h, repo := setupGuardedHandler(t)

	repo.findByIDFunc = func(ctx context.Context, id domain.ID) (domain.WithAuthor, error) {
		return storedPost(id, ownerID), nil
	}
	repo.deleteFunc = func(ctx context.Context, id domain.ID) error {
		return nil
	}

	rec := doJSON(t, h, http.MethodDelete, "/api/posts/1", bearerToken(t, ownerID), nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp["message"] != "Post deleted successfully" {
		t.Errorf("unexpected delete confirmation: %+v", resp)
	}
}

func TestPostHTTP_InvalidIDFormat(t *testing.T) {
	h, _ := setupGuardedHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/api/posts/abc", bearerToken(t, ownerID), nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestPostHTTP_ListByUser(t *testing.T) {
	h, repo := setupGuardedHandler(t)

	var requested userdomain.ID
	repo.findByUserIDFunc = func(ctx context.Context, userID userdomain.ID) ([]domain.WithAuthor, error) {
		requested = userID
		return []domain.WithAuthor{storedPost(1, userID)}, nil
	}

	rec := doJSON(t, h, http.MethodGet, "/api/posts/user/10", bearerToken(t, strangerID), nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if requested != 10 {
		t.Errorf("expected lookup for user 10, got %d", requested)
	}
}
