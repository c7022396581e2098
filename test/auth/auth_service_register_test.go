package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/dmikhr/blog-platform/backend/internal/auth/service"
	commonerrors "github.com/dmikhr/blog-platform/backend/internal/common/errors"
	userdomain "github.com/dmikhr/blog-platform/backend/internal/user/domain"
	userrepo "github.com/dmikhr/blog-platform/backend/internal/user/repository"
)

func TestAuthService_Register_Success(t *testing.T) {
	svc, repo, _, _ := setupAuthService(t)

	var storedHash string
	repo.createFunc = func(ctx context.Context, email, passwordHash string) (userdomain.User, error) {
		storedHash = passwordHash
		return userdomain.User{ID: 1, Email: email, PasswordHash: passwordHash}, nil
	}

	result, err := svc.Register(context.Background(), service.Credentials{
		Email:    "a@x.com",
		Password: "password123",
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.ID != 1 || result.Email != "a@x.com" {
		t.Errorf("unexpected projection: %+v", result)
	}

	if storedHash == "password123" {
		t.Error("repository received the plaintext password instead of a hash")
	}
	if storedHash != "hashed_password123" {
		t.Errorf("expected hashed password to be persisted, got %q", storedHash)
	}
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	svc, repo, _, _ := setupAuthService(t)

	repo.createFunc = func(ctx context.Context, email, passwordHash string) (userdomain.User, error) {
		return userdomain.User{}, userrepo.ErrEmailAlreadyExists
	}

	_, err := svc.Register(context.Background(), service.Credentials{
		Email:    "a@x.com",
		Password: "password123",
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, service.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}

	domainErr, ok := commonerrors.AsDomainError(err)
	if !ok || domainErr.HTTPStatus() != 409 {
		t.Errorf("expected conflict status 409, got %v", err)
	}
}

func TestAuthService_Register_DatabaseError(t *testing.T) {
	svc, repo, _, _ := setupAuthService(t)

	repo.createFunc = func(ctx context.Context, email, passwordHash string) (userdomain.User, error) {
		return userdomain.User{}, errors.New("database connection error")
	}

	_, err := svc.Register(context.Background(), service.Credentials{
		Email:    "a@x.com",
		Password: "password123",
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if domainErr, ok := commonerrors.AsDomainError(err); !ok || domainErr.Code() != "DATABASE_ERROR" {
		t.Errorf("expected DATABASE_ERROR, got %v", err)
	}
}

func TestAuthService_Register_HashError(t *testing.T) {
	svc, _, hasher, _ := setupAuthService(t)

	hasher.hashFunc = func(password string) (string, error) {
		return "", errors.New("hash failed")
	}

	_, err := svc.Register(context.Background(), service.Credentials{
		Email:    "a@x.com",
		Password: "password123",
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if domainErr, ok := commonerrors.AsDomainError(err); !ok || domainErr.Code() != "INTERNAL_ERROR" {
		t.Errorf("expected INTERNAL_ERROR, got %v", err)
	}
}
