package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/dmikhr/blog-platform/backend/internal/auth/service"
	commonerrors "github.com/dmikhr/blog-platform/backend/internal/common/errors"
	"github.com/dmikhr/blog-platform/backend/internal/common/jwtverify"
	userdomain "github.com/dmikhr/blog-platform/backend/internal/user/domain"
	userrepo "github.com/dmikhr/blog-platform/backend/internal/user/repository"
)

func TestAuthService_Login_Success(t *testing.T) {
	svc, repo, hasher, _ := setupAuthService(t)

	email := "a@x.com"
	password := "password123"
	hashedPassword := "hashed_password123"

	repo.findByEmailFunc = func(ctx context.Context, e string) (userdomain.User, error) {
		if e != email {
			t.Errorf("expected email %s, got %s", email, e)
		}
		return userdomain.User{ID: 7, Email: email, PasswordHash: hashedPassword}, nil
	}

	hasher.compareFunc = func(hash string, pwd string) error {
		if hash != hashedPassword || pwd != password {
			return errors.New("password mismatch")
		}
		return nil
	}

	result, err := svc.Login(context.Background(), service.Credentials{
		Email:    email,
		Password: password,
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.AccessToken == "" {
		t.Fatal("expected access token to be set")
	}

	claims, err := jwtverify.ParseToken(result.AccessToken, []byte(testSecret))
	if err != nil {
		t.Fatalf("issued token failed verification: %v", err)
	}
	if claims.UserID != 7 || claims.Email != email {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_UnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	svc, repo, hasher, _ := setupAuthService(t)

	repo.findByEmailFunc = func(ctx context.Context, email string) (userdomain.User, error) {
		if email == "known@x.com" {
			return userdomain.User{ID: 1, Email: email, PasswordHash: "hashed_right"}, nil
		}
		return userdomain.User{}, userrepo.ErrUserNotFound
	}
	hasher.compareFunc = func(hash string, password string) error {
		return errors.New("password mismatch")
	}

	_, unknownErr := svc.Login(context.Background(), service.Credentials{
		Email:    "missing@x.com",
		Password: "password123",
	})
	_, wrongPwErr := svc.Login(context.Background(), service.Credentials{
		Email:    "known@x.com",
		Password: "wrongpass",
	})

	if unknownErr == nil || wrongPwErr == nil {
		t.Fatal("expected both logins to fail")
	}

	if !errors.Is(unknownErr, service.ErrInvalidCredentials) || !errors.Is(wrongPwErr, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v and %v", unknownErr, wrongPwErr)
	}

	unknownDomain, _ := commonerrors.AsDomainError(unknownErr)
	wrongDomain, _ := commonerrors.AsDomainError(wrongPwErr)
	if unknownDomain.Code() != wrongDomain.Code() ||
		unknownDomain.HTTPStatus() != wrongDomain.HTTPStatus() ||
		unknownDomain.Message() != wrongDomain.Message() {
		t.Error("unknown-email and wrong-password failures must be identical")
	}
	if unknownDomain.HTTPStatus() != 401 {
		t.Errorf("expected 401, got %d", unknownDomain.HTTPStatus())
	}
}

func TestAuthService_Login_DatabaseError(t *testing.T) {
	svc, repo, _, _ := setupAuthService(t)

	repo.findByEmailFunc = func(ctx context.Context, email string) (userdomain.User, error) {
		return userdomain.User{}, errors.New("database connection error")
	}

	_, err := svc.Login(context.Background(), service.Credentials{
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

func TestAuthService_RegisterThenLogin_RoundTrip(t *testing.T) {
	svc, repo, hasher, _ := setupAuthService(t)

	var stored userdomain.User
	repo.createFunc = func(ctx context.Context, email, passwordHash string) (userdomain.User, error) {
		stored = userdomain.User{ID: 1, Email: email, PasswordHash: passwordHash}
		return stored, nil
	}
	repo.findByEmailFunc = func(ctx context.Context, email string) (userdomain.User, error) {
		if stored.Email == email {
			return stored, nil
		}
		return userdomain.User{}, userrepo.ErrUserNotFound
	}
	hasher.compareFunc = func(hash string, password string) error {
		if hash != "hashed_"+password {
			return errors.New("password mismatch")
		}
		return nil
	}

	if _, err := svc.Register(context.Background(), service.Credentials{
		Email:    "a@x.com",
		Password: "password123",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), service.Credentials{
		Email:    "a@x.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("login with registered credentials failed: %v", err)
	}

	if _, err := jwtverify.ParseToken(result.AccessToken, []byte(testSecret)); err != nil {
		t.Errorf("guard rejected a freshly issued token: %v", err)
	}
}
