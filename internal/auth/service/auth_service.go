package service

import (
	"context"
	"errors"

	commoncrypto "github.com/dmikhr/blog-platform/backend/internal/common/crypto"
	commonerrors "github.com/dmikhr/blog-platform/backend/internal/common/errors"
	"github.com/dmikhr/blog-platform/backend/internal/common/logger"
	"github.com/dmikhr/blog-platform/backend/internal/observability/metrics"
	userdomain "github.com/dmikhr/blog-platform/backend/internal/user/domain"
	userrepo "github.com/dmikhr/blog-platform/backend/internal/user/repository"
)

type AuthService struct {
	repo   userrepo.Repository
	hasher commoncrypto.PasswordHasher
	tokens *TokenIssuer
	log    *logger.Logger
}

func NewAuthService(
	repo userrepo.Repository,
	hasher commoncrypto.PasswordHasher,
	tokens *TokenIssuer,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		log:    log,
	}
}

type Credentials struct {
	Email    string
	Password string
}

// RegisteredUser is the public-safe projection returned by Register; the
// password hash never leaves the service.
type RegisteredUser struct {
	ID    userdomain.ID `json:"id"`
	Email string        `json:"email"`
}

type LoginResult struct {
	AccessToken string `json:"access_token"`
}

func (s *AuthService) Register(ctx context.Context, input Credentials) (RegisteredUser, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "register_attempt",
	}).Info("register attempt")

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return RegisteredUser{}, commonerrors.ErrInternalError.WithCause(err)
	}

	user, err := s.repo.Create(ctx, input.Email, hash)
	if err != nil {
		if errors.Is(err, userrepo.ErrEmailAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "register_email_exists",
			}).Warn("register failed: email already exists")
			return RegisteredUser{}, ErrEmailTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_create_failed",
		}).Errorf("register failed: %v", err)
		return RegisteredUser{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	metrics.RegistrationsTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": int64(user.ID),
		"action":  "register_success",
	}).Info("register success")

	return RegisteredUser{ID: user.ID, Email: user.Email}, nil
}

func (s *AuthService) Login(ctx context.Context, input Credentials) (LoginResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "login_attempt",
	}).Info("login attempt")

	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "login_user_not_found",
			}).Warn("login failed: not found")
			metrics.LoginFailuresTotal.Inc()
			return LoginResult{}, ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return LoginResult{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_invalid_password",
		}).Warn("login failed: invalid password")
		metrics.LoginFailuresTotal.Inc()
		return LoginResult{}, ErrInvalidCredentials
	}

	accessToken, _, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":   input.Email,
			"user_id": int64(user.ID),
			"action":  "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return LoginResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": int64(user.ID),
		"action":  "login_success",
	}).Info("login success")

	return LoginResult{AccessToken: accessToken}, nil
}
