package service

import (
	"context"
	"errors"
	"time"

	commoncrypto "github.com/dmikhr/blog-platform/backend/internal/common/crypto"
	commonerrors "github.com/dmikhr/blog-platform/backend/internal/common/errors"
	"github.com/dmikhr/blog-platform/backend/internal/common/logger"
	postrepo "github.com/dmikhr/blog-platform/backend/internal/post/repository"
	"github.com/dmikhr/blog-platform/backend/internal/user/domain"
	userrepo "github.com/dmikhr/blog-platform/backend/internal/user/repository"
)

// UserService is the administrative surface over user records. There is no
// ownership restriction here; any authenticated identity may manage users.
type UserService struct {
	repo     userrepo.Repository
	postRepo postrepo.Repository
	hasher   commoncrypto.PasswordHasher
	log      *logger.Logger
}

func NewUserService(
	repo userrepo.Repository,
	postRepo postrepo.Repository,
	hasher commoncrypto.PasswordHasher,
	log *logger.Logger,
) *UserService {
	return &UserService{
		repo:     repo,
		postRepo: postRepo,
		hasher:   hasher,
		log:      log,
	}
}

type CreateInput struct {
	Email    string
	Password string
}

// UpdateInput fields are optional; a present password is re-hashed before
// storage.
type UpdateInput struct {
	Email    *string
	Password *string
}

type PostSummary struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserDTO is the public projection: id, email and the user's posts,
// assembled from separately fetched rows. The hash never appears here.
type UserDTO struct {
	ID    int64         `json:"id"`
	Email string        `json:"email"`
	Posts []PostSummary `json:"posts"`
}

type UserRef struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

func (s *UserService) FindAll(ctx context.Context) ([]UserDTO, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, commonerrors.ErrDatabaseError.WithCause(err)
	}

	dtos := make([]UserDTO, 0, len(users))
	for _, u := range users {
		dto, err := s.withPosts(ctx, u)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, dto)
	}

	return dtos, nil
}

func (s *UserService) FindOne(ctx context.Context, id domain.ID) (UserDTO, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return UserDTO{}, ErrUserNotFound
		}
		return UserDTO{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	return s.withPosts(ctx, user)
}

func (s *UserService) Create(ctx context.Context, input CreateInput) (UserRef, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return UserRef{}, commonerrors.ErrInternalError.WithCause(err)
	}

	user, err := s.repo.Create(ctx, input.Email, hash)
	if err != nil {
		if errors.Is(err, userrepo.ErrEmailAlreadyExists) {
			return UserRef{}, ErrEmailTaken
		}
		return UserRef{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": int64(user.ID),
		"action":  "user_created",
	}).Info("user created")

	return UserRef{ID: int64(user.ID), Email: user.Email}, nil
}

func (s *UserService) Update(ctx context.Context, id domain.ID, input UpdateInput) (UserRef, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return UserRef{}, ErrUserNotFound
		}
		return UserRef{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Password != nil {
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return UserRef{}, commonerrors.ErrInternalError.WithCause(err)
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, userrepo.ErrUserNotFound):
			return UserRef{}, ErrUserNotFound
		case errors.Is(err, userrepo.ErrEmailAlreadyExists):
			return UserRef{}, ErrEmailTaken
		}
		return UserRef{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": int64(id),
		"action":  "user_updated",
	}).Info("user updated")

	return UserRef{ID: int64(user.ID), Email: user.Email}, nil
}

func (s *UserService) Delete(ctx context.Context, id domain.ID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return commonerrors.ErrDatabaseError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": int64(id),
		"action":  "user_deleted",
	}).Info("user deleted")

	return nil
}

func (s *UserService) withPosts(ctx context.Context, user domain.User) (UserDTO, error) {
	posts, err := s.postRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return UserDTO{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	summaries := make([]PostSummary, 0, len(posts))
	for _, p := range posts {
		summaries = append(summaries, PostSummary{
			ID:        int64(p.ID),
			Title:     p.Title,
			Content:   p.Content,
			UserID:    int64(p.UserID),
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		})
	}

	return UserDTO{
		ID:    int64(user.ID),
		Email: user.Email,
		Posts: summaries,
	}, nil
}
