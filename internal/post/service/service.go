package service

import (
	"context"
	"errors"
	"time"

	commonerrors "github.com/dmikhr/blog-platform/backend/internal/common/errors"
	"github.com/dmikhr/blog-platform/backend/internal/common/logger"
	"github.com/dmikhr/blog-platform/backend/internal/post/domain"
	"github.com/dmikhr/blog-platform/backend/internal/post/repository"
	userdomain "github.com/dmikhr/blog-platform/backend/internal/user/domain"
)

type PostService struct {
	repo repository.Repository
	log  *logger.Logger
}

func NewPostService(repo repository.Repository, log *logger.Logger) *PostService {
	return &PostService{repo: repo, log: log}
}

type CreateInput struct {
	Title   string
	Content string
}

// UpdateInput fields are optional; nil means keep the stored value.
type UpdateInput struct {
	Title   *string
	Content *string
}

type Author struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type PostDTO struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	User      Author    `json:"user"`
}

func (s *PostService) FindAll(ctx context.Context) ([]PostDTO, error) {
	posts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, commonerrors.ErrDatabaseError.WithCause(err)
	}
	return toDTOs(posts), nil
}

func (s *PostService) FindOne(ctx context.Context, id domain.ID) (PostDTO, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return PostDTO{}, ErrPostNotFound
		}
		return PostDTO{}, commonerrors.ErrDatabaseError.WithCause(err)
	}
	return toDTO(post), nil
}

func (s *PostService) FindByUser(ctx context.Context, userID userdomain.ID) ([]PostDTO, error) {
	posts, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, commonerrors.ErrDatabaseError.WithCause(err)
	}
	return toDTOs(posts), nil
}

// Create associates the new post with the acting identity; callers cannot
// pick an arbitrary owner.
func (s *PostService) Create(ctx context.Context, input CreateInput, actorID userdomain.ID) (PostDTO, error) {
	created, err := s.repo.Create(ctx, domain.Post{
		Title:   input.Title,
		Content: input.Content,
		UserID:  actorID,
	})
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": int64(actorID),
			"action":  "post_create_failed",
		}).Errorf("post create failed: %v", err)
		return PostDTO{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"post_id": int64(created.ID),
		"user_id": int64(actorID),
		"action":  "post_created",
	}).Info("post created")

	return toDTO(created), nil
}

func (s *PostService) Update(ctx context.Context, id domain.ID, input UpdateInput, actorID userdomain.ID) (PostDTO, error) {
	post, err := s.resolveOwned(ctx, id, actorID, "update")
	if err != nil {
		return PostDTO{}, err
	}

	title := post.Title
	content := post.Content
	if input.Title != nil {
		title = *input.Title
	}
	if input.Content != nil {
		content = *input.Content
	}

	updated, err := s.repo.Update(ctx, id, title, content)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return PostDTO{}, ErrPostNotFound
		}
		return PostDTO{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"post_id": int64(id),
		"user_id": int64(actorID),
		"action":  "post_updated",
	}).Info("post updated")

	return toDTO(updated), nil
}

func (s *PostService) Delete(ctx context.Context, id domain.ID, actorID userdomain.ID) error {
	if _, err := s.resolveOwned(ctx, id, actorID, "delete"); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return ErrPostNotFound
		}
		return commonerrors.ErrDatabaseError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"post_id": int64(id),
		"user_id": int64(actorID),
		"action":  "post_deleted",
	}).Info("post deleted")

	return nil
}

// resolveOwned fetches the target post and enforces the ownership rule for
// mutating operations. Missing post wins over the ownership check.
func (s *PostService) resolveOwned(ctx context.Context, id domain.ID, actorID userdomain.ID, op string) (domain.WithAuthor, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return domain.WithAuthor{}, ErrPostNotFound
		}
		return domain.WithAuthor{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	if post.UserID != actorID {
		s.log.WithFields(ctx, logger.Fields{
			"post_id":  int64(id),
			"owner_id": int64(post.UserID),
			"actor_id": int64(actorID),
			"action":   "post_" + op + "_forbidden",
		}).Warnf("post %s rejected: actor is not the owner", op)
		return domain.WithAuthor{}, ErrNotPostOwner
	}

	return post, nil
}

func toDTO(p domain.WithAuthor) PostDTO {
	return PostDTO{
		ID:        int64(p.ID),
		Title:     p.Title,
		Content:   p.Content,
		UserID:    int64(p.UserID),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		User: Author{
			ID:    int64(p.UserID),
			Email: p.AuthorEmail,
		},
	}
}

func toDTOs(posts []domain.WithAuthor) []PostDTO {
	dtos := make([]PostDTO, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, toDTO(p))
	}
	return dtos
}
