package post

import (
	"context"

	"github.com/dmikhr/blog-platform/backend/internal/post/domain"
	"github.com/dmikhr/blog-platform/backend/internal/post/repository"
	userdomain "github.com/dmikhr/blog-platform/backend/internal/user/domain"
)

type mockPostRepo struct {
	createFunc       func(ctx context.Context, post domain.Post) (domain.WithAuthor, error)
	findByIDFunc     func(ctx context.Context, id domain.ID) (domain.WithAuthor, error)
	findAllFunc      func(ctx context.Context) ([]domain.WithAuthor, error)
	findByUserIDFunc func(ctx context.Context, userID userdomain.ID) ([]domain.WithAuthor, error)
	updateFunc       func(ctx context.Context, id domain.ID, title, content string) (domain.WithAuthor, error)
	deleteFunc       func(ctx context.Context, id domain.ID) error
}

func (m *mockPostRepo) Create(ctx context.Context, post domain.Post) (domain.WithAuthor, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, post)
	}
	return domain.WithAuthor{
		Post: domain.Post{
			ID:      1,
			Title:   post.Title,
			Content: post.Content,
			UserID:  post.UserID,
		},
		AuthorEmail: "owner@x.com",
	}, nil
}

func (m *mockPostRepo) FindByID(ctx context.Context, id domain.ID) (domain.WithAuthor, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.WithAuthor{}, repository.ErrPostNotFound
}

func (m *mockPostRepo) FindAll(ctx context.Context) ([]domain.WithAuthor, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockPostRepo) FindByUserID(ctx context.Context, userID userdomain.ID) ([]domain.WithAuthor, error) {
	if m.findByUserIDFunc != nil {
		return m.findByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockPostRepo) Update(ctx context.Context, id domain.ID, title, content string) (domain.WithAuthor, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, title, content)
	}
	return domain.WithAuthor{}, repository.ErrPostNotFound
}

func (m *mockPostRepo) Delete(ctx context.Context, id domain.ID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return repository.ErrPostNotFound
}

func storedPost(id domain.ID, ownerID userdomain.ID) domain.WithAuthor {
	return domain.WithAuthor{
		Post: domain.Post{
			ID:      id,
			Title:   "stored title",
			Content: "stored content",
			UserID:  ownerID,
		},
		AuthorEmail: "owner@x.com",
	}
}
