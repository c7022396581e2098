package user

import (
	"context"

	postdomain "github.com/dmikhr/blog-platform/backend/internal/post/domain"
	"github.com/dmikhr/blog-platform/backend/internal/user/domain"
	"github.com/dmikhr/blog-platform/backend/internal/user/repository"
)

type mockUserRepo struct {
	createFunc      func(ctx context.Context, email, passwordHash string) (domain.User, error)
	findByEmailFunc func(ctx context.Context, email string) (domain.User, error)
	findByIDFunc    func(ctx context.Context, id domain.ID) (domain.User, error)
	findAllFunc     func(ctx context.Context) ([]domain.User, error)
	updateFunc      func(ctx context.Context, user domain.User) error
	deleteFunc      func(ctx context.Context, id domain.ID) error
}

func (m *mockUserRepo) Create(ctx context.Context, email, passwordHash string) (domain.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, email, passwordHash)
	}
	return domain.User{ID: 1, Email: email, PasswordHash: passwordHash}, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return domain.User{}, repository.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.User{}, repository.ErrUserNotFound
}

func (m *mockUserRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockUserRepo) Update(ctx context.Context, user domain.User) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id domain.ID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return repository.ErrUserNotFound
}

type mockPostRepo struct {
	findByUserIDFunc func(ctx context.Context, userID domain.ID) ([]postdomain.WithAuthor, error)
}

func (m *mockPostRepo) Create(ctx context.Context, post postdomain.Post) (postdomain.WithAuthor, error) {
	return postdomain.WithAuthor{}, nil
}

func (m *mockPostRepo) FindByID(ctx context.Context, id postdomain.ID) (postdomain.WithAuthor, error) {
	return postdomain.WithAuthor{}, nil
}

func (m *mockPostRepo) FindAll(ctx context.Context) ([]postdomain.WithAuthor, error) {
	return nil, nil
}

func (m *mockPostRepo) FindByUserID(ctx context.Context, userID domain.ID) ([]postdomain.WithAuthor, error) {
	if m.findByUserIDFunc != nil {
		return m.findByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockPostRepo) Update(ctx context.Context, id postdomain.ID, title, content string) (postdomain.WithAuthor, error) {
	return postdomain.WithAuthor{}, nil
}

func (m *mockPostRepo) Delete(ctx context.Context, id postdomain.ID) error {
	return nil
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash string, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockHasher) Compare(hash string, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	return nil
}
