package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/dmikhr/blog-platform/backend/internal/common/db"
	"github.com/dmikhr/blog-platform/backend/internal/post/domain"
	userdomain "github.com/dmikhr/blog-platform/backend/internal/user/domain"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrOwnerNotFound = errors.New("owning user not found")
)

type Repository interface {
	Create(ctx context.Context, post domain.Post) (domain.WithAuthor, error)
	FindByID(ctx context.Context, id domain.ID) (domain.WithAuthor, error)
	FindAll(ctx context.Context) ([]domain.WithAuthor, error)
	FindByUserID(ctx context.Context, userID userdomain.ID) ([]domain.WithAuthor, error)
	Update(ctx context.Context, id domain.ID, title, content string) (domain.WithAuthor, error)
	Delete(ctx context.Context, id domain.ID) error
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const selectWithAuthor = `
	SELECT p.id, p.title, p.content, p.user_id, p.created_at, p.updated_at, u.email
	FROM posts p
	JOIN users u ON u.id = p.user_id`

func (r *PgRepository) Create(ctx context.Context, post domain.Post) (domain.WithAuthor, error) {
	start := time.Now()

	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO posts (title, content, user_id) VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		post.Title,
		post.Content,
		int64(post.UserID),
	)

	err := row.Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	db.ObserveQuery("create_post", "posts", start, err)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return domain.WithAuthor{}, ErrOwnerNotFound
		}
		return domain.WithAuthor{}, fmt.Errorf("failed to create post: %w", err)
	}

	return r.FindByID(ctx, post.ID)
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.WithAuthor, error) {
	start := time.Now()

	row := r.pool.QueryRow(ctx, selectWithAuthor+` WHERE p.id = $1`, int64(id))

	var p domain.WithAuthor
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.UserID, &p.CreatedAt, &p.UpdatedAt, &p.AuthorEmail)
	db.ObserveQuery("find_post_by_id", "posts", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.WithAuthor{}, ErrPostNotFound
		}
		return domain.WithAuthor{}, fmt.Errorf("failed to find post by id: %w", err)
	}

	return p, nil
}

func (r *PgRepository) FindAll(ctx context.Context) ([]domain.WithAuthor, error) {
	start := time.Now()

	rows, err := r.pool.Query(ctx, selectWithAuthor+` ORDER BY p.id ASC`)
	db.ObserveQuery("find_all_posts", "posts", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

func (r *PgRepository) FindByUserID(ctx context.Context, userID userdomain.ID) ([]domain.WithAuthor, error) {
	start := time.Now()

	rows, err := r.pool.Query(ctx, selectWithAuthor+` WHERE p.user_id = $1 ORDER BY p.id ASC`, int64(userID))
	db.ObserveQuery("find_posts_by_user", "posts", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by user: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

func (r *PgRepository) Update(ctx context.Context, id domain.ID, title, content string) (domain.WithAuthor, error) {
	start := time.Now()

	tag, err := r.pool.Exec(
		ctx,
		`UPDATE posts SET title = $2, content = $3, updated_at = now() WHERE id = $1`,
		int64(id),
		title,
		content,
	)
	db.ObserveQuery("update_post", "posts", start, err)
	if err != nil {
		return domain.WithAuthor{}, fmt.Errorf("failed to update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.WithAuthor{}, ErrPostNotFound
	}

	return r.FindByID(ctx, id)
}

func (r *PgRepository) Delete(ctx context.Context, id domain.ID) error {
	start := time.Now()

	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, int64(id))
	db.ObserveQuery("delete_post", "posts", start, err)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPostNotFound
	}

	return nil
}

func scanPosts(rows pgx.Rows) ([]domain.WithAuthor, error) {
	var posts []domain.WithAuthor
	for rows.Next() {
		var p domain.WithAuthor
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.UserID, &p.CreatedAt, &p.UpdatedAt, &p.AuthorEmail); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	return posts, nil
}
