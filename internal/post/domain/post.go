package domain

import (
	"time"

	userdomain "github.com/dmikhr/blog-platform/backend/internal/user/domain"
)

type ID int64

// Post is an owned resource; UserID is fixed at creation.
type Post struct {
	ID        ID
	Title     string
	Content   string
	UserID    userdomain.ID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WithAuthor pairs a post with its owner's public fields, produced by the
// repository join.
type WithAuthor struct {
	Post
	AuthorEmail string
}
