package service

import (
	commonerrors "github.com/dmikhr/blog-platform/backend/internal/common/errors"
)

var (
	ErrPostNotFound = commonerrors.NewDomainError(
		"POST_NOT_FOUND",
		commonerrors.CategoryNotFound,
		404,
		"post not found",
	)

	// ErrNotPostOwner is deliberately distinct from ErrPostNotFound: a
	// non-owner learns the post exists but is not theirs.
	ErrNotPostOwner = commonerrors.NewDomainError(
		"NOT_POST_OWNER",
		commonerrors.CategoryForbidden,
		403,
		"you can only modify your own posts",
	)
)
