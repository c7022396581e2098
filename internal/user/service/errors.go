package service

import (
	commonerrors "github.com/dmikhr/blog-platform/backend/internal/common/errors"
)

var (
	ErrUserNotFound = commonerrors.NewDomainError(
		"USER_NOT_FOUND",
		commonerrors.CategoryNotFound,
		404,
		"user not found",
	)

	ErrEmailTaken = commonerrors.NewDomainError(
		"EMAIL_TAKEN",
		commonerrors.CategoryConflict,
		409,
		"email already registered",
	)
)
