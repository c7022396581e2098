package service

import (
	commonerrors "github.com/dmikhr/blog-platform/backend/internal/common/errors"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// responses never reveal whether an email is registered.
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		401,
		"invalid email or password",
	)

	ErrEmailTaken = commonerrors.NewDomainError(
		"EMAIL_TAKEN",
		commonerrors.CategoryConflict,
		409,
		"email already registered",
	)
)
