package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	commonerrors "github.com/dmikhr/blog-platform/backend/internal/common/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct checks a decoded request body against its validate tags and
// converts field failures into a VALIDATION domain error.
func ValidateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return commonerrors.ErrInternalError.WithCause(err)
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s: failed %q", strings.ToLower(fe.Field()), fe.Tag()))
	}

	return commonerrors.NewDomainError(
		CodeValidationFailed,
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		strings.Join(parts, "; "),
	)
}

// ParseIDParam extracts the trailing integer id from a path like
// /api/posts/42 given the prefix /api/posts/.
func ParseIDParam(path, prefix string) (int64, error) {
	raw := strings.TrimPrefix(path, prefix)
	if raw == "" || strings.Contains(raw, "/") {
		return 0, commonerrors.NewDomainError(
			CodeInvalidPath,
			commonerrors.CategoryValidation,
			http.StatusBadRequest,
			"invalid path",
		)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, commonerrors.NewDomainError(
			CodeInvalidIDFormat,
			commonerrors.CategoryValidation,
			http.StatusBadRequest,
			"id must be an integer",
		)
	}

	return id, nil
}
