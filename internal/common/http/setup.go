package http

import (
	"net/http"

	"github.com/dmikhr/blog-platform/backend/internal/common/constants"
	"github.com/dmikhr/blog-platform/backend/internal/common/httpmetrics"
	"github.com/dmikhr/blog-platform/backend/internal/common/logger"
)

// BuildBaseHandler wraps a handler with the shared middleware chain:
// security headers, panic recovery, trace id propagation, request size
// limiting and request metrics, outermost first.
func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	metrics := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)

	return SecurityHeadersMiddleware(recovery(TraceIDMiddleware(maxRequestSize(metrics.Wrap(handler)))))
}
