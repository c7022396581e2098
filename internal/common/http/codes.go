package http

const (
	CodeUnknown          = "UNKNOWN"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeInvalidJSON      = "INVALID_JSON"
	CodeInvalidPath      = "INVALID_PATH"
	CodeInvalidIDFormat  = "INVALID_ID_FORMAT"
	CodeValidationFailed = "VALIDATION_FAILED"
)
