package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput    = "INVALID_INPUT"
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeInvalidPasscode = "INVALID_PASSCODE"
	CodeNotFound        = "NOT_FOUND"
	CodeImportFormat    = "IMPORT_FORMAT_ERROR"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"

	// Non-fatal: the operation succeeded in memory but was not persisted.
	CodeStorageWarning = "STORAGE_WARNING"
)
