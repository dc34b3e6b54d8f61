package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrInternal = New(
		CodeInternalError,
		"Internal server error",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)
)

// RequiredField builds the message used when a mandatory field is blank.
func RequiredField(label string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("%s is required", label), http.StatusBadRequest)
}

// InvalidField builds the message used when a field fails a format rule.
func InvalidField(label string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("%s is invalid", label), http.StatusBadRequest)
}

// Validation reports per-field messages; details are surfaced as-is to the client.
func Validation(fields map[string]string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    "Invalid input",
		HTTPStatus: http.StatusBadRequest,
		Details:    fields,
	}
}

// StorageWarning marks a change that is live in memory but failed to persist.
func StorageWarning(err error) *AppError {
	return Wrap(err, CodeStorageWarning, "Change applied but could not be saved to storage", http.StatusOK)
}

// IsStorageWarning reports whether err only signals a failed persistence step.
func IsStorageWarning(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == CodeStorageWarning
}
