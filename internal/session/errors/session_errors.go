package sessionerrors

import (
	"go-roster/internal/shared/apperror"
	"net/http"
)

var (
	ErrInvalidPasscode = apperror.New(
		apperror.CodeInvalidPasscode,
		"Invalid passcode. Please try again.",
		http.StatusUnauthorized,
	)
	ErrSessionRequired = apperror.New(
		apperror.CodeUnauthorized,
		"Please enter the passcode to continue",
		http.StatusUnauthorized,
	)
	ErrSessionInvalid = apperror.New(
		apperror.CodeUnauthorized,
		"Session is invalid or has ended",
		http.StatusUnauthorized,
	)
	ErrSessionStoreUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"Session store is unavailable",
		http.StatusServiceUnavailable,
	)
)
