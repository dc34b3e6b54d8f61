package stafferrors

import (
	"go-roster/internal/shared/apperror"
	"net/http"
)

var (
	ErrStaffNotFound = apperror.New(
		apperror.CodeNotFound,
		"Staff member not found",
		http.StatusNotFound,
	)
	ErrNoDataToExport = apperror.New(
		apperror.CodeInvalidInput,
		"No data to export",
		http.StatusBadRequest,
	)
	ErrMissingImportFile = apperror.New(
		apperror.CodeInvalidInput,
		"Please select a file to import",
		http.StatusBadRequest,
	)
	ErrImportFileTooLarge = apperror.New(
		apperror.CodeImportFormat,
		"The selected file is too large",
		http.StatusBadRequest,
	)
	ErrMissingIDs = apperror.New(
		apperror.CodeInvalidInput,
		"At least one staff id is required",
		http.StatusBadRequest,
	)
	ErrInvalidQuery = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid query parameters",
		http.StatusBadRequest,
	)
)
