package interchange

import (
	"net/http"

	"go-roster/internal/shared/apperror"
)

var (
	ErrUnsupportedFile = apperror.New(
		apperror.CodeImportFormat,
		"Please select a valid Excel file (.xlsx or .xls)",
		http.StatusBadRequest,
	)
	ErrUnreadableWorkbook = apperror.New(
		apperror.CodeImportFormat,
		"Failed to parse Excel file. Please check the file format.",
		http.StatusBadRequest,
	)
	ErrNoValidRows = apperror.New(
		apperror.CodeImportFormat,
		"No valid staff data found in the file. Please check the format.",
		http.StatusBadRequest,
	)
)
