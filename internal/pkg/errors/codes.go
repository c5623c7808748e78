package errors

import "net/http"

var (
	ErrValidation = New(
		"VALIDATION_ERROR",
		"Invalid input parameters",
		http.StatusBadRequest,
	)

	ErrTypeMismatch = New(
		"TYPE_MISMATCH",
		"Invalid parameter type",
		http.StatusBadRequest,
	)

	ErrMissingParameter = New(
		"MISSING_PARAMETER",
		"Required request parameter is missing",
		http.StatusBadRequest,
	)

	ErrNotFound = New(
		"NOT_FOUND",
		"Resource not found",
		http.StatusNotFound,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)
)
