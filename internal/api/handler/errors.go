package handler

import (
	"net/http"

	"github.com/mcoot/bingo-challenge-go/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewMissingFieldsError reports absent required request fields
func NewMissingFieldsError(message string) error {
	return apierr.NewMissingFieldsError(message)
}

// NewMissingWeekError reports an absent week parameter
func NewMissingWeekError() error {
	return apierr.NewMissingWeekError()
}

// NewMissingWeekIDError reports an absent week_id body field
func NewMissingWeekIDError() error {
	return apierr.NewMissingWeekIDError()
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
