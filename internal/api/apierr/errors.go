package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/bingo-challenge-go/internal/model"
	"github.com/mcoot/bingo-challenge-go/internal/services/raffle"
	"github.com/mcoot/bingo-challenge-go/internal/services/ratelimit"
	"github.com/mcoot/bingo-challenge-go/internal/vision"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Details carries truncated upstream diagnostics, when relevant
	Details string `json:"details,omitempty"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeMissingFields       = "missing_fields"
	CodeBadMask             = "bad_mask"
	CodeMissingDeviceID     = "missing_device_id"
	CodeMissingWeek         = "missing_week"
	CodeMissingWeekID       = "missing_week_id"
	CodeNotFound            = "not_found"
	CodeCardNotFound        = "card_not_found"
	CodeInvalidCells        = "invalid_cells"
	CodeNoEntries           = "no_entries"
	CodeRateLimited         = "rate_limited"
	CodeGeoBlocked          = "geo_blocked"
	CodeBadStudioCode       = "bad_studio_code"
	CodeStudioCodeNotSet    = "studio_code_not_configured"
	CodeScanningDisabled    = "scanning_disabled"
	CodeExpectedMultipart   = "expected_multipart"
	CodeMissingImage        = "missing_image"
	CodeImageTooLarge       = "image_too_large"
	CodeUpstreamError       = "upstream_error"
	CodeInternalError       = "internal_error"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Upstream failures keep their truncated diagnostics
	var upstream *vision.UpstreamError
	if errors.As(err, &upstream) {
		return &httpError{http.StatusBadGateway, APIError{
			Code:    CodeUpstreamError,
			Message: "Vision service error",
			Details: upstream.Raw,
		}}
	}

	switch {
	case errors.Is(err, model.ErrBadMask):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeBadMask, Message: "Marked mask is not a valid board mask"}}
	case errors.Is(err, model.ErrSubmissionNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeNotFound, Message: "Submission not found"}}
	case errors.Is(err, model.ErrCardNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeCardNotFound, Message: "No card defined for this week"}}
	case errors.Is(err, model.ErrInvalidCardCells):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidCells, Message: "Card must have exactly 25 cells"}}
	case errors.Is(err, raffle.ErrNoEntries):
		return &httpError{http.StatusNotFound, APIError{Code: CodeNoEntries, Message: "No raffle entries for this week"}}
	case errors.Is(err, ratelimit.ErrRateLimited):
		return &httpError{http.StatusTooManyRequests, APIError{Code: CodeRateLimited, Message: "Too many requests, slow down"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
	}
}

// NewMissingFieldsError reports absent required request fields
func NewMissingFieldsError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeMissingFields, Message: message}}
}

// NewMissingDeviceIDError reports an absent x-device-id header
func NewMissingDeviceIDError() error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeMissingDeviceID, Message: "x-device-id header is required"}}
}

// NewMissingWeekError reports an absent week query parameter
func NewMissingWeekError() error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeMissingWeek, Message: "week is required"}}
}

// NewMissingWeekIDError reports an absent week_id body field
func NewMissingWeekIDError() error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeMissingWeekID, Message: "week_id is required"}}
}

// NewGeoBlockedError reports a request from outside the allowed regions
func NewGeoBlockedError() error {
	return &httpError{http.StatusForbidden, APIError{Code: CodeGeoBlocked, Message: "Not available in your region"}}
}

// NewBadStudioCodeError reports a wrong or absent studio code
func NewBadStudioCodeError() error {
	return &httpError{http.StatusForbidden, APIError{Code: CodeBadStudioCode, Message: "Invalid studio code"}}
}

// NewStudioCodeNotConfiguredError reports a server missing its studio code setting
func NewStudioCodeNotConfiguredError() error {
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeStudioCodeNotSet, Message: "Studio code is not configured on this server"}}
}

// NewScanningDisabledError reports that card scanning is switched off
func NewScanningDisabledError() error {
	return &httpError{http.StatusServiceUnavailable, APIError{Code: CodeScanningDisabled, Message: "Scanning is currently disabled"}}
}

// NewExpectedMultipartError reports a scan request without a multipart body
func NewExpectedMultipartError() error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeExpectedMultipart, Message: "Expected multipart/form-data"}}
}

// NewMissingImageError reports a multipart body without an image part
func NewMissingImageError() error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeMissingImage, Message: "image file is required"}}
}

// NewImageTooLargeError reports an oversized upload
func NewImageTooLargeError() error {
	return &httpError{http.StatusRequestEntityTooLarge, APIError{Code: CodeImageTooLarge, Message: "Image is too large"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
}
