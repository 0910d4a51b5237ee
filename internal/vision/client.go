package vision

import (
	"context"
	"errors"
	"fmt"

	"github.com/mcoot/bingo-challenge-go/internal/model"
)

// ErrUpstream marks failures of the external vision service, distinct
// from caller validation errors. Match with errors.Is.
var ErrUpstream = errors.New("vision service error")

// UpstreamError carries diagnostics for a failed or unparseable vision
// service response. Raw is truncated before it is attached.
type UpstreamError struct {
	// Status is the upstream HTTP status, or 0 for transport failures
	Status int
	// Reason is a short machine-readable cause (e.g. "bad_json")
	Reason string
	// Raw is the truncated upstream payload
	Raw string
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("vision service error: %s (status %d)", e.Reason, e.Status)
	}
	return fmt.Sprintf("vision service error: %s", e.Reason)
}

// Unwrap allows errors.Is(err, ErrUpstream)
func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}

// Client is the boundary to the external vision model. Implementations
// either return a validated structured result or an UpstreamError; the
// free-form text munging needed to get there stays behind this interface.
type Client interface {
	// DetectMarks reads handwritten marks (and the week token, if
	// printed) off a photo of a card
	DetectMarks(ctx context.Context, image []byte, contentType string) (*model.ScanResult, error)

	// ReadCardCells extracts the printed text of all 25 cells in
	// row-major order. Unreadable cells come back as empty strings.
	ReadCardCells(ctx context.Context, image []byte, contentType string) ([]string, error)
}
