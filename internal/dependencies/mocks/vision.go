package mocks

import (
	"context"

	"github.com/mcoot/bingo-challenge-go/internal/model"
	"github.com/mcoot/bingo-challenge-go/internal/vision"
)

// MockVision is a mock implementation of the vision client for testing
type MockVision struct {
	// DetectResult is returned by DetectMarks when DetectErr is nil
	DetectResult *model.ScanResult
	DetectErr    error

	// CellsResult is returned by ReadCardCells when CellsErr is nil
	CellsResult []string
	CellsErr    error

	// DetectCalls counts DetectMarks invocations
	DetectCalls int
	// CellsCalls counts ReadCardCells invocations
	CellsCalls int
}

// Ensure MockVision implements the client interface
var _ vision.Client = (*MockVision)(nil)

// NewMockVision creates a new MockVision
func NewMockVision() *MockVision {
	return &MockVision{}
}

// DetectMarks returns the configured scan result or error
func (m *MockVision) DetectMarks(ctx context.Context, image []byte, contentType string) (*model.ScanResult, error) {
	m.DetectCalls++
	if m.DetectErr != nil {
		return nil, m.DetectErr
	}
	if m.DetectResult == nil {
		return &model.ScanResult{Confidence: 1}, nil
	}
	return m.DetectResult, nil
}

// ReadCardCells returns the configured cell labels or error
func (m *MockVision) ReadCardCells(ctx context.Context, image []byte, contentType string) ([]string, error) {
	m.CellsCalls++
	if m.CellsErr != nil {
		return nil, m.CellsErr
	}
	return m.CellsResult, nil
}
