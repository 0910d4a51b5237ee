package model

import "errors"

// Common errors used across the application
var (
	// Mask errors
	ErrBadMask = errors.New("mask is not a valid decimal bitmask")

	// Submission errors
	ErrSubmissionNotFound = errors.New("submission not found")

	// Card definition errors
	ErrCardNotFound     = errors.New("card definition not found")
	ErrInvalidCardCells = errors.New("card definition must have exactly 25 cells")
)
