package model

// ScanResult is the structured output of the external vision model for a
// card photo. Cells may contain out-of-range positions; callers are
// expected to drop invalid entries rather than fail the whole scan.
type ScanResult struct {
	// Week is the week token read off the card, or empty if not found
	Week string
	// Cells are the grid positions the model believes are marked
	Cells []Position
	// Confidence is the model's self-reported confidence in [0, 1]
	Confidence float64
	// Notes is free-form commentary from the model, length-capped upstream
	Notes string
}
