package request

// SubmitRequest is the request body for submitting a board
type SubmitRequest struct {
	WeekID      string `json:"week_id"`
	DisplayName string `json:"display_name"`
	Team        string `json:"team,omitempty"`
	MarkedMask  string `json:"marked_mask"`
}

// DeleteRequest is the request body for removing a submission
type DeleteRequest struct {
	WeekID string `json:"week_id"`
}

// RaffleRequest is the request body for drawing a raffle winner
type RaffleRequest struct {
	WeekID string `json:"week_id"`
}
