package model

import "time"

// CardDefinition is the optional set of cell labels for a week's card,
// index-aligned with BoardMask bit positions. Weeks without a definition
// render cells by position number only.
type CardDefinition struct {
	WeekID    WeekID
	Cells     []string // exactly CellCount entries
	CreatedAt time.Time
}
