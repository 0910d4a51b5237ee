package model

import (
	"fmt"
	"math/bits"
	"strconv"
)

const (
	// GridSize is the dimension of the bingo card grid
	GridSize = 5
	// CellCount is the total number of cells on a card
	CellCount = GridSize * GridSize
)

// allCells has bits 0..24 set; higher bits are never meaningful
const allCells = BoardMask(1)<<CellCount - 1

// BoardMask is a 25-bit vector of marked cells.
// Bit i corresponds to the cell at row i/5, column i%5 (row-major,
// top-left is bit 0). The wire and storage form is the canonical
// decimal string produced by String.
type BoardMask uint32

// Position identifies a cell on the card
type Position struct {
	Row int // 0-indexed from top
	Col int // 0-indexed from left
}

// Index returns the bit index for the position
func (p Position) Index() int {
	return p.Row*GridSize + p.Col
}

// IsValid returns true if the position is within the grid
func (p Position) IsValid() bool {
	return p.Row >= 0 && p.Row < GridSize && p.Col >= 0 && p.Col < GridSize
}

// ParseMask parses the canonical decimal-string form of a mask.
// Only unsigned decimal digit strings are accepted: no sign, no hex
// prefix, no whitespace, no empty string. Values with bits above
// cell 24 set are rejected rather than silently truncated.
func ParseMask(s string) (BoardMask, error) {
	if s == "" {
		return 0, ErrBadMask
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, ErrBadMask
		}
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, ErrBadMask
	}
	if BoardMask(v) > allCells {
		return 0, ErrBadMask
	}
	return BoardMask(v), nil
}

// String returns the canonical decimal encoding; round-trips with ParseMask
func (m BoardMask) String() string {
	return strconv.FormatUint(uint64(m), 10)
}

// Merge returns the union of two masks. Merging is monotonic: a cell
// marked in either input stays marked.
func (m BoardMask) Merge(other BoardMask) BoardMask {
	return m | other
}

// IsSet reports whether cell index is marked.
// Index must be in [0, CellCount); call sites control the index domain,
// so an out-of-range index panics.
func (m BoardMask) IsSet(index int) bool {
	checkIndex(index)
	return m&(1<<index) != 0
}

// Set returns a copy of the mask with cell index set to marked.
// Panics on an out-of-range index, like IsSet.
func (m BoardMask) Set(index int, marked bool) BoardMask {
	checkIndex(index)
	if marked {
		return m | 1<<index
	}
	return m &^ (1 << index)
}

// MarkedCount returns the number of marked cells
func (m BoardMask) MarkedCount() int {
	return bits.OnesCount32(uint32(m & allCells))
}

func checkIndex(index int) {
	if index < 0 || index >= CellCount {
		panic(fmt.Sprintf("cell index %d out of range", index))
	}
}
