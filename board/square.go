package board

import (
	"fmt"
	"os"
)

var (
	ColorSupport = os.Getenv("REVERC_DISABLE_COLOR") != "on"
)

// A Cell is the content of a single square on the board.
type Cell uint8

const (
	Empty Cell = iota
	Black
	White
)

// Opponent returns the other colour. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

// IsColor is true for the two playing colours.
func (c Cell) IsColor() bool {
	return c == Black || c == White
}

func (c Cell) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	case Empty:
		return "empty"
	}
	return fmt.Sprintf("cell(%d)", uint8(c))
}

// Letter is the single-letter form used in persisted histories.
func (c Cell) Letter() string {
	switch c {
	case Black:
		return "B"
	case White:
		return "W"
	}
	return "U"
}

// CellFromLetter is the inverse of Letter.
func CellFromLetter(s string) (Cell, error) {
	switch s {
	case "B", "b":
		return Black, nil
	case "W", "w":
		return White, nil
	case "U", "u", ".":
		return Empty, nil
	}
	return Empty, fmt.Errorf("%w: %q", ErrUnknownCell, s)
}

// Glyph is the display form of the cell.
func (c Cell) Glyph() string {
	switch c {
	case Black:
		return "●"
	case White:
		return "○"
	}
	return "."
}

// DisplayString is like Glyph but, with color support on, shades the
// cells that were just flipped so a log reader can follow the capture.
func (c Cell) DisplayString(highlight bool) string {
	if highlight && ColorSupport && c.IsColor() {
		return "\x1b[1;33m" + c.Glyph() + "\x1b[0m"
	}
	return c.Glyph()
}
