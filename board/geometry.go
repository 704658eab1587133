package board

import (
	"fmt"
	"strconv"
	"strings"
)

// A Position is a 0-indexed (row, col) pair.
type Position struct {
	Row int
	Col int
}

// Direction is a unit step on the board.
type Direction struct {
	DR int
	DC int
}

// Directions is the geometry table used by every directional scan.
var Directions = [8]Direction{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Step moves p one cell along d.
func (p Position) Step(d Direction) Position {
	return Position{p.Row + d.DR, p.Col + d.DC}
}

// String gives the position name: the column letter followed by the
// 1-based row, so (2, 3) is d3.
func (p Position) String() string {
	if p.Col < 0 || p.Col >= MaxDim || p.Row < 0 {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return string(rune('a'+p.Col)) + strconv.Itoa(p.Row+1)
}

// ParsePosition does the inverse of Position.String. The column letter
// may be either case.
func ParsePosition(s string) (Position, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if len(s) < 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrBadPosition, s)
	}
	col := int(s[0]) - 'a'
	if col < 0 || col >= MaxDim {
		return Position{}, fmt.Errorf("%w: %q", ErrBadPosition, s)
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil || row < 1 || row > MaxDim {
		return Position{}, fmt.Errorf("%w: %q", ErrBadPosition, s)
	}
	return Position{Row: row - 1, Col: col}, nil
}
