// Package board holds the rules engine for the capture game: the board
// itself, the direction table, and the pure functions that decide legality,
// resolve captures, enumerate mobility and detect terminal positions.
//
// Nothing in this package retains state between calls. Every function that
// produces a new position returns a fresh Board.
package board

import (
	"errors"
	"fmt"
)

const (
	MinDim = 4
	// MaxDim is bounded by position naming: columns are named a..z.
	MaxDim = 26
)

var (
	ErrInvalidSize = errors.New("board size must be even and between 4 and 26")
	ErrUnknownCell = errors.New("unknown cell")
	ErrOutOfBounds = errors.New("position is out of bounds")
	ErrOccupied    = errors.New("position is already occupied")
	ErrNoFlips     = errors.New("move has no flips")
	ErrNotAColor   = errors.New("mover must be black or white")
	ErrBadPosition = errors.New("badly formatted position")
)

// Board is a square grid of cells. The zero value is not usable; create
// boards with NewBoard or one of the From* helpers.
type Board struct {
	dim   int
	cells []Cell
}

// ValidDim reports whether dim is a playable board size.
func ValidDim(dim int) bool {
	return dim >= MinDim && dim <= MaxDim && dim%2 == 0
}

// NewBoard returns the canonical start position for the given size.
func NewBoard(dim int) (Board, error) {
	b, err := emptyBoard(dim)
	if err != nil {
		return Board{}, err
	}
	mid := dim / 2
	b.set(Position{mid - 1, mid - 1}, White)
	b.set(Position{mid - 1, mid}, Black)
	b.set(Position{mid, mid - 1}, Black)
	b.set(Position{mid, mid}, White)
	return b, nil
}

// MustNewBoard is NewBoard for sizes known to be valid.
func MustNewBoard(dim int) Board {
	b, err := NewBoard(dim)
	if err != nil {
		panic(err)
	}
	return b
}

func emptyBoard(dim int) (Board, error) {
	if !ValidDim(dim) {
		return Board{}, fmt.Errorf("%w: got %d", ErrInvalidSize, dim)
	}
	return Board{dim: dim, cells: make([]Cell, dim*dim)}, nil
}

func (b Board) Dim() int {
	return b.dim
}

func (b Board) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < b.dim && p.Col >= 0 && p.Col < b.dim
}

// At returns the cell at p. Out-of-bounds positions read as Empty.
func (b Board) At(p Position) Cell {
	if !b.InBounds(p) {
		return Empty
	}
	return b.cells[p.Row*b.dim+p.Col]
}

func (b Board) set(p Position, c Cell) {
	b.cells[p.Row*b.dim+p.Col] = c
}

// Copy returns a deep copy; the two boards share no storage.
func (b Board) Copy() Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return Board{dim: b.dim, cells: cells}
}

// WithCell returns a copy of b with p set to c. It is meant for building
// fixtures; game play goes through ApplyMove.
func (b Board) WithCell(p Position, c Cell) Board {
	nb := b.Copy()
	if nb.InBounds(p) {
		nb.set(p, c)
	}
	return nb
}

// Count returns how many cells hold c.
func (b Board) Count(c Cell) int {
	n := 0
	for _, cell := range b.cells {
		if cell == c {
			n++
		}
	}
	return n
}

// Counts returns the piece counts for black and white.
func (b Board) Counts() (black, white int) {
	for _, cell := range b.cells {
		switch cell {
		case Black:
			black++
		case White:
			white++
		}
	}
	return
}

func (b Board) IsFull() bool {
	for _, cell := range b.cells {
		if cell == Empty {
			return false
		}
	}
	return true
}

// Equals compares size and every cell.
func (b Board) Equals(o Board) bool {
	if b.dim != o.dim || len(b.cells) != len(o.cells) {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Cells returns a row-major copy of the board contents.
func (b Board) Cells() []Cell {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return cells
}

// Rows returns the board as a slice of rows, the layout move providers
// expect.
func (b Board) Rows() [][]Cell {
	rows := make([][]Cell, b.dim)
	for r := 0; r < b.dim; r++ {
		rows[r] = make([]Cell, b.dim)
		copy(rows[r], b.cells[r*b.dim:(r+1)*b.dim])
	}
	return rows
}

// Positions lists every position of the board in row-major order.
func (b Board) Positions() []Position {
	ps := make([]Position, 0, len(b.cells))
	for r := 0; r < b.dim; r++ {
		for c := 0; c < b.dim; c++ {
			ps = append(ps, Position{r, c})
		}
	}
	return ps
}

// Corners returns the four corner positions.
func (b Board) Corners() []Position {
	n := b.dim - 1
	return []Position{{0, 0}, {0, n}, {n, 0}, {n, n}}
}
