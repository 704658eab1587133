package board

import "fmt"

// flanks returns the length of the opponent run starting next to p along d,
// provided the run is closed off by a cell of the mover's colour. It
// returns 0 when the run is empty or runs into the edge or an empty cell.
func (b Board) flanks(color Cell, p Position, d Direction) int {
	opp := color.Opponent()
	run := 0
	cur := p.Step(d)
	for b.InBounds(cur) && b.At(cur) == opp {
		run++
		cur = cur.Step(d)
	}
	if run > 0 && b.InBounds(cur) && b.At(cur) == color {
		return run
	}
	return 0
}

// IsLegal reports whether color may place a piece at p. Out-of-bounds and
// occupied targets are simply illegal.
func IsLegal(b Board, color Cell, p Position) bool {
	if !color.IsColor() || !b.InBounds(p) || b.At(p) != Empty {
		return false
	}
	for _, d := range Directions {
		if b.flanks(color, p, d) > 0 {
			return true
		}
	}
	return false
}

// CheckMove is IsLegal with a reason. The error names the position the
// way players see it.
func CheckMove(b Board, color Cell, p Position) error {
	switch {
	case !color.IsColor():
		return fmt.Errorf("%w: got %v", ErrNotAColor, color)
	case !b.InBounds(p):
		return fmt.Errorf("the move at position %q: %w", p.String(), ErrOutOfBounds)
	case b.At(p) != Empty:
		return fmt.Errorf("the move at position %q: %w", p.String(), ErrOccupied)
	case !IsLegal(b, color, p):
		return fmt.Errorf("the move at position %q: %w", p.String(), ErrNoFlips)
	}
	return nil
}

// ApplyMove places color at p and flips every bounded opponent run. It
// returns the new board and the flipped cells in direction-table order.
// The move must already be known to be legal; see PlayMove. A position off
// the board or a mover that is not a colour leaves the copy unchanged.
func ApplyMove(b Board, color Cell, p Position) (Board, []Position) {
	nb := b.Copy()
	if !nb.InBounds(p) || !color.IsColor() {
		return nb, nil
	}
	nb.set(p, color)
	var flipped []Position
	for _, d := range Directions {
		run := nb.flanks(color, p, d)
		cur := p
		for i := 0; i < run; i++ {
			cur = cur.Step(d)
			nb.set(cur, color)
			flipped = append(flipped, cur)
		}
	}
	return nb, flipped
}

// PlayMove validates the move and then applies it.
func PlayMove(b Board, color Cell, p Position) (Board, []Position, error) {
	if err := CheckMove(b, color, p); err != nil {
		return Board{}, nil, err
	}
	nb, flipped := ApplyMove(b, color, p)
	return nb, flipped, nil
}

// LegalMoves lists every legal placement for color, in row-major order.
func LegalMoves(b Board, color Cell) []Position {
	var moves []Position
	for r := 0; r < b.dim; r++ {
		for c := 0; c < b.dim; c++ {
			p := Position{r, c}
			if b.At(p) != Empty {
				continue
			}
			if IsLegal(b, color, p) {
				moves = append(moves, p)
			}
		}
	}
	return moves
}

// Mobility is the number of legal moves for color.
func Mobility(b Board, color Cell) int {
	return len(LegalMoves(b, color))
}

// CanMove stops at the first legal move it finds.
func CanMove(b Board, color Cell) bool {
	for r := 0; r < b.dim; r++ {
		for c := 0; c < b.dim; c++ {
			if IsLegal(b, color, Position{r, c}) {
				return true
			}
		}
	}
	return false
}

// IsTerminal is true when the board is full or neither side can move.
func IsTerminal(b Board) bool {
	if b.IsFull() {
		return true
	}
	return !CanMove(b, Black) && !CanMove(b, White)
}

// NextToMove applies the turn-skip rule after justMoved has played: the
// opponent moves if it can, otherwise justMoved moves again and the
// opponent passes. ok is false when neither side can move.
func NextToMove(b Board, justMoved Cell) (next Cell, ok bool) {
	opp := justMoved.Opponent()
	if b.IsFull() {
		return Empty, false
	}
	if CanMove(b, opp) {
		return opp, true
	}
	if CanMove(b, justMoved) {
		return justMoved, true
	}
	return Empty, false
}
