package zobrist

import (
	"fmt"
	"strconv"

	"lukechampine.com/frand"

	"github.com/reverc/reverc/board"
	"github.com/reverc/reverc/cache"
)

const bignum = 1<<63 - 2

// generate a zobrist hash for a capture game position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	whiteToMove uint64

	// posTable[i][0] is black on square i, posTable[i][1] is white.
	posTable [][2]uint64

	boardDim int
}

func (z *Zobrist) Initialize(boardDim int) {
	z.boardDim = boardDim
	z.posTable = make([][2]uint64, boardDim*boardDim)
	for i := range z.posTable {
		z.posTable[i][0] = frand.Uint64n(bignum) + 1
		z.posTable[i][1] = frand.Uint64n(bignum) + 1
	}
	z.whiteToMove = frand.Uint64n(bignum) + 1
}

// ForSize returns the shared key table for a board size. Keys from
// different tables are not comparable, so everything hashing positions of
// one size goes through here.
func ForSize(boardDim int) (*Zobrist, error) {
	if !board.ValidDim(boardDim) {
		return nil, fmt.Errorf("%w: got %d", board.ErrInvalidSize, boardDim)
	}
	obj, err := cache.Load("zobrist:"+strconv.Itoa(boardDim), func(string) (any, error) {
		z := &Zobrist{}
		z.Initialize(boardDim)
		return z, nil
	})
	if err != nil {
		return nil, err
	}
	return obj.(*Zobrist), nil
}

func (z *Zobrist) BoardDim() int {
	return z.boardDim
}

func colorIdx(c board.Cell) int {
	if c == board.White {
		return 1
	}
	return 0
}

func (z *Zobrist) square(p board.Position, c board.Cell) uint64 {
	return z.posTable[p.Row*z.boardDim+p.Col][colorIdx(c)]
}

// Hash computes the key of a position from scratch.
func (z *Zobrist) Hash(b board.Board, toMove board.Cell) uint64 {
	key := uint64(0)
	for _, p := range b.Positions() {
		c := b.At(p)
		if c == board.Empty {
			continue
		}
		key ^= z.square(p, c)
	}
	if toMove == board.White {
		key ^= z.whiteToMove
	}
	return key
}

// AddMove updates key for a placement at p by color that flipped the given
// cells, with the side to move going from toMoveBefore to toMoveAfter.
// A pass is an AddMove with no placement, see AddPass.
func (z *Zobrist) AddMove(key uint64, color board.Cell, p board.Position,
	flipped []board.Position, toMoveBefore, toMoveAfter board.Cell) uint64 {

	key ^= z.square(p, color)
	opp := color.Opponent()
	for _, f := range flipped {
		key ^= z.square(f, opp)
		key ^= z.square(f, color)
	}
	return z.AddPass(key, toMoveBefore, toMoveAfter)
}

// AddPass only changes the side to move.
func (z *Zobrist) AddPass(key uint64, toMoveBefore, toMoveAfter board.Cell) uint64 {
	if toMoveBefore == board.White {
		key ^= z.whiteToMove
	}
	if toMoveAfter == board.White {
		key ^= z.whiteToMove
	}
	return key
}
