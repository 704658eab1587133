package zobrist

import (
	"testing"

	"github.com/matryer/is"

	"github.com/reverc/reverc/board"
)

func TestHashAfterMakingPlay(t *testing.T) {
	is := is.New(t)
	z, err := ForSize(8)
	is.NoErr(err)

	b := board.MustNewBoard(8)
	h := z.Hash(b, board.Black)

	p := board.Position{Row: 2, Col: 3}
	nb, flipped := board.ApplyMove(b, board.Black, p)
	h1 := z.AddMove(h, board.Black, p, flipped, board.Black, board.White)
	h2 := z.Hash(nb, board.White)
	is.Equal(h1, h2)
	is.True(h1 != h) // extremely unlikely to collide, but not technically impossible.
}

func TestHashAfterPassing(t *testing.T) {
	is := is.New(t)
	z, err := ForSize(4)
	is.NoErr(err)

	b := board.FixtureBoard(board.BlackMustPass)
	h := z.Hash(b, board.Black)
	h1 := z.AddPass(h, board.Black, board.White)
	is.Equal(h1, z.Hash(b, board.White))
	// passing back restores the key
	is.Equal(z.AddPass(h1, board.White, board.Black), h)
}

func TestIncrementalMatchesFullOverAGame(t *testing.T) {
	is := is.New(t)
	z, err := ForSize(6)
	is.NoErr(err)

	b := board.MustNewBoard(6)
	color := board.Black
	key := z.Hash(b, color)
	for {
		moves := board.LegalMoves(b, color)
		if len(moves) == 0 {
			break
		}
		m := moves[len(moves)/2]
		nb, flipped := board.ApplyMove(b, color, m)
		next, ok := board.NextToMove(nb, color)
		if !ok {
			next = color.Opponent()
		}
		key = z.AddMove(key, color, m, flipped, color, next)
		is.Equal(key, z.Hash(nb, next))
		b, color = nb, next
		if !ok {
			break
		}
	}
}

func TestForSizeShared(t *testing.T) {
	is := is.New(t)
	z1, err := ForSize(12)
	is.NoErr(err)
	z2, err := ForSize(12)
	is.NoErr(err)
	is.True(z1 == z2)
	is.Equal(z1.BoardDim(), 12)

	_, err = ForSize(7)
	is.True(err != nil)
}
