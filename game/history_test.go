package game

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/reverc/reverc/board"
)

func TestAppendLeavesReceiverAlone(t *testing.T) {
	is := is.New(t)
	h0 := NewHistory()
	h1 := h0.Append(Entry{Ply: 1, Color: board.Black, Position: pos("d3")})
	h2a := h1.Append(Entry{Ply: 2, Color: board.White, Position: pos("c3")})
	h2b := h1.Append(Entry{Ply: 2, Color: board.White, Position: pos("e3")})
	is.Equal(h0.Len(), 0)
	is.Equal(h1.Len(), 1)
	is.Equal(h2a.At(1).Position, pos("c3"))
	is.Equal(h2b.At(1).Position, pos("e3"))

	entries := h2a.Entries()
	entries[0].Flips = 99
	is.Equal(h2a.At(0).Flips, 0)
}

func TestBoardAtPlyZeroIsStart(t *testing.T) {
	is := is.New(t)
	b, err := BoardAtPly(NewHistory(), 0, 8)
	is.NoErr(err)
	is.True(b.Equals(board.MustNewBoard(8)))
}

func TestBoardAtPlyRange(t *testing.T) {
	is := is.New(t)
	h := NewHistory(Entry{Ply: 1, Color: board.Black, Position: pos("d3")})
	_, err := BoardAtPly(h, 2, 8)
	is.True(errors.Is(err, ErrPlyOutOfRange))
	_, err = BoardAtPly(h, -1, 8)
	is.True(errors.Is(err, ErrPlyOutOfRange))
	_, err = BoardAtPly(h, 1, 7)
	is.True(errors.Is(err, board.ErrInvalidSize))
}

func TestBoardAtPlyCorruptEntries(t *testing.T) {
	is := is.New(t)
	start := board.MustNewBoard(8)
	for _, e := range []Entry{
		{Ply: 1, Color: board.Black, Position: board.Position{Row: 8, Col: 0}},
		{Ply: 1, Color: board.Black, Position: board.Position{Row: -1, Col: 3}},
		{Ply: 1, Color: board.Black, Position: board.Position{Row: 2, Col: 8}},
		{Ply: 1, Color: board.Empty, Position: pos("d3")},
	} {
		h := NewHistory(e)
		b, err := BoardAtPly(h, 1, 8)
		is.NoErr(err)
		is.True(b.Equals(start)) // nothing placed, nothing wrapped
		boards, err := Replay(h, 8)
		is.NoErr(err)
		is.Equal(len(boards), 2)
	}

	// an illegal but in-bounds entry is applied as recorded
	h := NewHistory(Entry{Ply: 1, Color: board.Black, Position: pos("a1")})
	b, err := BoardAtPly(h, 1, 8)
	is.NoErr(err)
	is.Equal(b.At(pos("a1")), board.Black)
}

func TestBoardAtPlyMatchesSequentialApply(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(8, defaultPlayers)
	is.NoErr(err)
	playOut(t, g)
	h := g.History()

	b := board.MustNewBoard(8)
	for ply := 0; ply <= h.Len(); ply++ {
		got, err := BoardAtPly(h, ply, 8)
		is.NoErr(err)
		is.True(got.Equals(b))
		// deterministic across calls
		again, err := BoardAtPly(h, ply, 8)
		is.NoErr(err)
		is.True(again.Equals(got))
		if ply < h.Len() {
			e := h.At(ply)
			b, _ = board.ApplyMove(b, e.Color, e.Position)
		}
	}

	boards, err := Replay(h, 8)
	is.NoErr(err)
	is.Equal(len(boards), h.Len()+1)
	for ply, rb := range boards {
		want, err := BoardAtPly(h, ply, 8)
		is.NoErr(err)
		is.True(rb.Equals(want))
	}
}

func TestCountsFor(t *testing.T) {
	is := is.New(t)
	c := Counts{Black: 3, White: 5}
	is.Equal(c.For(board.Black), 3)
	is.Equal(c.For(board.White), 5)
	is.Equal(c.For(board.Empty), 0)
}
