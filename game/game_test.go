package game

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/reverc/reverc/board"
	"github.com/reverc/reverc/zobrist"
)

var defaultPlayers = []PlayerInfo{
	{Name: "JD", Kind: KindHuman},
	{Name: "cesar", Kind: KindCustom},
}

func pos(name string) board.Position {
	p, err := board.ParsePosition(name)
	if err != nil {
		panic(err)
	}
	return p
}

// playOut plays the first legal move every turn until the game ends.
func playOut(t *testing.T, g *Game) {
	t.Helper()
	for g.Playing() == Playing {
		moves := g.LegalMoves()
		if len(moves) == 0 {
			t.Fatalf("no moves for %v but game is still playing", g.Turn())
		}
		if _, err := g.PlayMove(moves[0], time.Millisecond); err != nil {
			t.Fatal(err)
		}
	}
}

func TestNewGame(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(8, defaultPlayers)
	is.NoErr(err)
	is.Equal(g.Turn(), board.Black)
	is.Equal(g.Playing(), Playing)
	is.Equal(g.History().Len(), 0)
	is.Equal(len(g.LegalMoves()), 4)
	is.True(ValidMatchID(g.ID()))

	_, err = NewGame(8, defaultPlayers[:1])
	is.True(errors.Is(err, ErrNoPlayers))
	_, err = NewGame(9, defaultPlayers)
	is.True(errors.Is(err, board.ErrInvalidSize))
}

func TestPlayMoveRecordsEntry(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(8, defaultPlayers)
	is.NoErr(err)
	res, err := g.PlayMove(pos("d3"), 0)
	is.NoErr(err)
	is.Equal(res.Flipped, []board.Position{{Row: 3, Col: 3}})
	is.Equal(res.Next, board.White)
	is.True(!res.Passed)
	is.Equal(res.Entry, Entry{
		Ply:      1,
		Color:    board.Black,
		Position: board.Position{Row: 2, Col: 3},
		Pieces:   Counts{Black: 4, White: 1},
		Mobility: Counts{Black: board.Mobility(g.Board(), board.Black), White: 3},
		Flips:    1,
	})
	is.Equal(g.Turn(), board.White)
}

func TestIllegalMoveRejected(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(8, defaultPlayers)
	is.NoErr(err)
	_, err = g.PlayMove(pos("a1"), 0)
	is.True(errors.Is(err, board.ErrNoFlips))
	_, err = g.PlayMove(pos("d4"), 0)
	is.True(errors.Is(err, board.ErrOccupied))
	_, err = g.PlayMove(board.Position{Row: 8, Col: 0}, 0)
	is.True(errors.Is(err, board.ErrOutOfBounds))
	// nothing was recorded
	is.Equal(g.History().Len(), 0)
	is.Equal(g.Turn(), board.Black)
}

func TestFullGameReplaysToLiveBoard(t *testing.T) {
	is := is.New(t)
	for _, size := range []int{6, 8} {
		g, err := NewGame(size, defaultPlayers)
		is.NoErr(err)
		playOut(t, g)
		is.True(board.IsTerminal(g.Board()))

		h := g.History()
		final, err := BoardAtPly(h, h.Len(), size)
		is.NoErr(err)
		is.True(final.Equals(g.Board()))

		last, ok := h.Last()
		is.True(ok)
		black, white := g.Board().Counts()
		is.Equal(last.Pieces, Counts{Black: black, White: white})

		_, err = g.PlayMove(pos("a1"), 0)
		is.True(errors.Is(err, ErrGameOver))
		is.Equal(g.Turn(), board.Empty)
		is.Equal(g.LegalMoves(), []board.Position(nil))
	}
}

func TestPositionKeyTracksBoard(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(6, defaultPlayers)
	is.NoErr(err)
	z, err := zobrist.ForSize(6)
	is.NoErr(err)
	for g.Playing() == Playing {
		moves := g.LegalMoves()
		_, err := g.PlayMove(moves[len(moves)-1], 0)
		is.NoErr(err)
		is.Equal(g.PositionKey(), z.Hash(g.Board(), g.Turn()))
	}
}

func TestNewFromHistory(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(8, defaultPlayers)
	is.NoErr(err)
	for i := 0; i < 10 && g.Playing() == Playing; i++ {
		moves := g.LegalMoves()
		_, err := g.PlayMove(moves[i%len(moves)], 0)
		is.NoErr(err)
	}
	g2, err := NewFromHistory(g.History(), 8, defaultPlayers)
	is.NoErr(err)
	is.True(g2.Board().Equals(g.Board()))
	is.Equal(g2.Turn(), g.Turn())
	is.Equal(g2.PositionKey(), g.PositionKey())
	is.Equal(g2.History().Entries(), g.History().Entries())
}

func TestNewFromHistoryRejectsCorruption(t *testing.T) {
	is := is.New(t)
	h := NewHistory(
		Entry{Ply: 1, Color: board.Black, Position: pos("d3")},
		Entry{Ply: 2, Color: board.Black, Position: pos("c3")},
	)
	_, err := NewFromHistory(h, 8, defaultPlayers)
	is.True(errors.Is(err, ErrOutOfTurn))

	h = NewHistory(Entry{Ply: 1, Color: board.Black, Position: pos("a1")})
	_, err = NewFromHistory(h, 8, defaultPlayers)
	is.True(errors.Is(err, board.ErrNoFlips))
}

func TestForcedPass(t *testing.T) {
	is := is.New(t)
	// 4x4 games run into passes quickly. Whenever one happens the mover
	// stays on turn and the skip is counted.
	g, err := NewGame(4, defaultPlayers)
	is.NoErr(err)
	passes := 0
	for g.Playing() == Playing {
		mover := g.Turn()
		moves := g.LegalMoves()
		res, err := g.PlayMove(moves[0], 0)
		is.NoErr(err)
		if res.Passed {
			passes++
			is.Equal(g.Turn(), mover)
			is.True(!board.CanMove(g.Board(), mover.Opponent()))
		}
	}
	is.Equal(g.Skipped(board.Black)+g.Skipped(board.White), passes)
	st, err := Summarize(g.History(), 4)
	is.NoErr(err)
	is.Equal(st.Skipped.Black+st.Skipped.White, passes)
}

func TestWinner(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(6, defaultPlayers)
	is.NoErr(err)
	is.Equal(g.Winner(), board.Empty)
	playOut(t, g)
	black, white := g.Board().Counts()
	switch {
	case black > white:
		is.Equal(g.Winner(), board.Black)
	case white > black:
		is.Equal(g.Winner(), board.White)
	default:
		is.Equal(g.Winner(), board.Empty)
	}
}

func TestDisplayText(t *testing.T) {
	is := is.New(t)
	board.ColorSupport = false
	g, err := NewGame(8, defaultPlayers)
	is.NoErr(err)
	_, err = g.PlayMove(pos("d3"), 0)
	is.NoErr(err)
	txt := g.ToDisplayText()
	is.True(len(txt) > 0)
	is.True(strings.Contains(txt, "JD"))
	is.True(strings.Contains(txt, "-> cesar"))
	is.True(strings.Contains(txt, "Ply 1"))
	is.True(strings.Contains(txt, "at d3, flipping 1"))
}
