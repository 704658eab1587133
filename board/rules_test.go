package board

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func pos(name string) Position {
	p, err := ParsePosition(name)
	if err != nil {
		panic(err)
	}
	return p
}

func TestOpeningMoves(t *testing.T) {
	is := is.New(t)
	b := MustNewBoard(8)
	moves := LegalMoves(b, Black)
	is.Equal(moves, []Position{{2, 3}, {3, 2}, {4, 5}, {5, 4}})
	is.Equal(Mobility(b, White), 4)
}

func TestOpeningCapture(t *testing.T) {
	is := is.New(t)
	b := MustNewBoard(8)
	nb, flipped := ApplyMove(b, Black, Position{2, 3})
	is.Equal(flipped, []Position{{3, 3}})
	black, white := nb.Counts()
	is.Equal(black, 4)
	is.Equal(white, 1)
	// the original board is untouched
	black, white = b.Counts()
	is.Equal(black, 2)
	is.Equal(white, 2)
}

func TestIllegalTargets(t *testing.T) {
	is := is.New(t)
	b := MustNewBoard(8)
	for _, p := range []Position{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {3, 3}, {3, 4}} {
		is.True(!IsLegal(b, Black, p))
		is.True(!IsLegal(b, White, p))
	}
	// empty but nothing to flank
	is.True(!IsLegal(b, Black, Position{0, 0}))
	is.True(!IsLegal(b, Empty, Position{2, 3}))
}

func TestCheckMoveReasons(t *testing.T) {
	b := MustNewBoard(8)
	cases := []struct {
		name  string
		color Cell
		p     Position
		want  error
	}{
		{"legal", Black, Position{2, 3}, nil},
		{"out of bounds", Black, Position{8, 8}, ErrOutOfBounds},
		{"occupied", Black, Position{3, 3}, ErrOccupied},
		{"no flips", Black, Position{0, 0}, ErrNoFlips},
		{"not a colour", Empty, Position{2, 3}, ErrNotAColor},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckMove(b, tc.color, tc.p)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestPlayMoveFailsFast(t *testing.T) {
	is := is.New(t)
	b := MustNewBoard(8)
	_, _, err := PlayMove(b, White, Position{0, 0})
	is.True(errors.Is(err, ErrNoFlips))
	nb, flipped, err := PlayMove(b, White, Position{2, 4})
	is.NoErr(err)
	is.Equal(len(flipped), 1)
	is.Equal(nb.At(Position{2, 4}), White)
	is.Equal(nb.At(Position{3, 4}), White)
}

func TestLongRunFlip(t *testing.T) {
	is := is.New(t)
	b := FixtureBoard(LongRun)
	is.True(IsLegal(b, Black, pos("a1")))
	nb, flipped := ApplyMove(b, Black, pos("a1"))
	is.Equal(len(flipped), 5)
	for _, name := range []string{"b1", "c1", "d1", "e1", "f1"} {
		is.Equal(nb.At(pos(name)), Black)
	}
	// from the other end white flanks the single black at g1
	nb, flipped = ApplyMove(b, White, pos("h1"))
	is.Equal(flipped, []Position{{0, 6}})
	is.Equal(nb.Count(Black), 2)
}

func TestMultiDirectionCapture(t *testing.T) {
	is := is.New(t)
	b := MustFromRows([]string{
		"B.B.B.",
		".WWW..",
		"BW.WB.",
		".WWW..",
		"B.B.B.",
		"......",
	})
	nb, flipped := ApplyMove(b, Black, pos("c3"))
	is.Equal(len(flipped), 8)
	is.Equal(nb.Count(White), 0)
	is.Equal(nb.Count(Black), 17)
}

// A run closed by the edge or by an empty cell flips nothing in that
// direction even when another direction captures.
func TestCaptureIgnoresOpenRuns(t *testing.T) {
	is := is.New(t)
	b := MustFromRows([]string{
		"......",
		".WWB..",
		"......",
		".W....",
		".W....",
		"......",
	})
	// a2 flanks b2,c2 to the right; below it b4,b5 are not in line.
	nb, flipped := ApplyMove(b, Black, pos("a2"))
	is.Equal(flipped, []Position{{1, 1}, {1, 2}})
	is.Equal(nb.At(pos("b4")), White)

	b = MustFromRows([]string{
		"......",
		"......",
		"..W...",
		"..W...",
		"..B...",
		"......",
	})
	nb, flipped = ApplyMove(b, Black, pos("c2"))
	is.Equal(len(flipped), 2)
	is.Equal(nb.Count(White), 0)
}

func TestApplyNeverEmpties(t *testing.T) {
	b := MustNewBoard(8)
	color := Black
	for ply := 0; ply < 60; ply++ {
		moves := LegalMoves(b, color)
		if len(moves) == 0 {
			color = color.Opponent()
			moves = LegalMoves(b, color)
			if len(moves) == 0 {
				break
			}
		}
		m := moves[ply%len(moves)]
		before := b.Count(Empty)
		nb, flipped := ApplyMove(b, color, m)
		if nb.Count(Empty) != before-1 {
			t.Fatalf("ply %d: empties went from %d to %d", ply, before, nb.Count(Empty))
		}
		if len(flipped) == 0 {
			t.Fatalf("ply %d: legal move %v flipped nothing", ply, m)
		}
		for _, f := range flipped {
			if b.At(f) != color.Opponent() || nb.At(f) != color {
				t.Fatalf("ply %d: bad flip at %v", ply, f)
			}
		}
		if nb.At(m) != color {
			t.Fatalf("ply %d: target not placed", ply)
		}
		b = nb
		color = color.Opponent()
	}
}

func TestTerminal(t *testing.T) {
	is := is.New(t)
	is.True(!IsTerminal(MustNewBoard(8)))
	is.True(IsTerminal(FixtureBoard(FilledSix)))
	is.True(IsTerminal(FixtureBoard(LoneBlack)))
	is.True(!IsTerminal(FixtureBoard(BlackMustPass)))
}

func TestNextToMove(t *testing.T) {
	is := is.New(t)
	b := FixtureBoard(BlackMustPass)
	is.Equal(LegalMoves(b, Black), []Position(nil))
	is.Equal(LegalMoves(b, White), []Position{{0, 0}})

	// white just moved; black cannot, so white goes again
	next, ok := NextToMove(b, White)
	is.True(ok)
	is.Equal(next, White)

	nb, _ := ApplyMove(b, White, pos("a1"))
	_, ok = NextToMove(nb, White)
	is.True(!ok)
	is.True(IsTerminal(nb))

	next, ok = NextToMove(MustNewBoard(8), Black)
	is.True(ok)
	is.Equal(next, White)
}

func TestApplyMoveOffBoardIsNoOp(t *testing.T) {
	is := is.New(t)
	b := MustNewBoard(8)
	for _, p := range []Position{{8, 0}, {-1, 3}, {2, 8}, {0, -1}} {
		nb, flipped := ApplyMove(b, Black, p)
		is.True(nb.Equals(b))
		is.Equal(len(flipped), 0)
	}
	nb, flipped := ApplyMove(b, Empty, pos("d3"))
	is.True(nb.Equals(b))
	is.Equal(len(flipped), 0)
}
