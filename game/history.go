package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/reverc/reverc/board"
)

var ErrPlyOutOfRange = errors.New("ply out of range")

// Counts holds a per-colour number.
type Counts struct {
	Black int `json:"B" yaml:"B"`
	White int `json:"W" yaml:"W"`
}

// For returns the count for a colour; Empty reads as zero.
func (c Counts) For(color board.Cell) int {
	switch color {
	case board.Black:
		return c.Black
	case board.White:
		return c.White
	}
	return 0
}

// Entry records one placed move and the position it produced.
type Entry struct {
	// Ply is 1-based: the first move of the match is ply 1.
	Ply      int
	Color    board.Cell
	Position board.Position
	// Pieces and Mobility are measured on the board after the move.
	Pieces   Counts
	Mobility Counts
	Flips    int
	// Elapsed is how long the move provider took; zero for humans.
	Elapsed time.Duration
}

func (e Entry) String() string {
	return fmt.Sprintf("%d. %s %s (+%d) %d-%d", e.Ply, e.Color, e.Position,
		e.Flips, e.Pieces.Black, e.Pieces.White)
}

// History is the ordered, append-only record of a match. A History value
// never changes; Append returns a new one.
type History struct {
	entries []Entry
}

// NewHistory copies entries into a History.
func NewHistory(entries ...Entry) History {
	h := History{entries: make([]Entry, len(entries))}
	copy(h.entries, entries)
	return h
}

// Append returns a History with e added at the end. The receiver is left
// as it was.
func (h History) Append(e Entry) History {
	entries := make([]Entry, len(h.entries), len(h.entries)+1)
	copy(entries, h.entries)
	return History{entries: append(entries, e)}
}

func (h History) Len() int {
	return len(h.entries)
}

// At returns the entry with 0-based index i.
func (h History) At(i int) Entry {
	return h.entries[i]
}

// Last returns the most recent entry, if any.
func (h History) Last() (Entry, bool) {
	if len(h.entries) == 0 {
		return Entry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// Entries returns a copy of the entries.
func (h History) Entries() []Entry {
	return append([]Entry(nil), h.entries...)
}

// BoardAtPly rebuilds the board after the first ply moves of h, starting
// from the canonical position. Moves are not re-validated: h must be the
// history of a real match.
func BoardAtPly(h History, ply int, size int) (board.Board, error) {
	if ply < 0 || ply > h.Len() {
		return board.Board{}, fmt.Errorf("%w: %d (history has %d)", ErrPlyOutOfRange, ply, h.Len())
	}
	b, err := board.NewBoard(size)
	if err != nil {
		return board.Board{}, err
	}
	for i := 0; i < ply; i++ {
		e := h.entries[i]
		b, _ = board.ApplyMove(b, e.Color, e.Position)
	}
	return b, nil
}

// Replay returns the board at every ply, from the canonical start (index
// 0) to the final position (index Len).
func Replay(h History, size int) ([]board.Board, error) {
	b, err := board.NewBoard(size)
	if err != nil {
		return nil, err
	}
	boards := make([]board.Board, 0, h.Len()+1)
	boards = append(boards, b)
	for _, e := range h.entries {
		b, _ = board.ApplyMove(b, e.Color, e.Position)
		boards = append(boards, b)
	}
	return boards, nil
}
