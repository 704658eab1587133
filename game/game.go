// Package game drives a match of the capture game: it owns the live board,
// the side to move and the history, and applies the turn-skip rule after
// every placement. The rules themselves live in package board.
// Note: a Game doesn't care how it is played. Move providers, human or
// otherwise, live outside of this package.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/reverc/reverc/board"
	"github.com/reverc/reverc/zobrist"
)

var (
	ErrGameOver  = errors.New("game is over")
	ErrOutOfTurn = errors.New("move played out of turn")
	ErrNoPlayers = errors.New("a match needs exactly two players")
)

// PlayState is where the match is at.
type PlayState int

const (
	Playing PlayState = iota
	GameOver
)

func (s PlayState) String() string {
	if s == GameOver {
		return "game over"
	}
	return "playing"
}

// Result is what a single placement did.
type Result struct {
	Entry   Entry
	Flipped []board.Position
	// Next is the side to move now; Empty once the game is over.
	Next board.Cell
	// Passed is set when the opponent had no move and was skipped.
	Passed   bool
	GameOver bool
}

// Game is the session controller for one match. It is not safe for
// concurrent use; independent matches need no coordination.
type Game struct {
	id      string
	size    int
	board   board.Board
	onturn  board.Cell
	playing PlayState
	players playerStates
	history History

	zobrist *zobrist.Zobrist
	key     uint64
}

// NewGame starts a match on the canonical board. Black moves first.
func NewGame(size int, players []PlayerInfo) (*Game, error) {
	if len(players) != 2 {
		return nil, ErrNoPlayers
	}
	b, err := board.NewBoard(size)
	if err != nil {
		return nil, err
	}
	z, err := zobrist.ForSize(size)
	if err != nil {
		return nil, err
	}
	g := &Game{
		id:      NewMatchID(),
		size:    size,
		board:   b,
		onturn:  board.Black,
		playing: Playing,
		zobrist: z,
	}
	for i, p := range players {
		g.players[i] = &playerState{PlayerInfo: p}
	}
	g.key = z.Hash(b, g.onturn)
	log.Debug().Str("id", g.id).Int("size", size).Msg("new game")
	return g, nil
}

// NewFromHistory replays a recorded history through a new Game, checking
// every move as it goes, so a corrupt history is caught here rather than
// producing a garbage board.
func NewFromHistory(h History, size int, players []PlayerInfo) (*Game, error) {
	g, err := NewGame(size, players)
	if err != nil {
		return nil, err
	}
	for i := 0; i < h.Len(); i++ {
		e := h.At(i)
		if e.Color != g.onturn {
			return nil, fmt.Errorf("ply %d: %w: %v to move, got %v", e.Ply, ErrOutOfTurn, g.onturn, e.Color)
		}
		if _, err := g.PlayMove(e.Position, e.Elapsed); err != nil {
			return nil, fmt.Errorf("ply %d: %w", e.Ply, err)
		}
	}
	return g, nil
}

// SetID overrides the generated match id, e.g. when restoring a saved
// match.
func (g *Game) SetID(id string) {
	g.id = id
}

func (g *Game) ID() string {
	return g.id
}

func (g *Game) Size() int {
	return g.size
}

// Board returns the live board. Boards are values; changing the game later
// does not change a board returned earlier.
func (g *Game) Board() board.Board {
	return g.board
}

// Turn is the side to move, Empty when the game is over.
func (g *Game) Turn() board.Cell {
	return g.onturn
}

func (g *Game) Playing() PlayState {
	return g.playing
}

func (g *Game) History() History {
	return g.history
}

func (g *Game) Player(c board.Cell) PlayerInfo {
	return g.players.of(c).PlayerInfo
}

// PositionKey is the zobrist key of the live position and side to move.
func (g *Game) PositionKey() uint64 {
	return g.key
}

// LegalMoves lists the moves of the side to move.
func (g *Game) LegalMoves() []board.Position {
	if g.playing == GameOver {
		return nil
	}
	return board.LegalMoves(g.board, g.onturn)
}

// BoardAtPly rebuilds an earlier position of this match.
func (g *Game) BoardAtPly(ply int) (board.Board, error) {
	return BoardAtPly(g.history, ply, g.size)
}

// Skipped is how many times c had to pass.
func (g *Game) Skipped(c board.Cell) int {
	return g.players.of(c).skipped
}

// PlayMove plays p for the side to move. elapsed is the provider's think
// time and is only recorded.
func (g *Game) PlayMove(p board.Position, elapsed time.Duration) (Result, error) {
	if g.playing == GameOver {
		return Result{}, ErrGameOver
	}
	mover := g.onturn
	nb, flipped, err := board.PlayMove(g.board, mover, p)
	if err != nil {
		return Result{}, err
	}
	black, white := nb.Counts()
	entry := Entry{
		Ply:      g.history.Len() + 1,
		Color:    mover,
		Position: p,
		Pieces:   Counts{Black: black, White: white},
		Mobility: Counts{
			Black: board.Mobility(nb, board.Black),
			White: board.Mobility(nb, board.White),
		},
		Flips:   len(flipped),
		Elapsed: elapsed,
	}
	g.board = nb
	g.history = g.history.Append(entry)
	g.players.of(mover).recordMove(len(flipped), elapsed)

	res := Result{Entry: entry, Flipped: flipped}
	next, ok := board.NextToMove(nb, mover)
	switch {
	case !ok:
		g.playing = GameOver
		g.key = g.zobrist.AddMove(g.key, mover, p, flipped, mover, board.Empty)
		g.onturn = board.Empty
		res.GameOver = true
		log.Debug().Str("id", g.id).Int("black", black).Int("white", white).Msg("game over")
	case next == mover:
		g.players.of(mover.Opponent()).skipped++
		g.key = g.zobrist.AddMove(g.key, mover, p, flipped, mover, mover)
		res.Passed = true
		log.Debug().Str("id", g.id).Str("skipped", mover.Opponent().String()).Msg("no legal move, passing")
	default:
		g.key = g.zobrist.AddMove(g.key, mover, p, flipped, mover, next)
		g.onturn = next
	}
	res.Next = g.onturn
	return res, nil
}

// Winner returns the colour with more pieces, or Empty for a draw or an
// unfinished game.
func (g *Game) Winner() board.Cell {
	if g.playing != GameOver {
		return board.Empty
	}
	return winnerOf(g.board)
}

func winnerOf(b board.Board) board.Cell {
	black, white := b.Counts()
	switch {
	case black > white:
		return board.Black
	case white > black:
		return board.White
	}
	return board.Empty
}
