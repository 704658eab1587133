package turnplayer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/reverc/reverc/board"
	"github.com/reverc/reverc/game"
)

var (
	ErrNoLegalMoves    = errors.New("there is no choice for a move")
	ErrScriptExhausted = errors.New("scripted player has no moves left")
)

// RandomPlayer picks uniformly among the legal moves.
type RandomPlayer struct {
	name string
	rng  *frand.RNG
}

func NewRandomPlayer(name string) *RandomPlayer {
	return &RandomPlayer{name: name, rng: frand.New()}
}

// NewSeededRandomPlayer is deterministic for a given seed.
func NewSeededRandomPlayer(name string, seed [32]byte) *RandomPlayer {
	return &RandomPlayer{name: name, rng: frand.NewCustom(seed[:], 1024, 12)}
}

// Reseed makes the rest of this player's choices deterministic.
func (p *RandomPlayer) Reseed(seed [32]byte) {
	p.rng = frand.NewCustom(seed[:], 1024, 12)
}

func (p *RandomPlayer) Name() string          { return p.name }
func (p *RandomPlayer) Kind() game.PlayerKind { return game.KindArchive }

func (p *RandomPlayer) ProposeMove(ctx context.Context, b board.Board, color board.Cell,
	legal []board.Position) (Proposal, error) {

	if len(legal) == 0 {
		return Proposal{}, ErrNoLegalMoves
	}
	st := time.Now()
	pick := legal[p.rng.Intn(len(legal))]
	return Proposal{Position: pick, Elapsed: time.Since(st)}, nil
}

// GreedyPlayer takes whichever move flips the most pieces. Ties go to the
// first such move in row-major order.
type GreedyPlayer struct {
	name string
}

func NewGreedyPlayer(name string) *GreedyPlayer {
	return &GreedyPlayer{name: name}
}

func (p *GreedyPlayer) Name() string          { return p.name }
func (p *GreedyPlayer) Kind() game.PlayerKind { return game.KindArchive }

func (p *GreedyPlayer) ProposeMove(ctx context.Context, b board.Board, color board.Cell,
	legal []board.Position) (Proposal, error) {

	if len(legal) == 0 {
		return Proposal{}, ErrNoLegalMoves
	}
	st := time.Now()
	flips := lo.Map(legal, func(pos board.Position, _ int) int {
		_, flipped := board.ApplyMove(b, color, pos)
		return len(flipped)
	})
	best := 0
	for i, f := range flips {
		if f > flips[best] {
			best = i
		}
	}
	return Proposal{Position: legal[best], Elapsed: time.Since(st), ReturnValue: flips[best]}, nil
}

// ScriptedPlayer replays a fixed list of moves, e.g. the moves a human
// entered or a recorded game. It does not look at legality.
type ScriptedPlayer struct {
	name  string
	kind  game.PlayerKind
	moves []board.Position
	next  int
}

func NewScriptedPlayer(name string, kind game.PlayerKind, moves []board.Position) *ScriptedPlayer {
	return &ScriptedPlayer{name: name, kind: kind, moves: append([]board.Position(nil), moves...)}
}

func (p *ScriptedPlayer) Name() string          { return p.name }
func (p *ScriptedPlayer) Kind() game.PlayerKind { return p.kind }

// Remaining is how many scripted moves are left.
func (p *ScriptedPlayer) Remaining() int {
	return len(p.moves) - p.next
}

func (p *ScriptedPlayer) ProposeMove(ctx context.Context, b board.Board, color board.Cell,
	legal []board.Position) (Proposal, error) {

	if p.next >= len(p.moves) {
		return Proposal{}, fmt.Errorf("%s: %w", p.name, ErrScriptExhausted)
	}
	m := p.moves[p.next]
	p.next++
	return Proposal{Position: m}, nil
}
