package turnplayer

import (
	"context"
	"time"

	"github.com/reverc/reverc/board"
	"github.com/reverc/reverc/game"
)

// Proposal is a move candidate from a provider. It still has to be
// validated before it is played.
type Proposal struct {
	Position board.Position
	// Elapsed is how long the provider took to decide.
	Elapsed time.Duration
	// ReturnValue is whatever status code the provider reported.
	ReturnValue int
	// Explanation is free text from the provider, if any.
	Explanation string
}

// TurnPlayer proposes moves for one side of a match. legal is the set of
// legal placements for color on b; it is never empty when ProposeMove is
// called by the runner.
type TurnPlayer interface {
	Name() string
	Kind() game.PlayerKind
	ProposeMove(ctx context.Context, b board.Board, color board.Cell, legal []board.Position) (Proposal, error)
}

// Info is the player description the game records for a TurnPlayer.
func Info(p TurnPlayer) game.PlayerInfo {
	return game.PlayerInfo{Name: p.Name(), Kind: p.Kind()}
}
