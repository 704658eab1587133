package turnplayer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/reverc/reverc/board"
	"github.com/reverc/reverc/game"
)

var ErrNotLegal = errors.New("proposed move is not among the legal moves")

// Fallback wraps an unreliable provider. It retries the provider, rejects
// proposals outside the legal set, and when all attempts fail it plays a
// random legal move instead and says so in the explanation.
type Fallback struct {
	inner   TurnPlayer
	retries uint
	delay   time.Duration
	rng     *frand.RNG
}

// NewFallback retries inner up to retries extra times before falling back.
func NewFallback(inner TurnPlayer, retries uint, delay time.Duration) *Fallback {
	return &Fallback{inner: inner, retries: retries, delay: delay, rng: frand.New()}
}

func (f *Fallback) Name() string          { return f.inner.Name() }
func (f *Fallback) Kind() game.PlayerKind { return f.inner.Kind() }

func (f *Fallback) ProposeMove(ctx context.Context, b board.Board, color board.Cell,
	legal []board.Position) (Proposal, error) {

	if len(legal) == 0 {
		return Proposal{}, ErrNoLegalMoves
	}

	p, err := retry.DoWithData(
		func() (Proposal, error) {
			p, err := f.inner.ProposeMove(ctx, b, color, legal)
			if err != nil {
				return Proposal{}, err
			}
			if !lo.Contains(legal, p.Position) {
				return Proposal{}, fmt.Errorf("%w: %s", ErrNotLegal, p.Position)
			}
			return p, nil
		},
		retry.Context(ctx),
		retry.Attempts(f.retries+1),
		retry.Delay(f.delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Debug().Err(err).Uint("attempt", n+1).Str("player", f.inner.Name()).Msg("retrying move provider")
		}),
	)
	if err == nil {
		return p, nil
	}
	if ctx.Err() != nil {
		return Proposal{}, ctx.Err()
	}

	pick := legal[f.rng.Intn(len(legal))]
	log.Warn().Err(err).Str("player", f.inner.Name()).Str("move", pick.String()).
		Msg("move provider failed, playing a random legal move")
	return Proposal{
		Position: pick,
		Explanation: fmt.Sprintf("Failed to get decision from %s, returned a random move. Error: %s",
			f.inner.Name(), err.Error()),
	}, nil
}
