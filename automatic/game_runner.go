// Package automatic plays matches between two move providers without a
// human in the loop, one at a time or in large parallel batches.
package automatic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/reverc/reverc/board"
	"github.com/reverc/reverc/config"
	"github.com/reverc/reverc/game"
	"github.com/reverc/reverc/turnplayer"
)

var ErrNotStarted = errors.New("no game in progress")

// GameRunner drives a game.Game by asking each side's provider for moves.
type GameRunner struct {
	config  *config.Config
	players [2]turnplayer.TurnPlayer
	guarded [2]*turnplayer.Fallback
	game    *game.Game
	logchan chan string
}

// NewGameRunner sets up a runner for black against white. Each provider is
// wrapped so that a failing one falls back to a random legal move. If
// logchan is not nil a CSV line is sent on it for every move played.
func NewGameRunner(logchan chan string, cfg *config.Config, black, white turnplayer.TurnPlayer) *GameRunner {
	retries := uint(cfg.GetInt(config.ConfigProviderRetries))
	return &GameRunner{
		config:  cfg,
		players: [2]turnplayer.TurnPlayer{black, white},
		guarded: [2]*turnplayer.Fallback{
			turnplayer.NewFallback(black, retries, 0),
			turnplayer.NewFallback(white, retries, 0),
		},
		logchan: logchan,
	}
}

// NewGameRunnerFromConfig builds both providers from the black-player and
// white-player settings.
func NewGameRunnerFromConfig(logchan chan string, cfg *config.Config) (*GameRunner, error) {
	black, err := providerFromConfig(cfg, config.ConfigBlackPlayer, config.ConfigBlackName)
	if err != nil {
		return nil, err
	}
	white, err := providerFromConfig(cfg, config.ConfigWhitePlayer, config.ConfigWhiteName)
	if err != nil {
		return nil, err
	}
	return NewGameRunner(logchan, cfg, black, white), nil
}

func providerFromConfig(cfg *config.Config, specKey, nameKey string) (turnplayer.TurnPlayer, error) {
	return turnplayer.FromSpec(cfg.GetString(specKey), cfg.GetString(nameKey))
}

func (r *GameRunner) provider(c board.Cell) *turnplayer.Fallback {
	if c == board.White {
		return r.guarded[1]
	}
	return r.guarded[0]
}

// Players returns the black and white providers.
func (r *GameRunner) Players() [2]turnplayer.TurnPlayer {
	return r.players
}

// Game is the game currently or most recently played.
func (r *GameRunner) Game() *game.Game {
	return r.game
}

// StartGame starts a fresh match at the configured board size.
func (r *GameRunner) StartGame() error {
	g, err := game.NewGame(r.config.GetInt(config.ConfigBoardSize), []game.PlayerInfo{
		turnplayer.Info(r.players[0]),
		turnplayer.Info(r.players[1]),
	})
	if err != nil {
		return err
	}
	r.game = g
	return nil
}

// PlayTurn asks the side to move for a move and plays it.
func (r *GameRunner) PlayTurn(ctx context.Context) (game.Result, error) {
	if r.game == nil {
		return game.Result{}, ErrNotStarted
	}
	color := r.game.Turn()
	p := r.provider(color)
	legal := r.game.LegalMoves()
	if len(legal) == 0 {
		return game.Result{}, game.ErrGameOver
	}

	st := time.Now()
	prop, err := p.ProposeMove(ctx, r.game.Board(), color, legal)
	if err != nil {
		return game.Result{}, fmt.Errorf("%s: %w", p.Name(), err)
	}
	elapsed := prop.Elapsed
	if elapsed == 0 {
		elapsed = time.Since(st)
	}
	res, err := r.game.PlayMove(prop.Position, elapsed)
	if err != nil {
		return game.Result{}, err
	}
	if prop.Explanation != "" {
		zerolog.Ctx(ctx).Debug().Str("player", p.Name()).Msg(prop.Explanation)
	}

	if r.logchan != nil {
		e := res.Entry
		r.logchan <- fmt.Sprintf("%v,%v,%v,%v,%v,%v,%v,%v,%v,%v,%v\n",
			r.game.ID(),
			e.Ply,
			e.Color.Letter(),
			p.Name(),
			e.Position,
			e.Flips,
			e.Pieces.Black,
			e.Pieces.White,
			e.Mobility.Black,
			e.Mobility.White,
			e.Elapsed.Milliseconds())
	}
	return res, nil
}

// PlayFull starts a game and plays it to the end.
func (r *GameRunner) PlayFull(ctx context.Context) error {
	if err := r.StartGame(); err != nil {
		return err
	}
	for r.game.Playing() == game.Playing {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := r.PlayTurn(ctx); err != nil {
			return err
		}
	}
	black, white := r.game.Board().Counts()
	zerolog.Ctx(ctx).Debug().Str("id", r.game.ID()).Int("black", black).Int("white", white).
		Int("plies", r.game.History().Len()).Msg("game over")
	return nil
}
