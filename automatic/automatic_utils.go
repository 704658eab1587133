package automatic

// Batches of computer vs computer matches, for comparing providers.

import (
	"context"
	"encoding/csv"
	"errors"
	"expvar"
	"fmt"
	"io"
	"strconv"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/reverc/reverc/board"
	"github.com/reverc/reverc/config"
	"github.com/reverc/reverc/turnplayer"
)

var (
	GamesPlayed *expvar.Int
	IsPlaying   *expvar.Int
)

func init() {
	GamesPlayed = expvar.NewInt("gamesPlayed")
	IsPlaying = expvar.NewInt("isPlaying")
}

// playing is held for the whole of a PlayGames call; only one batch runs
// at a time.
var playing atomic.Bool

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

var csvHeader = []string{"gameID", "black", "white", "blackScore", "whiteScore", "plies", "winner"}

type matchResult struct {
	id         string
	black      string
	white      string
	blackScore int
	whiteScore int
	plies      int
}

func (m matchResult) record() []string {
	winner := board.Empty
	switch {
	case m.blackScore > m.whiteScore:
		winner = board.Black
	case m.whiteScore > m.blackScore:
		winner = board.White
	}
	return []string{m.id, m.black, m.white, strconv.Itoa(m.blackScore),
		strconv.Itoa(m.whiteScore), strconv.Itoa(m.plies), winner.Letter()}
}

func (r *GameRunner) result() matchResult {
	black, white := r.game.Board().Counts()
	return matchResult{
		id:         r.game.ID(),
		black:      r.players[0].Name(),
		white:      r.players[1].Name(),
		blackScore: black,
		whiteScore: white,
		plies:      r.game.History().Len(),
	}
}

// reseed makes the random providers of this runner deterministic for one
// match. White's seed is black's with the first byte inverted.
func (r *GameRunner) reseed(seed [32]byte) {
	for i, p := range r.players {
		rp, ok := p.(*turnplayer.RandomPlayer)
		if !ok {
			continue
		}
		s := seed
		s[0] ^= byte(0xff * i)
		rp.Reseed(s)
	}
}

// PlayGames plays n matches between the configured providers on the given
// number of threads, writing one CSV row per finished match to w. It
// returns the report for every match that finished; when ctx is cancelled
// that is a partial report together with the context's error.
func PlayGames(ctx context.Context, cfg *config.Config, n, threads int, w io.Writer) (*Report, error) {
	if !playing.CompareAndSwap(false, true) {
		return nil, ErrAlreadyPlaying
	}
	defer playing.Store(false)
	if threads < 1 {
		threads = 1
	}
	var seeds [][32]byte
	if path := cfg.GetString(config.ConfigSeedFile); path != "" {
		var err error
		seeds, err = LoadSeeds(path)
		if err != nil {
			return nil, err
		}
		if len(seeds) < n {
			return nil, fmt.Errorf("seed file %s has %d seeds, need %d", path, len(seeds), n)
		}
	}
	// fail early on a bad player spec
	if _, err := NewGameRunnerFromConfig(nil, cfg); err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	logger.Debug().Int("games", n).Int("threads", threads).Msg("starting games")
	GamesPlayed.Set(0)

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan int, 100)
	results := make(chan matchResult, 100)

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < n; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				logger.Info().Msg("got stop signal, exiting soon...")
				return gctx.Err()
			}
		}
		logger.Debug().Msg("finished queueing all jobs")
		return nil
	})

	for t := 0; t < threads; t++ {
		g.Go(func() error {
			r, err := NewGameRunnerFromConfig(nil, cfg)
			if err != nil {
				return err
			}
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for i := range jobs {
				if seeds != nil {
					r.reseed(seeds[i])
				}
				if err := r.PlayFull(gctx); err != nil {
					return err
				}
				GamesPlayed.Add(1)
				select {
				case results <- r.result():
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	errc := make(chan error, 1)
	go func() {
		errc <- g.Wait()
		close(results)
	}()

	cw := csv.NewWriter(w)
	var writeErr error
	if err := cw.Write(csvHeader); err != nil {
		writeErr = err
	}
	rb := newReportBuilder()
	for res := range results {
		rb.add(res)
		if writeErr == nil {
			writeErr = cw.Write(res.record())
		}
	}
	cw.Flush()
	if writeErr == nil {
		writeErr = cw.Error()
	}

	report := rb.finish()
	logger.Info().Int("games", report.Games).Msg("all games finished")
	if err := <-errc; err != nil {
		return report, err
	}
	return report, writeErr
}
