package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/reverc/reverc/automatic"
	"github.com/reverc/reverc/board"
	"github.com/reverc/reverc/config"
	"github.com/reverc/reverc/game"
	"github.com/reverc/reverc/gamelog"
	"github.com/reverc/reverc/preview"
)

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) players() []game.PlayerInfo {
	return []game.PlayerInfo{
		{Name: sc.config.GetString(config.ConfigBlackName), Kind: game.KindHuman},
		{Name: sc.config.GetString(config.ConfigWhiteName), Kind: game.KindHuman},
	}
}

func (sc *ShellController) setGame(g *game.Game, createdAt time.Time) {
	sc.game = g
	sc.createdAt = createdAt
	sc.curPly = g.History().Len()
}

func (sc *ShellController) setToPly(ply int) error {
	if sc.game == nil {
		return errNoGame
	}
	if ply < 0 || ply > sc.game.History().Len() {
		return fmt.Errorf("%w: %d not in [0, %d]", game.ErrPlyOutOfRange, ply, sc.game.History().Len())
	}
	sc.curPly = ply
	return nil
}

// displayText shows the live game, or the board at curPly when the user
// is looking back through the history.
func (sc *ShellController) displayText() (string, error) {
	h := sc.game.History()
	if sc.curPly == h.Len() {
		return sc.game.ToDisplayText(), nil
	}
	b, err := sc.game.BoardAtPly(sc.curPly)
	if err != nil {
		return "", err
	}
	var hl []board.Position
	var sb strings.Builder
	if sc.curPly > 0 {
		e := h.At(sc.curPly - 1)
		hl = append(hl, e.Position)
		fmt.Fprintf(&sb, "\n%s", e)
	}
	black, white := b.Counts()
	fmt.Fprintf(&sb, "\nPly %d of %d   ● %d : %d ○", sc.curPly, h.Len(), black, white)
	return b.ToDisplayText(hl...) + sb.String(), nil
}

func (sc *ShellController) showGame() (*Response, error) {
	txt, err := sc.displayText()
	if err != nil {
		return nil, err
	}
	return msg(txt), nil
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	size := sc.config.GetInt(config.ConfigBoardSize)
	if len(cmd.args) > 0 {
		var err error
		size, err = strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	g, err := game.NewGame(size, sc.players())
	if err != nil {
		return nil, err
	}
	sc.setGame(g, time.Now())
	return sc.showGame()
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <position>, e.g. play d3")
	}
	p, err := board.ParsePosition(cmd.args[0])
	if err != nil {
		return nil, err
	}
	h := sc.game.History()
	if sc.curPly < h.Len() {
		// playing from an earlier position drops the moves after it
		g, err := game.NewFromHistory(game.NewHistory(h.Entries()[:sc.curPly]...),
			sc.game.Size(), []game.PlayerInfo{sc.game.Player(board.Black), sc.game.Player(board.White)})
		if err != nil {
			return nil, err
		}
		g.SetID(sc.game.ID())
		log.Debug().Int("ply", sc.curPly).Int("dropped", h.Len()-sc.curPly).Msg("truncated history")
		sc.game = g
	}
	mover := sc.game.Turn()
	res, err := sc.game.PlayMove(p, 0)
	if err != nil {
		return nil, err
	}
	sc.curPly = sc.game.History().Len()
	out := sc.game.ToDisplayText()
	if res.Passed {
		out += fmt.Sprintf("\n%s has no legal move; %s plays again.",
			sc.game.Player(mover.Opponent()).DisplayName(), mover)
	}
	return msg(out), nil
}

func (sc *ShellController) moves(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if sc.game.Playing() == game.GameOver {
		return msg("Game is over; no legal moves."), nil
	}
	legal := sc.game.LegalMoves()
	b := sc.game.Board()
	turn := sc.game.Turn()
	names := lo.Map(legal, func(p board.Position, _ int) string {
		_, flipped := board.ApplyMove(b, turn, p)
		return fmt.Sprintf("%s(+%d)", p, len(flipped))
	})
	return msg(fmt.Sprintf("%d legal moves for %s: %s", len(legal), turn, strings.Join(names, " "))), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return sc.showGame()
}

func (sc *ShellController) turn(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("need argument for turn")
	}
	t, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if err := sc.setToPly(t); err != nil {
		return nil, err
	}
	return sc.showGame()
}

func (sc *ShellController) next(cmd *shellcmd) (*Response, error) {
	if err := sc.setToPly(sc.curPly + 1); err != nil {
		return nil, err
	}
	return sc.showGame()
}

func (sc *ShellController) prev(cmd *shellcmd) (*Response, error) {
	if err := sc.setToPly(sc.curPly - 1); err != nil {
		return nil, err
	}
	return sc.showGame()
}

func (sc *ShellController) last(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if err := sc.setToPly(sc.game.History().Len()); err != nil {
		return nil, err
	}
	return sc.showGame()
}

func (sc *ShellController) gid(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(game.IdentificationAuthority + " " + sc.game.ID()), nil
}

func (sc *ShellController) preview(cmd *shellcmd) (*Response, error) {
	size := sc.config.GetInt(config.ConfigBoardSize)
	if sc.game != nil {
		size = sc.game.Size()
	}
	size, err := cmd.options.IntDefault("size", size)
	if err != nil {
		return nil, err
	}
	plies := sc.config.GetInt(config.ConfigPreviewPlies)
	if len(cmd.args) > 0 {
		plies, err = strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	b, played, err := sc.sampler.Sample(size, preview.ClampPlies(plies, size))
	if err != nil {
		return nil, err
	}
	black, white := b.Counts()
	return msg(fmt.Sprintf("%s\nRandom position after %d plies   ● %d : %d ○",
		b.ToDisplayText(), played, black, white)), nil
}

func (sc *ShellController) stats(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	st, err := game.Summarize(sc.game.History(), sc.game.Size())
	if err != nil {
		return nil, err
	}
	return msg(statsText(st, sc.game.Player(board.Black), sc.game.Player(board.White))), nil
}

func statsText(st game.Stats, black, white game.PlayerInfo) string {
	var sb strings.Builder
	row := func(label string, b, w any) {
		fmt.Fprintf(&sb, "%-14s %12v %12v\n", label, b, w)
	}
	row("", black.DisplayName(), white.DisplayName())
	row("Pieces", st.Final.Black, st.Final.White)
	row("Corners", st.Corners.Black, st.Corners.White)
	row("Skipped", st.Skipped.Black, st.Skipped.White)
	row("Max flips", st.MaxFlips.Black, st.MaxFlips.White)
	row("Avg mobility", fmt.Sprintf("%.1f", st.AvgMobility.Black), fmt.Sprintf("%.1f", st.AvgMobility.White))
	if black.Kind.IsCode() || white.Kind.IsCode() {
		row("Total time", st.TotalTime.Black, st.TotalTime.White)
		row("Max time", st.MaxTime.Black, st.MaxTime.White)
		row("Avg time", st.AvgTime.Black, st.AvgTime.White)
	}
	winner := "none yet"
	switch st.Winner {
	case board.Black:
		winner = black.DisplayName()
	case board.White:
		winner = white.DisplayName()
	}
	fmt.Fprintf(&sb, "Plies: %d   Leading: %s", st.Plies, winner)
	return sb.String()
}

func (sc *ShellController) save(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("need a filename to save to")
	}
	if err := gamelog.SaveFile(cmd.args[0], gamelog.FromGame(sc.game, sc.createdAt)); err != nil {
		return nil, err
	}
	return msg("saved to " + cmd.args[0]), nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("need a filename to load")
	}
	path := cmd.args[0]
	if strings.EqualFold(filepath.Ext(path), ".log") {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		pl, err := gamelog.ParseLog(f)
		if err != nil {
			return nil, err
		}
		g, err := pl.Rebuild(sc.players())
		if err != nil {
			return nil, err
		}
		sc.setGame(g, time.Now())
		return sc.showGame()
	}
	doc, g, err := gamelog.LoadFile(path)
	if err != nil {
		return nil, err
	}
	sc.setGame(g, doc.CreatedAt)
	return sc.showGame()
}

func (sc *ShellController) writeLog(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("need a filename for the log")
	}
	f, err := os.Create(cmd.args[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()
	err = gamelog.WriteLog(f, gamelog.MetaOf(sc.game, sc.createdAt), sc.game.History())
	if err != nil {
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return msg("wrote log to " + cmd.args[0]), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	n := sc.config.GetInt(config.ConfigAutoplayGames)
	if len(cmd.args) > 0 {
		var err error
		n, err = strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigAutoplayThreads))
	if err != nil {
		return nil, err
	}
	outFile := cmd.options.String("file")
	if outFile == "" {
		outFile = filepath.Join(os.TempDir(), "reverc-autoplay.csv")
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ctx := log.Logger.WithContext(context.Background())
	report, err := automatic.PlayGames(ctx, sc.config, n, threads, f)
	if err != nil {
		return nil, err
	}
	return msg(report.String() + "Results written to " + outFile), nil
}

func (sc *ShellController) autoAnalyze(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("please provide a filename to analyze")
	}
	report, err := automatic.AnalyzeLogFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	return msg(report.String()), nil
}

func (sc *ShellController) genSeeds(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: genseeds <count> <file>")
	}
	n, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if err := automatic.SaveSeeds(automatic.GenerateSeeds(n), cmd.args[1]); err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("wrote %d seeds to %s; use `setconfig %s %s` to replay them",
		n, cmd.args[1], config.ConfigSeedFile, cmd.args[1])), nil
}

func (sc *ShellController) setConfig(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		settings := sc.config.SanitizedSettings()
		keys := lo.Keys(settings)
		sort.Strings(keys)
		lines := lo.Map(keys, func(k string, _ int) string {
			return fmt.Sprintf("%-20s %v", k, settings[k])
		})
		return msg(strings.Join(lines, "\n")), nil
	}
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: setconfig <key> <value>")
	}
	sc.config.Set(cmd.args[0], cmd.args[1])
	return msg(fmt.Sprintf("%s set to %s", cmd.args[0], cmd.args[1])), nil
}
