// Package gamelog reads and writes match records: the human-readable
// match log and the structured JSON/YAML match document.
package gamelog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/reverc/reverc/board"
	"github.com/reverc/reverc/game"
)

// Meta is the match information that is not part of the move history.
type Meta struct {
	MatchID   string
	Size      int
	Black     game.PlayerInfo
	White     game.PlayerInfo
	CreatedAt time.Time
}

// MetaOf collects the metadata of a live game.
func MetaOf(g *game.Game, createdAt time.Time) Meta {
	return Meta{
		MatchID:   g.ID(),
		Size:      g.Size(),
		Black:     g.Player(board.Black),
		White:     g.Player(board.White),
		CreatedAt: createdAt,
	}
}

func (m Meta) player(c board.Cell) game.PlayerInfo {
	if c == board.White {
		return m.White
	}
	return m.Black
}

// Players is the player list in the order game.NewGame wants it.
func (m Meta) Players() []game.PlayerInfo {
	return []game.PlayerInfo{m.Black, m.White}
}

const createdLayout = "2006-01-02 15:04:05 MST"

func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.3fs", d.Seconds())
}

func writeHeader(s *strings.Builder, m Meta) {
	fmt.Fprintf(s, "%s ● : ○ %s\n\n", m.Black.DisplayName(), m.White.DisplayName())
	fmt.Fprintf(s, "Game ID: %s\n", m.MatchID)
	fmt.Fprintf(s, "Board: %dx%d\n", m.Size, m.Size)
	fmt.Fprintf(s, "%s\n\n\n", m.CreatedAt.Format(createdLayout))
	s.WriteString("-- Game Start --\n\n")
}

func writeStep(s *strings.Builder, m Meta, e game.Entry, b board.Board) {
	p := m.player(e.Color)
	fmt.Fprintf(s, "Step %d:\n", e.Ply)
	fmt.Fprintf(s, "%s placed %s at (%s).\n", p.DisplayName(), e.Color.Glyph(), e.Position)
	if p.Kind.IsCode() {
		fmt.Fprintf(s, "Approx time: %s\n", formatElapsed(e.Elapsed))
	}
	fmt.Fprintf(s, "Mobility: %s ● %d : %d ○ %s\n", m.Black.DisplayName(),
		e.Mobility.Black, e.Mobility.White, m.White.DisplayName())
	s.WriteString(b.ToLogText())
}

func writeFooter(s *strings.Builder, m Meta, final board.Board, st game.Stats) {
	black, white := final.Counts()
	s.WriteString("\n\n-- Game Over --\n\n")
	fmt.Fprintf(s, "%s ● %d : %d ○ %s\n", m.Black.DisplayName(), black, white, m.White.DisplayName())
	switch {
	case black > white:
		fmt.Fprintf(s, "Winner: %s (Black)\n\n", m.Black.DisplayName())
	case white > black:
		fmt.Fprintf(s, "Winner: %s (White)\n\n", m.White.DisplayName())
	default:
		s.WriteString("Winner: Draw\n\n")
	}
	if m.Black.Kind.IsCode() {
		fmt.Fprintf(s, "%s (Black) used %s, [max turn: %s]\n", m.Black.DisplayName(),
			formatElapsed(st.TotalTime.Black), formatElapsed(st.MaxTime.Black))
	}
	if m.White.Kind.IsCode() {
		fmt.Fprintf(s, "%s (White) used %s, [max turn: %s]\n", m.White.DisplayName(),
			formatElapsed(st.TotalTime.White), formatElapsed(st.MaxTime.White))
	}
	if m.Black.Kind == game.KindCustom || m.White.Kind == game.KindCustom {
		s.WriteString("* Note: All time data is for reference only, and may not be fully accurate.\n")
	}
}

// WriteLog writes the match log for h: a header, one step per move with
// the board after that move, and the final score.
func WriteLog(w io.Writer, m Meta, h game.History) error {
	boards, err := game.Replay(h, m.Size)
	if err != nil {
		return err
	}
	st, err := game.Summarize(h, m.Size)
	if err != nil {
		return err
	}
	var s strings.Builder
	writeHeader(&s, m)
	for i, e := range h.Entries() {
		if i > 0 {
			s.WriteString("\n")
		}
		writeStep(&s, m, e, boards[i+1])
	}
	writeFooter(&s, m, boards[len(boards)-1], st)
	_, err = io.WriteString(w, s.String())
	log.Debug().Str("id", m.MatchID).Int("steps", h.Len()).Msg("wrote match log")
	return err
}

// A Token is a recognised line in a match log.
type Token uint8

const (
	UndefinedToken Token = iota
	IDToken
	BoardToken
	StepToken
	PlacedToken
	TimeToken
)

type logdatum struct {
	token Token
	regex *regexp.Regexp
}

const (
	IDRegex     = `^Game ID:\s*(?P<id>\S+)$`
	BoardRegex  = `^Board:\s*(?P<size>\d+)x\d+$`
	StepRegex   = `^Step (?P<step>\d+):$`
	PlacedRegex = `^.* placed (?P<glyph>[●○]) at \((?P<pos>[a-zA-Z]\d+)\)\.$`
	TimeRegex   = `^Approx time: (?P<secs>[\d.]+)s$`
)

var logRegexes = []logdatum{
	{IDToken, regexp.MustCompile(IDRegex)},
	{BoardToken, regexp.MustCompile(BoardRegex)},
	{StepToken, regexp.MustCompile(StepRegex)},
	{PlacedToken, regexp.MustCompile(PlacedRegex)},
	{TimeToken, regexp.MustCompile(TimeRegex)},
}

var ErrMalformedLog = errors.New("malformed match log")

// Move is one step read back from a match log.
type Move struct {
	Step     int
	Color    board.Cell
	Position board.Position
	Elapsed  time.Duration
}

// ParsedLog is what ParseLog recovers from a match log. Board diagrams,
// names and totals are not read back.
type ParsedLog struct {
	MatchID string
	Size    int
	Moves   []Move
}

func (pl *ParsedLog) addLine(token Token, match []string) error {
	switch token {
	case IDToken:
		pl.MatchID = match[1]
	case BoardToken:
		n, err := strconv.Atoi(match[1])
		if err != nil {
			return err
		}
		pl.Size = n
	case StepToken:
		n, err := strconv.Atoi(match[1])
		if err != nil {
			return err
		}
		if n != len(pl.Moves)+1 {
			return fmt.Errorf("%w: step %d follows step %d", ErrMalformedLog, n, len(pl.Moves))
		}
		pl.Moves = append(pl.Moves, Move{Step: n})
	case PlacedToken, TimeToken:
		if len(pl.Moves) == 0 {
			return fmt.Errorf("%w: %q outside a step", ErrMalformedLog, match[0])
		}
		mv := &pl.Moves[len(pl.Moves)-1]
		if token == TimeToken {
			secs, err := strconv.ParseFloat(match[1], 64)
			if err != nil {
				return err
			}
			mv.Elapsed = time.Duration(math.Round(secs*1e3)) * time.Millisecond
			return nil
		}
		mv.Color = board.Black
		if match[1] == board.White.Glyph() {
			mv.Color = board.White
		}
		p, err := board.ParsePosition(match[2])
		if err != nil {
			return err
		}
		mv.Position = p
	}
	return nil
}

// ParseLog reads the moves back out of a match log written by WriteLog.
// Lines it does not recognise are skipped.
func ParseLog(r io.Reader) (*ParsedLog, error) {
	pl := &ParsedLog{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		for _, datum := range logRegexes {
			match := datum.regex.FindStringSubmatch(line)
			if match == nil {
				continue
			}
			if err := pl.addLine(datum.token, match); err != nil {
				return nil, err
			}
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if pl.Size == 0 {
		return nil, fmt.Errorf("%w: no board size", ErrMalformedLog)
	}
	for _, mv := range pl.Moves {
		if mv.Color == board.Empty {
			return nil, fmt.Errorf("%w: step %d has no placement", ErrMalformedLog, mv.Step)
		}
	}
	return pl, nil
}

// Rebuild plays the parsed moves into a fresh game, checking each one.
func (pl *ParsedLog) Rebuild(players []game.PlayerInfo) (*game.Game, error) {
	g, err := game.NewGame(pl.Size, players)
	if err != nil {
		return nil, err
	}
	if pl.MatchID != "" {
		g.SetID(pl.MatchID)
	}
	for _, mv := range pl.Moves {
		if mv.Color != g.Turn() {
			return nil, fmt.Errorf("step %d: %w: %v to move, log has %v", mv.Step, game.ErrOutOfTurn, g.Turn(), mv.Color)
		}
		if _, err := g.PlayMove(mv.Position, mv.Elapsed); err != nil {
			return nil, fmt.Errorf("step %d: %w", mv.Step, err)
		}
	}
	return g, nil
}
