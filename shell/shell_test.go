package shell

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/reverc/reverc/config"
	"github.com/reverc/reverc/game"
)

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"autoplay -file /path/to/log.csv",
			&shellcmd{"autoplay", nil, CmdOptions{"file": {"/path/to/log.csv"}}},
			nil},
		{"play d3",
			&shellcmd{"play", []string{"d3"}, CmdOptions{}},
			nil},
		{`save "my match.json"`,
			&shellcmd{"save", []string{"my match.json"}, CmdOptions{}},
			nil},
		{"autoplay 50 -threads 4 -file foo.csv ",
			&shellcmd{"autoplay",
				[]string{"50"},
				CmdOptions{"threads": {"4"}, "file": {"foo.csv"}}},
			nil,
		},
		{"autoplay 50 -file",
			nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

func newTestController() *ShellController {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigBlackName, "alice")
	cfg.Set(config.ConfigWhiteName, "bob")
	return newController(cfg, &strings.Builder{})
}

func run(is *is.I, sc *ShellController, line string) string {
	resp, err := sc.Execute(line)
	is.NoErr(err)
	return resp.message
}

func TestPlayAndNavigate(t *testing.T) {
	is := is.New(t)
	sc := newTestController()

	_, err := sc.Execute("play d3")
	is.True(errors.Is(err, errNoGame))

	run(is, sc, "new")
	is.Equal(sc.game.Size(), 8)
	out := run(is, sc, "moves")
	is.True(strings.HasPrefix(out, "4 legal moves for black: "))

	out = run(is, sc, "play d3")
	is.True(strings.Contains(out, "alice placed ● at d3, flipping 1"))
	run(is, sc, "play c3")
	is.Equal(sc.curPly, 2)

	out = run(is, sc, "p")
	is.True(strings.Contains(out, "Ply 1 of 2"))
	run(is, sc, "turn 0")
	_, err = sc.Execute("p")
	is.True(errors.Is(err, game.ErrPlyOutOfRange))
	_, err = sc.Execute("turn 9")
	is.True(errors.Is(err, game.ErrPlyOutOfRange))

	// playing from the start drops both recorded moves
	run(is, sc, "play f5")
	is.Equal(sc.game.History().Len(), 1)
	is.Equal(sc.game.History().At(0).Position.String(), "f5")

	_, err = sc.Execute("play a1")
	is.True(err != nil)
	_, err = sc.Execute("bogus")
	is.True(err != nil)
	_, err = sc.Execute("exit")
	is.True(errors.Is(err, errQuit))
}

func TestSaveLoadAndLog(t *testing.T) {
	is := is.New(t)
	sc := newTestController()
	dir := t.TempDir()
	run(is, sc, "new 6")
	for _, m := range []string{"c2", "b2", "b3"} {
		run(is, sc, "play "+m)
	}
	want := sc.game.PositionKey()
	id := sc.game.ID()

	for _, name := range []string{"m.json", "m.yaml", "m.log"} {
		path := filepath.Join(dir, name)
		if name == "m.log" {
			run(is, sc, "log "+path)
		} else {
			run(is, sc, "save "+path)
		}
		other := newTestController()
		run(is, other, "load "+path)
		is.Equal(other.game.PositionKey(), want)
		is.Equal(other.game.ID(), id)
		is.Equal(other.curPly, 3)
	}
}

func TestStatsPreviewAndHelp(t *testing.T) {
	is := is.New(t)
	sc := newTestController()
	run(is, sc, "new")
	run(is, sc, "play d3")
	out := run(is, sc, "stats")
	is.True(strings.Contains(out, "Plies: 1"))
	is.True(strings.Contains(out, "alice"))

	out = run(is, sc, "preview 10 -size 6")
	is.True(strings.Contains(out, "Random position after "))
	is.True(strings.HasPrefix(out, "   a b c d e f \n"))

	is.True(strings.HasPrefix(run(is, sc, "help"), "Usage:"))
	is.True(strings.HasPrefix(run(is, sc, "help play"), "play <pos>"))
	_, err := sc.Execute("help nothing")
	is.True(err != nil)

	out = run(is, sc, "setconfig")
	is.True(strings.Contains(out, "board-size"))
	run(is, sc, "setconfig board-size 6")
	run(is, sc, "new")
	is.Equal(sc.game.Size(), 6)
}

func TestAutoplayCommands(t *testing.T) {
	is := is.New(t)
	sc := newTestController()
	dir := t.TempDir()
	csv := filepath.Join(dir, "games.csv")
	run(is, sc, "setconfig board-size 6")
	out := run(is, sc, "autoplay 4 -threads 2 -file "+csv)
	is.True(strings.HasPrefix(out, "Games played: 4\n"))

	out = run(is, sc, "autoanalyze "+csv)
	is.True(strings.HasPrefix(out, "Games played: 4\n"))

	seeds := filepath.Join(dir, "seeds.txt")
	out = run(is, sc, "genseeds 4 "+seeds)
	is.True(strings.HasPrefix(out, "wrote 4 seeds"))
}

func TestCompleter(t *testing.T) {
	is := is.New(t)
	sc := newTestController()
	c := NewShellCompleter(sc)

	m, n := c.Do([]rune("sa"), 2)
	is.Equal(n, 2)
	is.Equal(m, [][]rune{[]rune("ve")})

	run(is, sc, "new")
	line := []rune("play d")
	m, n = c.Do(line, len(line))
	is.Equal(n, 1)
	is.Equal(m, [][]rune{[]rune("3")})

	line = []rune("autoplay -t")
	m, _ = c.Do(line, len(line))
	is.Equal(m, [][]rune{[]rune("hreads")})
}
