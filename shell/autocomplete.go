package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/reverc/reverc/board"
	"github.com/reverc/reverc/config"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"autoplay": {
		Options: []string{"-threads", "-file"},
	},
	"preview": {
		Options: []string{"-size"},
	},
	"help": {
		Args: []string{"play", "autoplay", "load"},
	},
	"setconfig": {
		Args: []string{
			config.ConfigBoardSize, config.ConfigPreviewPlies, config.ConfigDebug,
			config.ConfigAutoplayThreads, config.ConfigAutoplayGames,
			config.ConfigProviderRetries, config.ConfigDataPath,
			config.ConfigBlackName, config.ConfigWhiteName,
			config.ConfigBlackPlayer, config.ConfigWhitePlayer, config.ConfigSeedFile,
		},
	},
}

var commandNames = []string{
	"new", "play", "moves", "show", "s", "n", "p", "turn", "last", "gid",
	"preview", "stats", "save", "load", "log", "autoplay", "autoanalyze",
	"genseeds", "setconfig", "help", "exit",
}

// Do implements the readline.AutoCompleter interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// unterminated quote and the like
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		if cmdName == "play" && c.sc.game != nil {
			completions = lo.Map(c.sc.game.LegalMoves(), func(p board.Position, _ int) string {
				return p.String()
			})
		} else if metadata, exists := commandMetadata[cmdName]; exists {
			if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
				completions = metadata.Options
			} else {
				completions = metadata.Args
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
