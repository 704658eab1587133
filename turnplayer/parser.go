package turnplayer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reverc/reverc/board"
	"github.com/reverc/reverc/game"
)

var ErrUnknownPlayer = errors.New("unknown player spec")

// ParseMoveList reads positions separated by commas or whitespace, e.g.
// "d3 c3,c4".
func ParseMoveList(s string) ([]board.Position, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	moves := make([]board.Position, 0, len(fields))
	for _, f := range fields {
		p, err := board.ParsePosition(f)
		if err != nil {
			return nil, err
		}
		moves = append(moves, p)
	}
	return moves, nil
}

// FromSpec builds a player from a short description:
//
//	random           uniformly random legal moves
//	greedy           most flips
//	script:d3,c3,..  a fixed list of moves
//
// The name defaults to the spec kind.
func FromSpec(spec, name string) (TurnPlayer, error) {
	kind, arg, _ := strings.Cut(strings.TrimSpace(spec), ":")
	if name == "" {
		name = kind
	}
	switch strings.ToLower(kind) {
	case "random":
		return NewRandomPlayer(name), nil
	case "greedy":
		return NewGreedyPlayer(name), nil
	case "script":
		moves, err := ParseMoveList(arg)
		if err != nil {
			return nil, err
		}
		return NewScriptedPlayer(name, game.KindHuman, moves), nil
	}
	msg := "valid options: 'random', 'greedy', 'script:<moves>'"
	return nil, fmt.Errorf("%w %q; %s", ErrUnknownPlayer, spec, msg)
}
