package game

import (
	"fmt"
	"time"

	"github.com/reverc/reverc/board"
)

// PlayerKind says where a player's moves come from.
type PlayerKind string

const (
	KindHuman   PlayerKind = "human"
	KindCustom  PlayerKind = "custom"
	KindArchive PlayerKind = "archive"
	KindAI      PlayerKind = "ai"
)

// IsCode is true for players whose moves come from a submitted routine.
// Only their think time is worth reporting.
func (k PlayerKind) IsCode() bool {
	return k == KindCustom || k == KindArchive
}

// PlayerInfo describes one side of a match.
type PlayerInfo struct {
	Name string     `json:"name" yaml:"name"`
	Kind PlayerKind `json:"kind" yaml:"kind"`
}

// DisplayName falls back to a generic name per kind.
func (p PlayerInfo) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	switch p.Kind {
	case KindCustom:
		return "(Uploaded Code)"
	case KindArchive:
		return "(Historic Algorithm)"
	case KindHuman:
		return "(Human Player)"
	case KindAI:
		return "(AI Player)"
	}
	return "(Not Selected)"
}

type playerState struct {
	PlayerInfo

	flips     int
	turns     int
	skipped   int
	totalTime time.Duration
	maxTime   time.Duration
}

func (p *playerState) recordMove(flips int, elapsed time.Duration) {
	p.flips += flips
	p.turns++
	p.totalTime += elapsed
	if elapsed > p.maxTime {
		p.maxTime = elapsed
	}
}

func (p *playerState) stateString(color board.Cell, pieces int, myturn bool) string {
	onturn := ""
	if myturn {
		onturn = "-> "
	}
	s := fmt.Sprintf("%4s%-20s %s %3d", onturn, p.DisplayName(), color.Glyph(), pieces)
	if p.Kind.IsCode() && p.turns > 0 {
		s += fmt.Sprintf("  time %v (max %v)", p.totalTime.Round(time.Microsecond),
			p.maxTime.Round(time.Microsecond))
	}
	return s
}

type playerStates [2]*playerState

func colorIndex(c board.Cell) int {
	if c == board.White {
		return 1
	}
	return 0
}

func (p playerStates) of(c board.Cell) *playerState {
	return p[colorIndex(c)]
}
