package game

import (
	"fmt"
	"strings"

	"github.com/reverc/reverc/board"
)

func addText(lines []string, row int, hpad int, text string) {
	if row >= len(lines) {
		return
	}
	lines[row] = lines[row] + strings.Repeat(" ", hpad) + text
}

// ToDisplayText turns the current state of the game into a displayable
// string: the board with the last move's flips highlighted, and the
// players, scores and last move alongside it.
func (g *Game) ToDisplayText() string {
	var flipped []board.Position
	last, hasLast := g.history.Last()
	if hasLast {
		prev, err := g.BoardAtPly(g.history.Len() - 1)
		if err == nil {
			_, flipped = board.ApplyMove(prev, last.Color, last.Position)
			flipped = append(flipped, last.Position)
		}
	}
	bt := g.board.ToDisplayText(flipped...)
	bts := strings.Split(bt, "\n")
	hpadding := 3
	vpadding := 1

	black, white := g.board.Counts()
	addText(bts, vpadding, hpadding,
		g.players.of(board.Black).stateString(board.Black, black, g.onturn == board.Black))
	addText(bts, vpadding+1, hpadding,
		g.players.of(board.White).stateString(board.White, white, g.onturn == board.White))

	addText(bts, vpadding+3, hpadding, fmt.Sprintf("Ply %d", g.history.Len()))
	if hasLast {
		addText(bts, vpadding+4, hpadding,
			fmt.Sprintf("%s placed %s at %s, flipping %d",
				g.players.of(last.Color).DisplayName(), last.Color.Glyph(), last.Position, last.Flips))
	}
	if g.playing == GameOver {
		winner := "Draw"
		if w := g.Winner(); w != board.Empty {
			winner = g.players.of(w).DisplayName() + " wins"
		}
		addText(bts, vpadding+6, hpadding, "Game is over. "+winner+".")
	} else {
		addText(bts, vpadding+6, hpadding,
			fmt.Sprintf("%d legal moves for %s", len(g.LegalMoves()), g.onturn))
	}
	return strings.Join(bts, "\n")
}
