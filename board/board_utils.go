package board

import (
	"fmt"
	"strings"
)

// ToDisplayText renders the board with column letters and row numbers.
// Cells in highlight are drawn emphasised.
func (b Board) ToDisplayText(highlight ...Position) string {
	hl := make(map[Position]bool, len(highlight))
	for _, p := range highlight {
		hl[p] = true
	}
	var sb strings.Builder
	n := b.Dim()
	sb.WriteString("   ")
	for i := 0; i < n; i++ {
		sb.WriteString(fmt.Sprintf("%c ", 'a'+i))
	}
	sb.WriteString("\n")
	sb.WriteString("   " + strings.Repeat("-", n*2) + "\n")
	for r := 0; r < n; r++ {
		sb.WriteString(fmt.Sprintf("%2d|", r+1))
		for c := 0; c < n; c++ {
			p := Position{r, c}
			sb.WriteString(b.At(p).DisplayString(hl[p]) + " ")
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("   " + strings.Repeat("-", n*2) + "\n")
	return sb.String()
}

// ToLogText is the plain rendering used in match logs: one row per line,
// no coordinates and no colour codes.
func (b Board) ToLogText() string {
	var sb strings.Builder
	for r := 0; r < b.dim; r++ {
		for c := 0; c < b.dim; c++ {
			if c > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(b.At(Position{r, c}).Glyph())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FromRows builds a board from rows of letters: B, W and . (or U) for
// empty. Whitespace inside a row is ignored.
func FromRows(rows []string) (Board, error) {
	b, err := emptyBoard(len(rows))
	if err != nil {
		return Board{}, err
	}
	for r, row := range rows {
		row = strings.Join(strings.Fields(row), "")
		if len(row) != b.dim {
			return Board{}, fmt.Errorf("row %d has %d cells, want %d", r+1, len(row), b.dim)
		}
		for c, ch := range row {
			cell, err := CellFromLetter(string(ch))
			if err != nil {
				return Board{}, fmt.Errorf("row %d: %w", r+1, err)
			}
			b.set(Position{r, c}, cell)
		}
	}
	return b, nil
}

// MustFromRows panics on a malformed fixture.
func MustFromRows(rows []string) Board {
	b, err := FromRows(rows)
	if err != nil {
		panic(err)
	}
	return b
}

// ToRows is the inverse of FromRows.
func (b Board) ToRows() []string {
	rows := make([]string, b.dim)
	for r := 0; r < b.dim; r++ {
		var sb strings.Builder
		for c := 0; c < b.dim; c++ {
			cell := b.At(Position{r, c})
			if cell == Empty {
				sb.WriteString(".")
			} else {
				sb.WriteString(cell.Letter())
			}
		}
		rows[r] = sb.String()
	}
	return rows
}
