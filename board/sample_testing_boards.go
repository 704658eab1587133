package board

// This file contains some sample boards, used solely for testing.

// Fixture names a sample position.
type Fixture string

const (
	// FilledSix is a completely filled 6x6 board, black ahead 20-16.
	FilledSix Fixture = "filled6"
	// BlackMustPass is a 4x4 board where black has no move and white has
	// exactly one, a1, after which nobody can move.
	BlackMustPass Fixture = "blackpass"
	// LoneBlack has a single black piece; neither side can ever move.
	LoneBlack Fixture = "loneblack"
	// LongRun has a row where black at a1 flips five white cells at once.
	LongRun Fixture = "longrun"
)

var fixtures = map[Fixture][]string{
	FilledSix: {
		"BBBBBB",
		"BWWWWB",
		"BWBBWB",
		"BWBBWB",
		"BWWWWW",
		"WWWBBB",
	},
	BlackMustPass: {
		".BWW",
		"....",
		"....",
		"....",
	},
	LoneBlack: {
		"......",
		"......",
		"..B...",
		"......",
		"......",
		"......",
	},
	LongRun: {
		".WWWWWB.",
		"........",
		"........",
		"...WB...",
		"...BW...",
		"........",
		"........",
		"........",
	},
}

// FixtureBoard returns a fresh copy of a sample board.
func FixtureBoard(f Fixture) Board {
	rows, ok := fixtures[f]
	if !ok {
		panic("unknown fixture " + string(f))
	}
	return MustFromRows(rows)
}
