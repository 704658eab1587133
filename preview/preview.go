// Package preview builds plausible mid-game positions for decoration, by
// playing random legal moves from the start. It makes no promise about the
// positions beyond their being reachable.
package preview

import (
	"lukechampine.com/frand"

	"github.com/reverc/reverc/board"
)

// DefaultMaxPlies is how deep the home page preview plays.
const DefaultMaxPlies = 24

// DefaultPlies clamps DefaultMaxPlies to something sensible for the
// board size.
func DefaultPlies(size int) int {
	return ClampPlies(DefaultMaxPlies, size)
}

// ClampPlies keeps a requested depth within [4, size*size].
func ClampPlies(plies, size int) int {
	return max(4, min(plies, size*size))
}

// Sampler draws random legal moves with its own RNG.
type Sampler struct {
	rng *frand.RNG
}

// NewSampler uses a freshly seeded RNG.
func NewSampler() *Sampler {
	return &Sampler{rng: frand.New()}
}

// NewSeededSampler is deterministic for a given 32-byte seed.
func NewSeededSampler(seed [32]byte) *Sampler {
	return &Sampler{rng: frand.NewCustom(seed[:], 1024, 12)}
}

// Sample plays up to maxPlies random legal moves from the canonical start
// and returns the board together with the number of plies played. It
// stops early when neither side can move.
func (s *Sampler) Sample(size, maxPlies int) (board.Board, int, error) {
	b, err := board.NewBoard(size)
	if err != nil {
		return board.Board{}, 0, err
	}
	turn := board.Black
	played := 0
	for played < maxPlies {
		moves := board.LegalMoves(b, turn)
		if len(moves) == 0 {
			turn = turn.Opponent()
			moves = board.LegalMoves(b, turn)
			if len(moves) == 0 {
				break
			}
		}
		pick := moves[s.rng.Intn(len(moves))]
		b, _ = board.ApplyMove(b, turn, pick)
		turn = turn.Opponent()
		played++
	}
	return b, played, nil
}

// RandomMidGameBoard is Sample with a fresh sampler.
func RandomMidGameBoard(size, maxPlies int) (board.Board, error) {
	b, _, err := NewSampler().Sample(size, maxPlies)
	return b, err
}
