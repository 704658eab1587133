package game

import (
	"time"

	"github.com/samber/lo"

	"github.com/reverc/reverc/board"
)

// Averages holds a per-colour mean.
type Averages struct {
	Black float64
	White float64
}

// Durations holds a per-colour time.
type Durations struct {
	Black time.Duration
	White time.Duration
}

// Stats is the end-of-match report derived from a history.
type Stats struct {
	Plies  int
	Final  Counts
	Winner board.Cell
	// Corners held on the final board.
	Corners Counts
	// Skipped counts the turns each colour had to pass.
	Skipped  Counts
	MaxFlips Counts
	// AvgMobility is the mean number of legal moves a colour had when it
	// was its turn to place.
	AvgMobility Averages
	TotalTime   Durations
	MaxTime     Durations
	AvgTime     Durations
}

// Summarize computes match statistics for a history played on a board of
// the given size.
func Summarize(h History, size int) (Stats, error) {
	boards, err := Replay(h, size)
	if err != nil {
		return Stats{}, err
	}
	final := boards[len(boards)-1]
	entries := h.Entries()

	st := Stats{Plies: len(entries), Winner: winnerOf(final)}
	st.Final.Black, st.Final.White = final.Counts()
	for _, p := range final.Corners() {
		switch final.At(p) {
		case board.Black:
			st.Corners.Black++
		case board.White:
			st.Corners.White++
		}
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Color != entries[i-1].Color {
			continue
		}
		// the same colour moved twice, so the other one was skipped
		if entries[i].Color == board.Black {
			st.Skipped.White++
		} else {
			st.Skipped.Black++
		}
	}

	// mobility the mover had before each placement
	before := make([]int, len(entries))
	for i, e := range entries {
		if i == 0 {
			before[i] = board.Mobility(boards[0], e.Color)
		} else {
			before[i] = entries[i-1].Mobility.For(e.Color)
		}
	}

	for _, c := range []board.Cell{board.Black, board.White} {
		idx := lo.Filter(lo.Range(len(entries)), func(i int, _ int) bool {
			return entries[i].Color == c
		})
		mine := lo.Map(idx, func(i int, _ int) Entry { return entries[i] })
		maxFlips := lo.Max(lo.Map(mine, func(e Entry, _ int) int { return e.Flips }))
		total := lo.SumBy(mine, func(e Entry) time.Duration { return e.Elapsed })
		maxTime := lo.Max(lo.Map(mine, func(e Entry, _ int) time.Duration { return e.Elapsed }))
		var avgMob float64
		var avgTime time.Duration
		if len(mine) > 0 {
			avgMob = float64(lo.SumBy(idx, func(i int) int { return before[i] })) / float64(len(mine))
			avgTime = total / time.Duration(len(mine))
		}
		if c == board.Black {
			st.MaxFlips.Black = maxFlips
			st.AvgMobility.Black = avgMob
			st.TotalTime.Black, st.MaxTime.Black, st.AvgTime.Black = total, maxTime, avgTime
		} else {
			st.MaxFlips.White = maxFlips
			st.AvgMobility.White = avgMob
			st.TotalTime.White, st.MaxTime.White, st.AvgTime.White = total, maxTime, avgTime
		}
	}
	return st, nil
}
