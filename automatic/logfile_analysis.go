package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/reverc/reverc/stats"
)

// Report summarises a batch of matches between the same two providers.
type Report struct {
	Games     int
	BlackName string
	WhiteName string
	BlackWins int
	WhiteWins int
	Draws     int
	// DiscDiff is black's final piece count minus white's.
	DiscDiff stats.Summary
	Plies    stats.Summary
}

type reportBuilder struct {
	report *Report
	diffs  []float64
	plies  []float64
}

func newReportBuilder() *reportBuilder {
	return &reportBuilder{report: &Report{}}
}

func (rb *reportBuilder) add(m matchResult) {
	r := rb.report
	if r.Games == 0 {
		r.BlackName, r.WhiteName = m.black, m.white
	}
	r.Games++
	switch {
	case m.blackScore > m.whiteScore:
		r.BlackWins++
	case m.whiteScore > m.blackScore:
		r.WhiteWins++
	default:
		r.Draws++
	}
	rb.diffs = append(rb.diffs, float64(m.blackScore-m.whiteScore))
	rb.plies = append(rb.plies, float64(m.plies))
}

func (rb *reportBuilder) finish() *Report {
	rb.report.DiscDiff = stats.Summarize(rb.diffs)
	rb.report.Plies = stats.Summarize(rb.plies)
	return rb.report
}

func (r *Report) String() string {
	if r.Games == 0 {
		return "Games played: 0\n"
	}
	var sb strings.Builder
	pct := func(x int) float64 { return 100.0 * float64(x) / float64(r.Games) }
	fmt.Fprintf(&sb, "Games played: %d\n", r.Games)
	fmt.Fprintf(&sb, "%v (Black) wins: %d (%.3f%%)\n", r.BlackName, r.BlackWins, pct(r.BlackWins))
	fmt.Fprintf(&sb, "%v (White) wins: %d (%.3f%%)\n", r.WhiteName, r.WhiteWins, pct(r.WhiteWins))
	fmt.Fprintf(&sb, "Draws: %d (%.3f%%)\n", r.Draws, pct(r.Draws))
	rate, margin := stats.ScoreRate(r.BlackWins, r.Draws, r.Games, 95)
	fmt.Fprintf(&sb, "%v score rate: %.3f ± %.3f (95%%)\n", r.BlackName, rate, margin)
	fmt.Fprintf(&sb, "Disc difference Mean: %.3f  Stdev: %.3f  Median: %.1f\n",
		r.DiscDiff.Mean, r.DiscDiff.Stdev, r.DiscDiff.Median)
	fmt.Fprintf(&sb, "Plies Mean: %.2f  Min: %.0f  Max: %.0f\n", r.Plies.Mean, r.Plies.Min, r.Plies.Max)
	return sb.String()
}

// AnalyzeLogFile rebuilds the report from a CSV file written by PlayGames.
func AnalyzeLogFile(filepath string) (*Report, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return analyze(file)
}

func analyze(in io.Reader) (*Report, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = len(csvHeader)
	rb := newReportBuilder()
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if record[0] == csvHeader[0] {
			continue
		}
		bs, err := strconv.Atoi(record[3])
		if err != nil {
			return nil, err
		}
		ws, err := strconv.Atoi(record[4])
		if err != nil {
			return nil, err
		}
		plies, err := strconv.Atoi(record[5])
		if err != nil {
			return nil, err
		}
		rb.add(matchResult{id: record[0], black: record[1], white: record[2],
			blackScore: bs, whiteScore: ws, plies: plies})
	}
	return rb.finish(), nil
}
