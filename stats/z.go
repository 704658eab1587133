package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ZVal returns the two-tailed Z-value associated with a specific confidence interval.
// The interval is a number from 0 to 100 percent.
func ZVal(confidenceInterval float64) float64 {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
	}
	area := (1 + (confidenceInterval / 100)) / 2
	return dist.Quantile(area)
}

// ScoreRate is the share of points a side took over n matches, counting a
// draw as half a win, with a normal-approximation error margin at the
// given confidence.
func ScoreRate(wins, draws, n int, confidence float64) (rate, margin float64) {
	if n == 0 {
		return 0, 0
	}
	rate = (float64(wins) + float64(draws)/2) / float64(n)
	margin = ZVal(confidence) * math.Sqrt(rate*(1-rate)/float64(n))
	return rate, margin
}
