// Package stats aggregates per-sentence scores into a corpus-level summary.
package stats

import (
	"github.com/botirk38/embedscore/types"
	"gonum.org/v1/gonum/stat"
)

// ConfidenceZ is the z-value of a two-sided 95% interval.
const ConfidenceZ = 1.96

// Summarize returns the mean, the 95% confidence half-width and the population
// standard deviation of scores.
//
// The half-width is 1.96 * stddev / n: it divides by n, not sqrt(n).
func Summarize(scores []float64) (types.Summary, error) {
	if len(scores) == 0 {
		return types.Summary{}, types.ErrEmptyScoreSequence
	}

	mean, std := stat.PopMeanStdDev(scores, nil)
	n := float64(len(scores))

	return types.Summary{
		Mean:   mean,
		CI95:   ConfidenceZ * std / n,
		StdDev: std,
		Count:  len(scores),
	}, nil
}
