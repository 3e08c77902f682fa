// Package analysis runs the simulator across a cross product of seeds and
// loss probabilities and reduces the results with gonum.org/v1/gonum/stat,
// whose descriptive-statistics subpackage is the natural fit for reducing a
// sweep's raw per-run output into means, deviations, and medians.
package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"ringrecovery/internal/config"
	"ringrecovery/internal/ring"
	"ringrecovery/internal/simulator"
)

// Point is one (loss, seed) run's outcome, in seconds of virtual time so
// gonum.org/v1/gonum/stat can operate on plain float64s.
type Point struct {
	Loss        float64
	Seed        uint64
	ElapsedSecs float64
	EventsFired int
}

// LossSummary reduces every seed's elapsed time at a fixed loss probability
// to mean, standard deviation, and median.
type LossSummary struct {
	Loss       float64
	Mean       float64
	StdDev     float64
	Median     float64
	EstRecTSec float64
}

// SweepLoss runs base once per (loss, seed) pair for every loss in losses
// and every seed in seeds, then reduces each loss value's seeds with
// gonum/stat. losses need not be sorted; the returned slice is sorted by
// loss ascending so callers (and scenario 6's monotonicity check) can
// assume ordering.
func SweepLoss(base config.Config, losses []float64, seeds []uint64) []LossSummary {
	sorted := append([]float64(nil), losses...)
	sort.Float64s(sorted)

	summaries := make([]LossSummary, 0, len(sorted))
	for _, loss := range sorted {
		cfg := base
		cfg.L = loss

		elapsed := make([]float64, 0, len(seeds))
		for _, seed := range seeds {
			res := simulator.Run(cfg, seed, ring.Hooks{})
			elapsed = append(elapsed, res.Elapsed.AsSeconds())
		}

		sortedElapsed := append([]float64(nil), elapsed...)
		sort.Float64s(sortedElapsed)

		summaries = append(summaries, LossSummary{
			Loss:       loss,
			Mean:       stat.Mean(elapsed, nil),
			StdDev:     stat.StdDev(elapsed, nil),
			Median:     stat.Quantile(0.5, stat.Empirical, sortedElapsed, nil),
			EstRecTSec: cfg.EstRecT().AsSeconds(),
		})
	}
	return summaries
}

// EstimatorIsMonotonic checks that the closed-form EstRecT lower bound is
// non-decreasing as loss increases, across an already loss-ascending-sorted
// summary slice such as SweepLoss returns.
func EstimatorIsMonotonic(summaries []LossSummary) bool {
	for i := 1; i < len(summaries); i++ {
		if summaries[i].EstRecTSec < summaries[i-1].EstRecTSec {
			return false
		}
	}
	return true
}

// Points flattens a full (loss, seed) grid into individual Points, useful
// for exporting raw per-run data rather than just the reduced summary.
func Points(base config.Config, losses []float64, seeds []uint64) []Point {
	var out []Point
	for _, loss := range losses {
		cfg := base
		cfg.L = loss
		for _, seed := range seeds {
			res := simulator.Run(cfg, seed, ring.Hooks{})
			out = append(out, Point{
				Loss:        loss,
				Seed:        seed,
				ElapsedSecs: res.Elapsed.AsSeconds(),
				EventsFired: res.EventsFired,
			})
		}
	}
	return out
}
