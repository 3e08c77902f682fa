package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ringrecovery/internal/analysis"
)

func sweepCmd() *cobra.Command {
	f := &configFlags{}
	var lossCSV string
	var seedCount int

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run the simulator across a cross product of loss values and seeds",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := f.resolve(cmd)
			if err != nil {
				return err
			}

			losses, err := parseLossCSV(lossCSV)
			if err != nil {
				return err
			}
			if seedCount <= 0 {
				seedCount = 1
			}
			seeds := make([]uint64, seedCount)
			for i := range seeds {
				seeds[i] = uint64(i + 1)
			}

			summaries := analysis.SweepLoss(base, losses, seeds)
			monotonic := analysis.EstimatorIsMonotonic(summaries)

			fmt.Printf("%-8s %-12s %-12s %-12s %-12s\n", "loss", "mean(s)", "stddev(s)", "median(s)", "est(s)")
			for _, s := range summaries {
				fmt.Printf("%-8.3f %-12g %-12g %-12g %-12g\n", s.Loss, s.Mean, s.StdDev, s.Median, s.EstRecTSec)
			}
			fmt.Printf("estimator monotonic across losses: %t\n", monotonic)
			return nil
		},
	}
	addConfigFlags(cmd, f)
	cmd.Flags().StringVar(&lossCSV, "loss", "0.05,0.1,0.2,0.3", "comma-separated loss probabilities to sweep")
	cmd.Flags().IntVar(&seedCount, "seeds", 4, "number of seeds (1..N) to average per loss value")
	return cmd
}

func parseLossCSV(csv string) ([]float64, error) {
	parts := strings.Split(csv, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("sweep: invalid loss value %q: %w", p, err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("sweep: --loss must name at least one value")
	}
	return out, nil
}
