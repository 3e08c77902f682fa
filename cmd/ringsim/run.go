package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ringrecovery/internal/obslog"
	"ringrecovery/internal/ring"
	"ringrecovery/internal/simulator"
)

func runCmd() *cobra.Command {
	f := &configFlags{}
	var seed uint64

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one simulation and print its elapsed virtual time",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}

			obslog.RunStart(cfg.N(), cfg.ChunkCount(), seed)
			res := simulator.Run(cfg, seed, ring.Hooks{})
			obslog.RunEnd(res.Elapsed, res.EventsFired)

			fmt.Printf("elapsed: %s\n", res.Elapsed)
			fmt.Printf("events fired: %d\n", res.EventsFired)
			fmt.Printf("estimated recovery time (lower bound): %s\n", cfg.EstRecT())
			fmt.Printf("memory footprint: %d bytes\n", cfg.MemoryFootprintBytes())
			return nil
		},
	}
	addConfigFlags(cmd, f)
	cmd.Flags().Uint64Var(&seed, "seed", 1, "PRNG seed for the loss draw")

	return cmd
}
