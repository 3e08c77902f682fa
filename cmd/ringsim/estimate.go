package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func estimateCmd() *cobra.Command {
	f := &configFlags{}

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Print the closed-form recovery-time estimate without running the event loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}

			fmt.Printf("n: %d\n", cfg.N())
			fmt.Printf("chunk count: %d\n", cfg.ChunkCount())
			fmt.Printf("block bytes: %d\n", cfg.BlockBytes())
			fmt.Printf("dn: %s\n", cfg.Dn())
			fmt.Printf("cm: %d\n", cfg.Cm())
			fmt.Printf("estimated recovery time (lower bound): %s\n", cfg.EstRecT())
			return nil
		},
	}
	addConfigFlags(cmd, f)
	return cmd
}
