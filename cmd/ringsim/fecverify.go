package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ringrecovery/internal/fecverify"
)

func fecverifyCmd() *cobra.Command {
	var c0, c1, shardSize int64

	cmd := &cobra.Command{
		Use:   "fecverify",
		Short: "Check a (c0,c1) Reed-Solomon code reconstructs after losing c1 shards",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := fecverify.CheckErasureTolerance(c0, c1, shardSize)
			if err != nil {
				return err
			}
			fmt.Printf("c0=%d c1=%d shard_size=%d erasures_tried=%d reconstructed=%t\n",
				res.C0, res.C1, res.ShardSize, res.ErasuresTried, res.Reconstructed)
			if !res.Reconstructed {
				return fmt.Errorf("fecverify: (%d,%d) code failed to reconstruct after %d erasures", c0, c1, c1)
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&c0, "c0", 10, "data shards")
	cmd.Flags().Int64Var(&c1, "c1", 4, "parity shards")
	cmd.Flags().Int64Var(&shardSize, "shard-size", 4096, "shard size in bytes")
	return cmd
}
