// Command ringsim is the CLI front end for the ring recovery simulator: a
// root command with a persistent --debug flag wired to obslog.Configure in
// PersistentPreRunE, and one leaf subcommand per operation.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ringrecovery/internal/obslog"
)

func main() {
	var debug bool

	root := &cobra.Command{
		Use:           "ringsim",
		Short:         "Discrete-event simulator for ring-based erasure-coded recovery",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if debug {
				level = "debug"
			}
			return obslog.Configure(level)
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable per-event debug logging")

	root.AddCommand(runCmd())
	root.AddCommand(sweepCmd())
	root.AddCommand(estimateCmd())
	root.AddCommand(fecverifyCmd())
	root.AddCommand(watchCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
