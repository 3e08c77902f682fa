package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"ringrecovery/internal/livestream"
	"ringrecovery/internal/obslog"
	"ringrecovery/internal/ring"
	"ringrecovery/internal/simtime"
	"ringrecovery/internal/simulator"
)

func watchCmd() *cobra.Command {
	f := &configFlags{}
	var seed uint64
	var addr string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run one simulation while streaming completions to websocket clients at /events",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}

			srv := livestream.NewServer()
			mux := http.NewServeMux()
			mux.HandleFunc("/events", srv.Handler())
			httpServer := &http.Server{Addr: addr, Handler: mux}

			errCh := make(chan error, 1)
			go func() { errCh <- httpServer.ListenAndServe() }()

			fmt.Printf("streaming completions at ws://%s/events\n", addr)

			hooks := ring.Hooks{
				OnComplete: func(node, block int64, at simtime.Time) {
					srv.Publish(livestream.Event{T: at.AsSeconds(), Node: node, Block: block})
				},
			}

			obslog.RunStart(cfg.N(), cfg.ChunkCount(), seed)
			res := simulator.Run(cfg, seed, hooks)
			obslog.RunEnd(res.Elapsed, res.EventsFired)

			fmt.Printf("elapsed: %s\n", res.Elapsed)
			_ = httpServer.Close()
			return nil
		},
	}
	addConfigFlags(cmd, f)
	cmd.Flags().Uint64Var(&seed, "seed", 1, "PRNG seed for the loss draw")
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8765", "address to serve the websocket stream on")
	return cmd
}
