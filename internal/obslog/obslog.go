// Package obslog installs and wraps the process-wide structured logger,
// grounded on getployz-ployz/internal/logging: a slog.TextHandler writing to
// stderr, with the level parsed from a string and installed once as the
// process default via slog.SetDefault.
package obslog

import (
	"fmt"
	"log/slog"
	"os"

	"ringrecovery/internal/simtime"
)

// Configure installs a process-wide text-handler logger at the given level
// ("debug", "info", "warn", "error"). An unrecognized level is an error, not
// a silent fallback to Info.
func Configure(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("obslog: %w", err)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
	return nil
}

// RunStart logs the start of a simulation run at Info level.
func RunStart(n, chunkCount int64, seed uint64) {
	slog.Info("run start", "nodes", n, "chunk_count", chunkCount, "seed", seed)
}

// RunEnd logs the end of a simulation run at Info level.
func RunEnd(elapsed simtime.Time, eventsFired int) {
	slog.Info("run end", "elapsed", elapsed.String(), "events_fired", eventsFired)
}

// SweepProgress logs one step of a sweep at Info level.
func SweepProgress(loss float64, seed uint64, elapsed simtime.Time) {
	slog.Info("sweep step", "loss", loss, "seed", seed, "elapsed", elapsed.String())
}
