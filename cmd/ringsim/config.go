package main

import (
	"github.com/spf13/cobra"

	"ringrecovery/internal/config"
	"ringrecovery/internal/simtime"
)

// defaultConfig is the code-constructed baseline: the canonical starting
// point every run uses before any file or flag overrides are layered on.
func defaultConfig() config.Config {
	return config.Config{
		K: 2, S: 4, M: 4, C0: 100_000, C1: 0, B: 4096,
		D0: simtime.Micros(1), D1: simtime.Micros(2),
		L: 0.2, E: 0.75, G: simtime.FromGigabits(100),
	}
}

// configFlags binds the override flags shared by run/sweep/estimate/watch.
// A bound variable only holds a flag's final value, not whether the user set
// it, so resolve checks cmd.Flags().Changed for each flag after parsing —
// that is what lets a flag's zero value (e.g. --c1 0) still take precedence
// over a file or default.
type configFlags struct {
	configFile string

	k, s, m, c0, c1, b int64
	d0Micros, d1Micros int64
	l, e               float64
	gGigabits          int64
}

func addConfigFlags(cmd *cobra.Command, f *configFlags) {
	cmd.Flags().StringVar(&f.configFile, "config", "", "optional YAML overrides file")
	cmd.Flags().Int64Var(&f.k, "k", 0, "multicast-root count (estimator only)")
	cmd.Flags().Int64Var(&f.s, "s", 0, "servers per leaf")
	cmd.Flags().Int64Var(&f.m, "m", 0, "leaf count")
	cmd.Flags().Int64Var(&f.c0, "c0", 0, "data chunks per block")
	cmd.Flags().Int64Var(&f.c1, "c1", 0, "parity chunks per block")
	cmd.Flags().Int64Var(&f.b, "b", 0, "chunk size in bytes")
	cmd.Flags().Int64Var(&f.d0Micros, "d0-micros", 0, "intra-leaf delay, in microseconds")
	cmd.Flags().Int64Var(&f.d1Micros, "d1-micros", 0, "inter-leaf delay, in microseconds")
	cmd.Flags().Float64Var(&f.l, "l", 0, "chunk loss probability, in [0,1]")
	cmd.Flags().Float64Var(&f.e, "e", 0, "FEC efficiency, in [0,1] (estimator only)")
	cmd.Flags().Int64Var(&f.gGigabits, "g-gigabits", 0, "link bandwidth, in gigabits/sec")
}

// resolve builds the effective Config: defaultConfig(), with the optional
// YAML file's overrides layered on, with any flags the caller actually set
// layered on top of that — flags beat file, file beats code defaults.
func (f *configFlags) resolve(cmd *cobra.Command) (config.Config, error) {
	overrides, err := config.LoadFile(f.configFile)
	if err != nil {
		return config.Config{}, err
	}
	cfg := overrides.Merge(defaultConfig())

	changed := cmd.Flags().Changed
	if changed("k") {
		cfg.K = f.k
	}
	if changed("s") {
		cfg.S = f.s
	}
	if changed("m") {
		cfg.M = f.m
	}
	if changed("c0") {
		cfg.C0 = f.c0
	}
	if changed("c1") {
		cfg.C1 = f.c1
	}
	if changed("b") {
		cfg.B = f.b
	}
	if changed("d0-micros") {
		cfg.D0 = simtime.Micros(f.d0Micros)
	}
	if changed("d1-micros") {
		cfg.D1 = simtime.Micros(f.d1Micros)
	}
	if changed("l") {
		cfg.L = f.l
	}
	if changed("e") {
		cfg.E = f.e
	}
	if changed("g-gigabits") {
		cfg.G = simtime.FromGigabits(f.gGigabits)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
