package ring_test

import (
	"math/big"
	"testing"

	"ringrecovery/internal/config"
	"ringrecovery/internal/engine"
	"ringrecovery/internal/ring"
	"ringrecovery/internal/simtime"
	"ringrecovery/internal/simulator"
	"ringrecovery/internal/topology"
)

// trivialConfig is a single-node configuration: one server owns the only
// block outright, so recovery needs no transmissions.
func trivialConfig() config.Config {
	return config.Config{
		K: 2, S: 1, M: 1, C0: 1, C1: 0, B: 1,
		D0: simtime.Nanos(1), D1: simtime.Nanos(1),
		L: 0, E: 0, G: simtime.FromGigabits(100),
	}
}

func twoNodeConfig(loss float64) config.Config {
	return config.Config{
		K: 2, S: 2, M: 1, C0: 10, C1: 0, B: 1024,
		D0: simtime.Micros(1), D1: simtime.Micros(1),
		L: loss, E: 0.75, G: simtime.FromGigabits(100),
	}
}

// moderateConfig is a scaled-down version of scenarioFourConfig (same
// shape, smaller chunk counts so the test suite stays fast).
func moderateConfig() config.Config {
	return config.Config{
		K: 2, S: 4, M: 4, C0: 50, C1: 0, B: 4096,
		D0: simtime.Micros(1), D1: simtime.Micros(2),
		L: 0.2, E: 0.75, G: simtime.FromGigabits(100),
	}
}

// scenarioFourConfig is a larger, realistic-scale topology: 4 leaves of 4
// servers each, with a 100,000-chunk data block and no parity.
func scenarioFourConfig() config.Config {
	return config.Config{
		K: 2, S: 4, M: 4, C0: 100_000, C1: 0, B: 4096,
		D0: simtime.Micros(1), D1: simtime.Micros(2),
		L: 0.2, E: 0.75, G: simtime.FromGigabits(100),
	}
}

func isFullyRecovered(nodes []*topology.Node) bool {
	for _, nd := range nodes {
		for _, m := range nd.Misses {
			if m != 0 {
				return false
			}
		}
	}
	return true
}

func TestSingleNodeCompletesInstantly(t *testing.T) {
	res := simulator.Run(trivialConfig(), 1, ring.Hooks{})

	if res.Elapsed.Cmp(simtime.Zero()) != 0 {
		t.Fatalf("elapsed = %s, want 0s", res.Elapsed)
	}
	if res.EventsFired != 0 {
		t.Fatalf("a single node owning its only block should need no events, fired %d", res.EventsFired)
	}
	if !isFullyRecovered(res.Nodes) {
		t.Fatalf("single node should already be fully recovered")
	}
}

func TestTwoNodesNoLossCompletesInstantly(t *testing.T) {
	res := simulator.Run(twoNodeConfig(0), 1, ring.Hooks{})

	if res.Elapsed.Cmp(simtime.Zero()) != 0 {
		t.Fatalf("elapsed = %s, want 0s (no loss means nothing to forward)", res.Elapsed)
	}
	if res.EventsFired != 0 {
		t.Fatalf("no-loss run should schedule no transmissions, fired %d", res.EventsFired)
	}
}

// TestTwoNodesFullLossOneHop exercises the zero-before-charge ordering
// documented in protocol.go: with n=2, each node's only missing block
// reaches it in exactly one hop, and because the per-block transmission
// charge always reads the neighbor count after it has been zeroed, that
// hop always costs exactly Dn() regardless of block size or bandwidth.
//
// This is a deliberate divergence from what a "doubled, bandwidth-charged"
// cost model would predict for the same two nodes: that's the cost a
// non-buggy variant would pay, but the zero-before-charge ordering is
// reproduced bit-exactly here rather than corrected to match that
// alternative estimate. See DESIGN.md for this decision.
func TestTwoNodesFullLossOneHop(t *testing.T) {
	cfg := twoNodeConfig(1)
	res := simulator.Run(cfg, 1, ring.Hooks{})

	want := cfg.Dn()
	if res.Elapsed.Cmp(want) != 0 {
		t.Fatalf("elapsed = %s, want exactly Dn() = %s", res.Elapsed, want)
	}
	if !isFullyRecovered(res.Nodes) {
		t.Fatalf("full-loss run must still terminate fully recovered")
	}
}

// TestElapsedIsAlwaysAMultipleOfDn captures the emergent consequence of the
// zero-before-charge bug across any loss pattern: every scheduled
// completion in a single trySendRight batch lands exactly Dn() after the
// batch's triggering instant, so the run's final elapsed time is always an
// exact non-negative integer multiple of Dn() — never a fractional hop, and
// never inflated by per-block transmission cost.
func TestElapsedIsAlwaysAMultipleOfDn(t *testing.T) {
	cfg := moderateConfig()
	dn := cfg.Dn().Ticks()
	if dn.Sign() == 0 {
		t.Fatal("test config must have a nonzero Dn()")
	}

	for _, seed := range []uint64{1, 2, 3, 42, 99} {
		res := simulator.Run(cfg, seed, ring.Hooks{})

		rem := new(big.Int).Mod(res.Elapsed.Ticks(), dn)
		if rem.Sign() != 0 {
			t.Fatalf("seed %d: elapsed %s is not an exact multiple of Dn() %s", seed, res.Elapsed, cfg.Dn())
		}
		if !isFullyRecovered(res.Nodes) {
			t.Fatalf("seed %d: run did not fully recover every block at every node", seed)
		}
	}
}

// TestEventsFiredBoundedByNSquared checks the completion-event bound: at
// most one completion event per (sender, block) pair, so at most n*(n-1)
// forwarding events across the whole run (self-owned blocks never need an
// event).
func TestEventsFiredBoundedByNSquared(t *testing.T) {
	cfg := moderateConfig()
	n := cfg.N()
	res := simulator.Run(cfg, 7, ring.Hooks{})

	if int64(res.EventsFired) > n*(n-1) {
		t.Fatalf("fired %d events, want <= n*(n-1) = %d", res.EventsFired, n*(n-1))
	}
}

func TestDeterministicAcrossRepeatedRuns(t *testing.T) {
	cfg := scenarioFourConfig()

	a := simulator.Run(cfg, 12345, ring.Hooks{})
	b := simulator.Run(cfg, 12345, ring.Hooks{})

	if a.Elapsed.Cmp(b.Elapsed) != 0 {
		t.Fatalf("same seed produced different elapsed times: %s vs %s", a.Elapsed, b.Elapsed)
	}
	if a.EventsFired != b.EventsFired {
		t.Fatalf("same seed produced different event counts: %d vs %d", a.EventsFired, b.EventsFired)
	}
	if !isFullyRecovered(a.Nodes) || !isFullyRecovered(b.Nodes) {
		t.Fatalf("scenario 4 run did not fully recover")
	}
}

// TestRightMissesOnlyEverDropToZero wires the engine manually (bypassing
// simulator.Run) to snapshot RightMisses right after the initial fill, then
// checks that by the time the run quiesces every entry is either unchanged
// or has dropped to zero — the only transition trySendRight ever performs.
func TestRightMissesOnlyEverDropToZero(t *testing.T) {
	cfg := moderateConfig()
	nodes := topology.NewTopology(cfg)
	topology.FillChunksRandomly(nodes, 9)

	before := make([][]int64, len(nodes))
	for i, nd := range nodes {
		before[i] = append([]int64(nil), nd.RightMisses...)
	}

	sim := engine.New(nodes)
	r := &ring.Runner{Sim: sim}
	for i := 0; i < len(nodes); i++ {
		me := int64(i)
		sim.Schedule(simtime.Zero(), func(s *ring.Sim) { r.StartRecovery(me) })
	}
	sim.Run()

	for i, nd := range nodes {
		for j, after := range nd.RightMisses {
			if after != 0 && after != before[i][j] {
				t.Fatalf("node %d block %d RightMisses went from %d to %d, want unchanged or zero", i, j, before[i][j], after)
			}
		}
	}
}

// TestHooksObserveEveryCompletion checks that OnComplete fires exactly once
// per forwarding event, at non-decreasing virtual times, and that every
// node ends up with every block regardless of whether the hook fired for it
// (blocks already present after the initial fill never trigger the hook).
func TestHooksObserveEveryCompletion(t *testing.T) {
	cfg := moderateConfig()

	var completions []simtime.Time
	hooks := ring.Hooks{
		OnComplete: func(node, block int64, at simtime.Time) {
			completions = append(completions, at)
		},
	}

	res := simulator.Run(cfg, 3, hooks)

	if len(completions) != res.EventsFired {
		t.Fatalf("observed %d completions, want %d (one per fired event)", len(completions), res.EventsFired)
	}
	for i := 1; i < len(completions); i++ {
		if completions[i].Less(completions[i-1]) {
			t.Fatalf("completion %d at %s precedes completion %d at %s", i, completions[i], i-1, completions[i-1])
		}
	}
	if !isFullyRecovered(res.Nodes) {
		t.Fatalf("hooked run did not fully recover")
	}
}
