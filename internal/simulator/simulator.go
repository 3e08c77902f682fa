// Package simulator is the top-level driver that wires together topology
// construction, the ring recovery protocol, and the event engine. It is
// deliberately thin: every hard invariant lives in internal/engine,
// internal/topology, and internal/ring; this package only sequences them:
//
//	config -> topology.NewTopology -> topology.FillChunksRandomly ->
//	one engine.Schedule(0, ring.StartRecovery) per node -> engine.Run -> now()
package simulator

import (
	"ringrecovery/internal/config"
	"ringrecovery/internal/engine"
	"ringrecovery/internal/ring"
	"ringrecovery/internal/simtime"
	"ringrecovery/internal/topology"
)

// Result holds everything a caller might want to inspect after a run.
type Result struct {
	Elapsed simtime.Time
	Nodes   []*topology.Node
	// EventsFired counts block-completion (forwarding) events only; the
	// StartRecovery seeding events are excluded.
	EventsFired int
}

// Run builds a topology for cfg, fills it with the Bernoulli loss process
// seeded from seed, seeds the engine with one StartRecovery event per node
// at time zero, and runs to quiescence. hooks is optional (zero value
// disables all observation) and is shared by every node's Runner.
func Run(cfg config.Config, seed uint64, hooks ring.Hooks) Result {
	nodes := topology.NewTopology(cfg)
	topology.FillChunksRandomly(nodes, seed)

	sim := engine.New(nodes)
	r := &ring.Runner{Sim: sim, Hooks: hooks}

	for i := 0; i < len(nodes); i++ {
		me := int64(i)
		sim.Schedule(simtime.Zero(), func(s *ring.Sim) {
			r.StartRecovery(me)
		})
	}

	sim.Run()

	// The per-node StartRecovery seeding events are not forwarding events;
	// only block completions count toward EventsFired.
	return Result{
		Elapsed:     sim.Now(),
		Nodes:       nodes,
		EventsFired: sim.EventsFired() - len(nodes),
	}
}
