// Package ring implements the ring recovery protocol: a per-node state
// machine, driven entirely by the discrete-event engine in internal/engine,
// that forwards still-needed blocks to the right-hand ring neighbor.
//
// A node marks its right neighbor's miss count for a block as satisfied
// (RightMisses[i] = 0) before reading that same now-zeroed count to price
// the transmission, so the per-block delay contribution is always zero and
// every block in a single trySendRight batch lands on the same virtual
// instant. This ordering is load-bearing for the model's behavior and is
// reproduced exactly, not "fixed" — see DESIGN.md for the rationale.
package ring

import (
	"log/slog"

	"ringrecovery/internal/engine"
	"ringrecovery/internal/simtime"
	"ringrecovery/internal/topology"
)

// Sim is the concrete simulator type the recovery protocol runs over.
type Sim = engine.Simulator[topology.Node]

// Hooks are optional, nil-safe observation points a caller can attach to a
// Runner. The protocol logs every send and completion at Debug level on its
// own (see trySendRight and onBlockReceived below); Hooks exist for callers
// that need the same events for something other than logging, such as
// streaming them to a live client over a websocket, without the protocol
// itself depending on that concern.
type Hooks struct {
	// OnSend fires once per scheduled transmission: from, to node ids, the
	// block index, and the virtual time the transmission will complete.
	OnSend func(from, to, block int64, arrival simtime.Time)
	// OnComplete fires when a block becomes fully received at a node.
	OnComplete func(node, block int64, at simtime.Time)
}

func (h Hooks) onSend(from, to, block int64, arrival simtime.Time) {
	if h.OnSend != nil {
		h.OnSend(from, to, block, arrival)
	}
}

func (h Hooks) onComplete(node, block int64, at simtime.Time) {
	if h.OnComplete != nil {
		h.OnComplete(node, block, at)
	}
}

// Runner threads optional Hooks through the protocol's recursive
// scheduling without the engine or topology packages needing to know about
// observability.
type Runner struct {
	Sim   *Sim
	Hooks Hooks
}

// NewRunner builds a Runner over an already-constructed simulator.
func NewRunner(sim *Sim) *Runner {
	return &Runner{Sim: sim}
}

// StartRecovery is scheduled once per node at time zero: it attempts to
// send every block to the node's right-hand neighbor (only the node's own,
// self-complete block will typically qualify at t=0).
func (r *Runner) StartRecovery(me int64) {
	n := r.Sim.NodeCount()
	blocks := make([]int64, n)
	for i := range blocks {
		blocks[i] = int64(i)
	}
	r.trySendRight(me, blocks)
}

// trySendRight evaluates each candidate block i in blocks and, if node me
// has it complete (Misses[i]==0) and still believes its right neighbor
// needs it (RightMisses[i]>0), schedules a completion event on the right
// neighbor. The running delay for the batch starts at one propagation hop
// (Dn) and is meant to accumulate per-block transmission time, pipelining
// sends serially on the ring link — but see the package doc comment: the
// zero-before-charge ordering means the accumulation is always a no-op.
func (r *Runner) trySendRight(me int64, blocks []int64) {
	node := r.Sim.Node(int(me))
	cfg := node.Config()
	right := node.Right()

	delay := cfg.Dn()

	type pending struct {
		block int64
		when  simtime.Time
	}
	var scheduled []pending

	for _, i := range blocks {
		if node.Misses[i] != 0 || node.RightMisses[i] <= 0 {
			continue
		}

		// Register that we are sending this block to our neighbor. This
		// happens BEFORE the transmission cost below is computed, so the
		// cost always reads a post-zero count (see package doc comment).
		node.RightMisses[i] = 0

		delayStep := cfg.G.BytesTxTime(node.RightMisses[i] * cfg.B)
		delay = delay.Add(delayStep)

		scheduled = append(scheduled, pending{block: i, when: delay})
	}

	for _, p := range scheduled {
		block := p.block
		arrival := r.Sim.Now().Add(p.when)
		slog.Debug("block send scheduled", "from", me, "to", right, "block", block, "arrival", arrival.String())
		r.Hooks.onSend(me, right, block, arrival)
		r.Sim.Schedule(p.when, func(s *Sim) {
			r.onBlockReceived(right, block)
		})
	}
}

// onBlockReceived fires when a transmission completes: block becomes fully
// received at node u, then u attempts to forward it onward to its own
// right-hand neighbor.
func (r *Runner) onBlockReceived(u int64, block int64) {
	node := r.Sim.Node(int(u))
	node.Misses[block] = 0
	now := r.Sim.Now()
	slog.Debug("block completed", "node", u, "block", block, "at", now.String())
	r.Hooks.onComplete(u, block, now)
	r.trySendRight(u, []int64{block})
}
