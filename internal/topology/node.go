// Package topology builds the per-node chunk state for the ring recovery
// protocol: one Node per server, each holding a bitmap of received chunks, a
// per-block miss counter, and a snapshot of its right-hand ring neighbor's
// misses at construction time.
//
// The receive bitmap is a real bitset (github.com/bits-and-blooms/bitset)
// rather than a []bool, mirroring the reference Rust prototype's use of the
// bit_set crate for the identical role
// (original_source/analysis/rust/src/ag/node.rs).
package topology

import (
	"github.com/bits-and-blooms/bitset"

	"ringrecovery/internal/config"
)

// Node is the mutable per-server state that lives for the full run.
type Node struct {
	cfg config.Config
	id  int64

	received *bitset.BitSet

	// Misses[i] is the count of chunks of block i this node still lacks.
	Misses []int64

	// RightMisses is this node's snapshot of its right neighbor's Misses at
	// construction time. It is decremented only by this node as an
	// "already offered" marker — see internal/ring for how the recovery
	// protocol uses it.
	RightMisses []int64
}

// ID returns the node's index in [0,n).
func (nd *Node) ID() int64 { return nd.id }

// Config returns the shared run configuration.
func (nd *Node) Config() config.Config { return nd.cfg }

// Right returns the index of this node's right-hand ring neighbor.
func (nd *Node) Right() int64 {
	return (nd.id + 1) % nd.cfg.N()
}

// HasChunk reports whether chunk j has been received.
func (nd *Node) HasChunk(j int64) bool {
	return nd.received.Test(uint(j))
}

func (nd *Node) setChunk(j int64) {
	nd.received.Set(uint(j))
}

// NewTopology creates n nodes with empty bitmaps and zeroed miss arrays.
func NewTopology(cfg config.Config) []*Node {
	n := int(cfg.N())
	chunkCount := uint(cfg.ChunkCount())
	nodes := make([]*Node, n)
	for i := 0; i < n; i++ {
		nodes[i] = &Node{
			cfg:         cfg,
			id:          int64(i),
			received:    bitset.New(chunkCount),
			Misses:      make([]int64, n),
			RightMisses: make([]int64, n),
		}
	}
	return nodes
}
