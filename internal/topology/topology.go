package topology

import (
	"ringrecovery/internal/lossmodel"
)

// FillChunksRandomly populates every node's receive bitmap under the
// configured Bernoulli loss process, seeded once from seed:
//
//  1. seed a single PRNG from seed;
//  2. for each node in ascending id order, for each chunk index j in
//     [0, n*c), set received(j) with probability 1-l — node-major,
//     chunk-minor order, which is load-bearing for reproducibility;
//  3. force-receive every chunk of each node's own block;
//  4. recompute Misses[i] for every node as the unreceived-chunk count of
//     block i;
//  5. snapshot each node's RightMisses from its right neighbor's freshly
//     computed Misses.
func FillChunksRandomly(nodes []*Node, seed uint64) {
	if len(nodes) == 0 {
		return
	}
	cfg := nodes[0].cfg
	rng := lossmodel.NewRand(seed)
	src := lossmodel.NewBernoulli(rng, cfg.L)
	FillChunksFromSource(nodes, src)
}

// FillChunksFromSource is the general form of FillChunksRandomly, driven by
// any lossmodel.Source (Bernoulli or Gilbert-Elliott) — the two producers
// are interchangeable because both are just a lazy sequence of booleans.
func FillChunksFromSource(nodes []*Node, src lossmodel.Source) {
	if len(nodes) == 0 {
		return
	}
	cfg := nodes[0].cfg
	chunkCount := cfg.ChunkCount()
	c := cfg.C()

	for _, node := range nodes {
		for j := int64(0); j < chunkCount; j++ {
			if src.Next() {
				node.setChunk(j)
			}
		}
	}

	// Force-receive every chunk of each node's own block (self-ownership).
	for _, node := range nodes {
		first := node.id * c
		for j := int64(0); j < c; j++ {
			node.setChunk(first + j)
		}
	}

	fillMisses(nodes)
}

// fillMisses recomputes Misses for every node from its receive bitmap, then
// snapshots RightMisses from each node's right-hand neighbor.
func fillMisses(nodes []*Node) {
	cfg := nodes[0].cfg
	chunkCount := cfg.ChunkCount()
	c := cfg.C()
	n := int64(len(nodes))

	for _, node := range nodes {
		for i := range node.Misses {
			node.Misses[i] = 0
		}
		for j := int64(0); j < chunkCount; j++ {
			if !node.HasChunk(j) {
				node.Misses[j/c]++
			}
		}
	}

	for _, node := range nodes {
		right := nodes[(node.id+1)%n]
		copy(node.RightMisses, right.Misses)
	}
}
