// Package config holds the simulator's input parameters and the
// closed-form quantities derived from them, plus optional YAML-file
// overrides layered on top of an in-code base.
package config

import (
	"errors"
	"fmt"
	"math"

	"ringrecovery/internal/simtime"
)

// ErrConfigInvalid is wrapped by every field-validation failure, so callers
// can distinguish "bad input" from any other error with errors.Is.
var ErrConfigInvalid = errors.New("config invalid")

// Config holds the immutable parameters of one simulation run.
type Config struct {
	K  int64 // multicast-root count (informational, estimator-only)
	S  int64 // servers per leaf
	M  int64 // leaf count
	C0 int64 // data chunks per block
	C1 int64 // parity chunks per block
	B  int64 // chunk size in bytes

	D0 simtime.Time // intra-leaf delay
	D1 simtime.Time // inter-leaf delay

	L float64 // chunk loss probability, in [0,1]
	E float64 // FEC efficiency, in [0,1], estimator-only

	G simtime.Bandwidth
}

// Validate checks every field for the shapes that would make a run
// meaningless or arithmetically unsound, naming the first offending field.
func (c Config) Validate() error {
	switch {
	case c.S <= 0:
		return fmt.Errorf("%w: s must be > 0, got %d", ErrConfigInvalid, c.S)
	case c.M <= 0:
		return fmt.Errorf("%w: m must be > 0, got %d", ErrConfigInvalid, c.M)
	case c.C0 <= 0:
		return fmt.Errorf("%w: c0 must be > 0, got %d", ErrConfigInvalid, c.C0)
	case c.C1 < 0:
		return fmt.Errorf("%w: c1 must be >= 0, got %d", ErrConfigInvalid, c.C1)
	case c.B <= 0:
		return fmt.Errorf("%w: b must be > 0, got %d", ErrConfigInvalid, c.B)
	case c.G <= 0:
		return fmt.Errorf("%w: g must be > 0, got %d", ErrConfigInvalid, c.G)
	case c.D1.Cmp(simtime.Zero()) <= 0:
		return fmt.Errorf("%w: d1 must be > 0", ErrConfigInvalid)
	case c.D0.Cmp(simtime.Zero()) < 0:
		return fmt.Errorf("%w: d0 must be >= 0", ErrConfigInvalid)
	case c.L < 0 || c.L > 1:
		return fmt.Errorf("%w: l must be in [0,1], got %v", ErrConfigInvalid, c.L)
	case c.E < 0 || c.E > 1:
		return fmt.Errorf("%w: e must be in [0,1], got %v", ErrConfigInvalid, c.E)
	}
	return nil
}

// N is the total node count (and total block count): m*s.
func (c Config) N() int64 { return c.M * c.S }

// C is the chunk count per block: c0+c1.
func (c Config) C() int64 { return c.C0 + c.C1 }

// ChunkCount is the total chunk count across all blocks: n*c.
func (c Config) ChunkCount() int64 { return c.N() * c.C() }

// BlockBytes is the size in bytes of one full block: c*b.
func (c Config) BlockBytes() int64 { return c.C() * c.B }

// Dn is the mean pairwise delay: (d0*(s-1) + d1) / s.
func (c Config) Dn() simtime.Time {
	return c.D0.MulInt(c.S - 1).Add(c.D1).DivInt(c.S)
}

// Cm estimates the residual per-block chunk losses remaining after FEC:
// max(0, ceil(l*c0 - e*(1-l)*c1)).
func (c Config) Cm() int64 {
	c0 := float64(c.C0)
	c1 := float64(c.C1)
	raw := c.L*c0 - c.E*(1-c.L)*c1
	cm := int64(math.Ceil(raw))
	if cm < 0 {
		return 0
	}
	return cm
}

// WithLoss inflates a byte count to account for expected retransmission
// under the configured loss probability: ceil(bytes / (1-l)).
func (c Config) WithLoss(bytes int64) int64 {
	return int64(math.Ceil(float64(bytes) / (1 - c.L)))
}

// EstRecT is the closed-form recovery-time lower bound used for validation,
// not execution: (g.BytesTxTime(b'*cm) + dn) * (n-1), where b' is the
// loss-inflated chunk size.
func (c Config) EstRecT() simtime.Time {
	bPrime := c.WithLoss(c.B)
	perHop := c.G.BytesTxTime(bPrime * c.Cm()).Add(c.Dn())
	return perHop.MulInt(c.N() - 1)
}

// MemoryFootprintBytes estimates the bitmap memory the simulator needs to
// hold every node's receive bitmap: chunk_count * n / 8 (one bit per chunk
// per node), matching the reference implementation's Config::print.
func (c Config) MemoryFootprintBytes() int64 {
	return c.ChunkCount() * c.N() / 8
}
