// Package lossmodel implements two interchangeable boolean-stream
// producers: an independent Bernoulli process and a two-state
// Gilbert-Elliott Markov chain. Both satisfy the same "lazy sequence of
// booleans, true means received" contract, so topology construction
// (internal/topology) can be driven by either without caring which one it
// got.
//
// The PRNG backing both sources only needs a reproducible 64-bit seed; this
// package uses the standard library's math/rand/v2 PCG source, which is
// seeded deterministically and produces an identical sequence for an
// identical seed on any platform.
package lossmodel

import "math/rand/v2"

// Source produces a lazy, infinite sequence of booleans: true means the
// chunk was received, false means it was lost.
type Source interface {
	Next() bool
}

// NewRand builds a *rand.Rand seeded deterministically from a 64-bit seed,
// shared by both Source implementations below.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Bernoulli draws independent booleans with P(received) = 1 - lossProb.
type Bernoulli struct {
	rng      *rand.Rand
	lossProb float64
}

// NewBernoulli constructs a Bernoulli source. lossProb must be in [0,1].
func NewBernoulli(rng *rand.Rand, lossProb float64) *Bernoulli {
	return &Bernoulli{rng: rng, lossProb: lossProb}
}

// Next draws one boolean.
func (b *Bernoulli) Next() bool {
	return b.rng.Float64() >= b.lossProb
}

// GilbertElliottModel holds the four parameters of a two-state Markov loss
// process, derived from mean dwell lengths in each state:
//
//	P(Good->Bad) = badLen / (badLen + goodLen)
//	P(Bad->Good) = goodLen / (badLen + goodLen)
type GilbertElliottModel struct {
	toBadProb    float64
	toGoodProb   float64
	badLossProb  float64
	goodLossProb float64
}

// NewGilbertElliottModel builds a model from average dwell lengths in each
// state and the per-state loss probabilities.
func NewGilbertElliottModel(badLen, goodLen, badLossProb, goodLossProb float64) GilbertElliottModel {
	return GilbertElliottModel{
		toBadProb:    badLen / (badLen + goodLen),
		toGoodProb:   goodLen / (badLen + goodLen),
		badLossProb:  badLossProb,
		goodLossProb: goodLossProb,
	}
}

type geState int

const (
	stateGood geState = iota
	stateBad
)

// GilbertElliott is a two-state Markov chain loss source, starting in the
// Good state.
type GilbertElliott struct {
	rng   *rand.Rand
	model GilbertElliottModel
	state geState
}

// NewGilbertElliott constructs a chain in the Good state.
func NewGilbertElliott(rng *rand.Rand, model GilbertElliottModel) *GilbertElliott {
	return &GilbertElliott{rng: rng, model: model, state: stateGood}
}

// Next emits whether the chunk is received at the current step, then
// advances the chain's state.
func (g *GilbertElliott) Next() bool {
	var received bool
	switch g.state {
	case stateGood:
		received = g.rng.Float64() >= g.model.goodLossProb
		if g.rng.Float64() < g.model.toBadProb {
			g.state = stateBad
		}
	case stateBad:
		received = g.rng.Float64() >= g.model.badLossProb
		if g.rng.Float64() < g.model.toGoodProb {
			g.state = stateGood
		}
	}
	return received
}
