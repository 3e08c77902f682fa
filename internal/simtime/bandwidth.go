package simtime

import "math/big"

// Bandwidth is a link rate in bits per second.
type Bandwidth int64

// FromGigabits constructs a Bandwidth from a count of gigabits per second.
func FromGigabits(gbps int64) Bandwidth {
	return Bandwidth(gbps * 1_000_000_000)
}

// BytesTxTime returns the time needed to transmit bytes bytes at this
// bandwidth: ONE_SECOND * bytes * 8 / bps, computed exactly (no float64
// intermediate) so it composes with Time without drift.
func (b Bandwidth) BytesTxTime(bytes int64) Time {
	var r Time
	num := new(big.Int).Mul(oneSecond, big.NewInt(bytes))
	num.Mul(num, big.NewInt(8))
	r.ticks.Quo(num, big.NewInt(int64(b)))
	return r
}
