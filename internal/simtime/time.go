// Package simtime implements the simulator's virtual-time and bandwidth
// arithmetic: a signed, arbitrary-precision fixed-point tick count with
// one-femtosecond resolution, and a bits-per-second bandwidth type that
// converts a byte count into a transmission duration.
//
// Virtual time is never represented in floating point internally; every
// comparison and accumulation used by the event engine and the recovery
// protocol is exact integer arithmetic. Floating point only appears at the
// edge, when a Time is rendered for a human (AsSeconds).
package simtime

import (
	"fmt"
	"math/big"
)

// OneSecondBase10 is the power-of-ten exponent defining tick resolution:
// one second equals 10^OneSecondBase10 ticks (one femtosecond per tick).
const OneSecondBase10 = 15

var oneSecond = pow10(OneSecondBase10)

func pow10(exp int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil)
}

// Time is a signed fixed-point virtual-time value, stored in ticks.
//
// The reference implementation this was distilled from used a native i128;
// Go has no signed 128-bit integer type, and no third-party 128-bit type in
// the example corpus is signed, so Time is backed by math/big.Int — see
// DESIGN.md for why that stdlib choice was preferred over hand-rolling a
// hi/lo int64 pair.
type Time struct {
	ticks big.Int
}

// Zero is the virtual-time origin.
func Zero() Time {
	return Time{}
}

// Seconds constructs a Time from a whole number of seconds.
func Seconds(s int64) Time {
	return fromUnits(s, OneSecondBase10)
}

// Millis constructs a Time from a whole number of milliseconds.
func Millis(ms int64) Time {
	return fromUnits(ms, OneSecondBase10-3)
}

// Micros constructs a Time from a whole number of microseconds.
func Micros(us int64) Time {
	return fromUnits(us, OneSecondBase10-6)
}

// Nanos constructs a Time from a whole number of nanoseconds.
func Nanos(ns int64) Time {
	return fromUnits(ns, OneSecondBase10-9)
}

func fromUnits(units int64, shiftExp int) Time {
	var t Time
	t.ticks.Mul(big.NewInt(units), pow10(shiftExp))
	return t
}

// Add returns t + o.
func (t Time) Add(o Time) Time {
	var r Time
	r.ticks.Add(&t.ticks, &o.ticks)
	return r
}

// Sub returns t - o.
func (t Time) Sub(o Time) Time {
	var r Time
	r.ticks.Sub(&t.ticks, &o.ticks)
	return r
}

// Neg returns -t.
func (t Time) Neg() Time {
	var r Time
	r.ticks.Neg(&t.ticks)
	return r
}

// MulInt returns t * n.
func (t Time) MulInt(n int64) Time {
	var r Time
	r.ticks.Mul(&t.ticks, big.NewInt(n))
	return r
}

// DivInt returns t / n, truncated toward zero.
func (t Time) DivInt(n int64) Time {
	var r Time
	r.ticks.Quo(&t.ticks, big.NewInt(n))
	return r
}

// Cmp returns -1, 0, or +1 as t is less than, equal to, or greater than o.
func (t Time) Cmp(o Time) int {
	return t.ticks.Cmp(&o.ticks)
}

// Less reports whether t is strictly before o.
func (t Time) Less(o Time) bool {
	return t.Cmp(o) < 0
}

// Max returns the later of a and b.
func Max(a, b Time) Time {
	if a.Less(b) {
		return b
	}
	return a
}

// Min returns the earlier of a and b.
func Min(a, b Time) Time {
	if a.Less(b) {
		return a
	}
	return b
}

// AsSeconds renders the tick count as a float64 number of seconds, for
// display only — never for comparison.
func (t Time) AsSeconds() float64 {
	q := new(big.Rat).SetFrac(&t.ticks, oneSecond)
	f, _ := q.Float64()
	return f
}

// String renders t the way the reference implementation does: seconds
// suffixed with "s".
func (t Time) String() string {
	return fmt.Sprintf("%gs", t.AsSeconds())
}

// Ticks exposes the raw tick count, mainly for tests that need exact
// equality without going through float64.
func (t Time) Ticks() *big.Int {
	return new(big.Int).Set(&t.ticks)
}
