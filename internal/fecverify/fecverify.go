// Package fecverify is an offline diagnostic, never on the simulation
// path, that validates the closed-form Cm() residual-loss estimator's
// erasure-tolerance assumption against a real Reed-Solomon codec.
//
// This answers a narrow question: for a given (c0, c1), can up to c1
// erased shards of an encoded block always be reconstructed? The
// event-driven simulator never decodes chunks itself, so this check only
// ever runs as a standalone confidence check a caller invokes separately.
package fecverify

import (
	"crypto/rand"
	"fmt"

	"github.com/klauspost/reedsolomon"
)

// Result reports what a feasibility check found.
type Result struct {
	C0, C1        int64
	ShardSize     int64
	ErasuresTried int64
	Reconstructed bool
}

// CheckErasureTolerance builds a (c0, c1) Reed-Solomon encoder, encodes a
// random synthetic block of shardSize-byte shards, erases exactly c1
// shards (the maximum the code claims to tolerate), and confirms
// reconstruction recovers the original data bit-for-bit.
//
// shardSize must be a multiple of reedsolomon's internal alignment; a
// small even value like 64 or 4096 (matching a real chunk size b) works.
func CheckErasureTolerance(c0, c1, shardSize int64) (Result, error) {
	res := Result{C0: c0, C1: c1, ShardSize: shardSize, ErasuresTried: c1}

	if c1 == 0 {
		// A (c0, 0) code tolerates zero erasures by construction; nothing
		// to reconstruct, so report trivially feasible.
		res.Reconstructed = true
		return res, nil
	}

	enc, err := reedsolomon.New(int(c0), int(c1))
	if err != nil {
		return res, fmt.Errorf("fecverify: building (%d,%d) encoder: %w", c0, c1, err)
	}

	shards := make([][]byte, c0+c1)
	for i := range shards {
		shards[i] = make([]byte, shardSize)
	}
	for i := int64(0); i < c0; i++ {
		if _, err := rand.Read(shards[i]); err != nil {
			return res, fmt.Errorf("fecverify: generating shard %d: %w", i, err)
		}
	}

	original := make([][]byte, len(shards))
	for i, s := range shards {
		original[i] = append([]byte(nil), s...)
	}

	if err := enc.Encode(shards); err != nil {
		return res, fmt.Errorf("fecverify: encoding: %w", err)
	}

	for i := int64(0); i < c1; i++ {
		shards[i] = nil
	}

	if err := enc.Reconstruct(shards); err != nil {
		return res, nil
	}

	for i := int64(0); i < c0; i++ {
		if string(shards[i]) != string(original[i]) {
			return res, nil
		}
	}

	res.Reconstructed = true
	return res, nil
}
