// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package threshold adapts the teacher's crypto/bls placeholder into the
// crypto.Scheme seam. It is deliberately not a real threshold signature
// scheme: spec §1 explicitly puts signature-scheme primitives out of
// scope, so this package only needs to demonstrate that *some* concrete
// Scheme can combine independently-valid per-voter signatures into a
// single artifact and verify it against a stake table. Swap this package
// for a real BLS/threshold-BLS implementation without touching the core.
package threshold

import (
	"github.com/luxfi/daseq/crypto"
)

const (
	pubKeyLen = 32
	sigLen    = 64
)

// ConcatScheme assembles a signature by concatenating (pubkey, sig) pairs
// for every voter that signed. Verification re-checks every pair
// individually and rejects the whole aggregate if any pair is duplicated,
// absent from the stake table, or fails to verify; otherwise it compares
// the summed stake against the threshold.
type ConcatScheme struct{}

var _ crypto.Scheme = ConcatScheme{}

func (ConcatScheme) Check(pk, sig, msg []byte) bool {
	return crypto.Ed25519Check(pk, sig, msg)
}

// Aggregate concatenates entries already packed by crypto.PackEntry (each a
// pubKeyLen+sigLen (pubkey, sig) pair) in order -- no length prefix.
// VerifyAggregate relies on that fixed stride to walk the buffer back into
// entries.
func (ConcatScheme) Aggregate(sigs [][]byte) ([]byte, error) {
	out := make([]byte, 0, len(sigs)*(sigLen+pubKeyLen))
	for _, s := range sigs {
		out = append(out, s...)
	}
	return out, nil
}

func (ConcatScheme) VerifyAggregate(msg []byte, aggregate []byte, param crypto.PublicParameter) bool {
	stakeByKey := make(map[string]uint64, len(param.StakeTable))
	for _, e := range param.StakeTable {
		stakeByKey[string(e.PublicKey)] = e.Stake
	}

	entrySize := pubKeyLen + sigLen
	if len(aggregate)%entrySize != 0 {
		return false
	}

	var total uint64
	seen := make(map[string]struct{}, len(aggregate)/entrySize)
	for off := 0; off+entrySize <= len(aggregate); off += entrySize {
		pk := aggregate[off : off+pubKeyLen]
		sig := aggregate[off+pubKeyLen : off+entrySize]
		key := string(pk)
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}

		stake, ok := stakeByKey[key]
		if !ok || !crypto.Ed25519Check(pk, sig, msg) {
			return false
		}
		total += stake
	}
	return total >= param.Threshold
}
