// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package crypto defines the signature-scheme seam the core consumes. The
// core never chooses or hardcodes a signature scheme -- it only requires
// that per-voter signatures over a fixed commitment can be combined into a
// single artifact verifiable against a weighted stake table. See §6 and the
// Non-goals in spec §1.
package crypto

// StakeTableEntry binds a public key to its stake weight, the unit the
// aggregation scheme verifies thresholds against.
type StakeTableEntry struct {
	PublicKey []byte
	Stake     uint64
}

// PublicParameter is whatever a Scheme needs, beyond the raw stake table, to
// verify an aggregate signature against a given threshold. Its contents are
// opaque to the core.
type PublicParameter struct {
	StakeTable []StakeTableEntry
	Threshold  uint64
}

// SignatureKey is a single replica's signing capability: sign a message and
// expose the encoded public key. It does not check signatures (that is done
// by a Checker or Scheme.Check) and has no constructor from encoded bytes.
type SignatureKey interface {
	Sign(msg []byte) ([]byte, error)
	PublicKeyBytes() []byte
}

// Checker verifies sig over msg against the encoded public key pk, without
// requiring the verifier to hold a SignatureKey of its own.
type Checker func(pk, sig, msg []byte) bool

// PackEntry packs a single (pubkey, sig) pair, the shared framing Scheme
// implementations that aggregate by concatenation (e.g. threshold.ConcatScheme)
// use for every voter's contribution to an AssembledSignature.
func PackEntry(pubKey, sig []byte) []byte {
	entry := make([]byte, 0, len(pubKey)+len(sig))
	entry = append(entry, pubKey...)
	entry = append(entry, sig...)
	return entry
}

// Scheme is the pluggable aggregation scheme: how a committee's individual
// signatures over the same commitment combine into one AssembledSignature,
// and how that aggregate is verified against a PublicParameter.
type Scheme interface {
	// Aggregate combines signatures already known to be valid and over the
	// same message into a single assembled-signature payload.
	Aggregate(sigs [][]byte) ([]byte, error)

	// VerifyAggregate checks an assembled signature against msg and param.
	VerifyAggregate(msg []byte, aggregate []byte, param PublicParameter) bool

	// Check verifies a single signature against a single public key.
	Check(pk, sig, msg []byte) bool
}
