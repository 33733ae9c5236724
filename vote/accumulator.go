// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vote implements the per-(view, role) vote accumulator: it folds
// individual signatures with stake, keyed by the commitment voted on, and
// emits a certificate once one commitment's stake crosses threshold. See
// spec §4.4 / component C4.
package vote

import (
	"github.com/luxfi/ids"

	"github.com/luxfi/daseq/crypto"
	"github.com/luxfi/daseq/types"
	"github.com/luxfi/daseq/utils/bag"
	"github.com/luxfi/daseq/utils/set"
)

// StakeLookup reports a node's stake weight, or ok=false if it holds no
// stake-table entry (spec §4.4 step 1).
type StakeLookup func(nodeID ids.NodeID) (stake uint64, ok bool)

// bucket tracks everything accumulated so far for one commitment. Buckets
// for different, equivocating commitments are tracked independently and
// never combined -- that is the whole point of keying by commitment.
type bucket struct {
	signers set.Set[ids.NodeID]
	entries [][]byte
	stake   uint64
}

// Accumulator folds votes for a single (view, role) pair. It is not safe
// for concurrent use: the spec assigns one consumer per view/role (the
// leader task holds exclusive access for the view's duration).
type Accumulator struct {
	kind      types.SigKind
	view      types.View
	threshold uint64
	stakeOf   StakeLookup
	scheme    crypto.Scheme
	buckets   map[types.Commitment]*bucket

	// attempts counts every Append call per signer across all commitments
	// in this view/role, including rejected duplicates -- diagnostic only,
	// never consulted by the fold itself.
	attempts bag.Bag[ids.NodeID]
}

// New creates an accumulator for one (view, kind) pair. threshold is
// whichever of Membership.SuccessThreshold/FailureThreshold the caller's
// role requires.
func New(kind types.SigKind, view types.View, threshold uint64, stakeOf StakeLookup, scheme crypto.Scheme) *Accumulator {
	return &Accumulator{
		kind:      kind,
		view:      view,
		threshold: threshold,
		stakeOf:   stakeOf,
		scheme:    scheme,
		buckets:   make(map[types.Commitment]*bucket),
		attempts:  bag.New[ids.NodeID](),
	}
}

// Append is the per-spec fold: reject unknown/duplicate signers, accumulate
// stake per commitment, and emit a Certificate the instant one commitment's
// stake crosses threshold. ok reports whether a certificate was produced;
// when it is false and err is nil, the vote was folded in but no
// commitment has reached threshold yet.
func (a *Accumulator) Append(commitment types.Commitment, signer ids.NodeID, encodedKey, signature []byte, voteCount uint64) (cert types.Certificate, ok bool, err error) {
	a.attempts.Add(signer)

	stake, known := a.stakeOf(signer)
	if !known {
		return types.Certificate{}, false, ErrUnknownSigner
	}

	b, exists := a.buckets[commitment]
	if !exists {
		b = &bucket{signers: set.NewSet[ids.NodeID](1)}
		a.buckets[commitment] = b
	}
	if b.signers.Contains(signer) {
		return types.Certificate{}, false, ErrDuplicateVote
	}

	b.signers.Add(signer)
	b.entries = append(b.entries, crypto.PackEntry(encodedKey, signature))
	// stake accumulates by the token's vote count, which must match the
	// stake-table entry weight; the caller (exchange.IsValidVote) already
	// checked that agreement before calling Append.
	b.stake += voteCount
	_ = stake

	if b.stake < a.threshold {
		return types.Certificate{}, false, nil
	}

	assembled, aggErr := a.scheme.Aggregate(b.entries)
	if aggErr != nil {
		return types.Certificate{}, false, aggErr
	}
	delete(a.buckets, commitment)

	return types.Certificate{
		ViewNumber: a.view,
		Commitment: commitment,
		Signatures: types.AssembledSignature{Kind: a.kind, Bytes: assembled},
	}, true, nil
}

// Stake returns the stake accumulated so far for commitment, for tests and
// diagnostics.
func (a *Accumulator) Stake(commitment types.Commitment) uint64 {
	if b, ok := a.buckets[commitment]; ok {
		return b.stake
	}
	return 0
}

// Attempts returns how many times signer has called Append this view/role,
// across every commitment, including rejected duplicates. A value above 1
// for a correct network points at a retransmitting or equivocating signer.
func (a *Accumulator) Attempts(signer ids.NodeID) int {
	return a.attempts.Count(signer)
}
