// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package membership answers, as a deterministic pure function of a view
// number, who leads, who sits on the committee, and how much stake each
// seat carries. See spec §4.3 / component C3.
package membership

import (
	"github.com/luxfi/ids"

	"github.com/luxfi/daseq/types"
)

// Checked is a tri-state result for vote-token validation, letting callers
// verify lazily and cache the result instead of re-checking every time.
type Checked int

const (
	Unchecked Checked = iota
	Valid
	Invalid
)

// Membership is the pure, deterministic view of committee composition.
// Implementations must never depend on mutable state beyond the
// (committee config, view) pair: two calls with the same view must always
// agree, on every replica.
type Membership interface {
	// Leader returns the single node selected to lead this view.
	Leader(v types.View) ids.NodeID

	// Committee returns the set of nodes eligible to vote this view.
	Committee(v types.View) []ids.NodeID

	// MakeVoteToken returns a token proving nodeID's eligibility and
	// weight for v, or ok=false if nodeID holds zero seats this view.
	MakeVoteToken(v types.View, nodeID ids.NodeID) (token types.VoteToken, ok bool)

	// ValidateVoteToken checks token against nodeID's seat. StaticTable
	// checks only that the token's vote count is non-zero and equals
	// nodeID's stake; it does not bind the token to a view or check that
	// it was minted by MakeVoteToken.
	ValidateVoteToken(nodeID ids.NodeID, token types.VoteToken) Checked

	// SuccessThreshold is the stake count at which a certificate forms.
	// Must satisfy success > 2/3 * total.
	SuccessThreshold() uint64

	// FailureThreshold is the stake count at which view failure becomes
	// provable. Must satisfy failure >= total - success + 1.
	FailureThreshold() uint64

	// StakeOf returns a node's stake weight, or ok=false if it holds no
	// stake-table entry (e.g. not a committee member).
	StakeOf(nodeID ids.NodeID) (stake uint64, ok bool)

	// PublicKeyOf returns a node's encoded signature public key, or
	// ok=false if the node is unknown to this committee. This is what
	// lets a verifier turn a committee (spec §4.3) into the
	// crypto.PublicParameter a Scheme checks an AssembledSignature
	// against (spec §6, SignatureKey.get_stake_table_entry).
	PublicKeyOf(nodeID ids.NodeID) (encodedKey []byte, ok bool)
}
