// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"time"

	"github.com/luxfi/ids"
)

// LeafState is the Either<State, StateCommitment> the spec describes: a
// leaf either carries the fully materialized application state, or just
// its commitment (for pruned history). Leader code requires the
// materialized variant and reports replica.ErrNoParentState otherwise.
type LeafState struct {
	Materialized State
	Commitment   Commitment
}

// MaterializedState wraps a fully materialized State.
func MaterializedState(s State) LeafState {
	return LeafState{Materialized: s, Commitment: s.Commit()}
}

// CommitmentOnlyState wraps a bare state commitment with no materialized
// state behind it, e.g. after pruning.
func CommitmentOnlyState(c Commitment) LeafState {
	return LeafState{Commitment: c}
}

// IsMaterialized reports whether Materialized holds a usable State.
func (s LeafState) IsMaterialized() bool {
	return s.Materialized != nil
}

// Leaf is a node in the replicated log chain. It refers to its parent by
// commitment, not by pointer: leaves live in a content-addressed map keyed
// by Commit(leaf), and must never hold cyclic references.
type Leaf struct {
	ViewNumber       View
	ParentCommitment Commitment
	JustifyQC        QuorumCertificate
	Deltas           Block
	State            LeafState
	Height           uint64
	Timestamp        time.Time
	ProposerID       ids.NodeID
	Rejected         []Transaction
}

// Commit returns the content-addressed commitment of this leaf, used as the
// key into saved_leaves and as the parent_commitment children reference.
func (l *Leaf) Commit() Commitment {
	buf := appendViewBE(nil, l.ViewNumber)
	buf = append(buf, l.ParentCommitment[:]...)
	buf = append(buf, l.Deltas.Commit().String()...)
	buf = append(buf, l.State.Commitment[:]...)
	return CommitBytes(buf)
}

// GenesisLeaf returns the sentinel leaf every chain terminates at: a fake
// commitment and a JustifyQC marked IsGenesis.
func GenesisLeaf(state State) *Leaf {
	return &Leaf{
		ViewNumber:       GenesisView,
		ParentCommitment: Empty,
		JustifyQC:        GenesisQC(),
		Deltas:           NextBlock(),
		State:            MaterializedState(state),
		Height:           0,
		ProposerID:       ids.NodeID{},
	}
}
