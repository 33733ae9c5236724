// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package quorum implements the Quorum Leader state machine (C8): given a
// DA certificate and block, append state, build a leaf, and broadcast a
// commitment proposal carrying the DAC and justify-QC. See spec §4.7.
package quorum

import (
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/daseq/clock"
	"github.com/luxfi/daseq/exchange"
	"github.com/luxfi/daseq/replica"
	"github.com/luxfi/daseq/types"
)

// Leader runs one Quorum leader view at a time.
type Leader struct {
	self      ids.NodeID
	consensus *replica.Consensus
	exchange  *exchange.Exchange
	clock     clock.Clock
	log       log.Logger
}

// New builds a Quorum Leader. exch must be an exchange.NewQuorumYes
// instance, used here only to sign the leaf commitment.
func New(self ids.NodeID, consensus *replica.Consensus, exch *exchange.Exchange, clk clock.Clock, logger log.Logger) *Leader {
	return &Leader{self: self, consensus: consensus, exchange: exch, clock: clk, log: logger}
}

// Broadcaster is the minimal network capability RunView needs.
type Broadcaster interface {
	BroadcastProposal(types.ProposalMessage)
}

// RunView executes one Quorum-leader view per §4.7, given the DA
// certificate and block the DA leader produced for this view and the
// current high_qc. It returns high_qc unchanged on success: per the
// Design Notes (spec §9), the source relies on the caller discovering the
// new leaf through the broadcast path rather than through this return
// value, and that behavior is intentionally preserved here rather than
// "fixed" to return the new leaf's QC.
func (l *Leader) RunView(v types.View, dac types.DACertificate, block types.Block, highQC types.QuorumCertificate, bcast Broadcaster) (types.QuorumCertificate, error) {
	parent, err := l.consensus.ResolveParent()
	if err != nil {
		l.log.Warn("quorum leader: abort view, parent missing", "view", v, "error", err)
		return highQC, err
	}
	if !parent.State.IsMaterialized() {
		l.log.Warn("quorum leader: abort view, parent state not materialized", "view", v)
		return highQC, replica.ErrNoParentState
	}

	newState, err := parent.State.Materialized.Append(block, v)
	if err != nil {
		l.log.Error("quorum leader: abort view, state append failed", "view", v, "error", err)
		return highQC, replica.ErrCannotAppend
	}

	leaf := &types.Leaf{
		ViewNumber:       v,
		Height:           parent.Height + 1, // spec §9: canonical, not the source's placeholder 0
		JustifyQC:        highQC,
		ParentCommitment: parent.Commit(),
		Deltas:           block,
		State:            types.MaterializedState(newState),
		Timestamp:        l.clock.Now(), // spec §9: canonical, not the source's placeholder 0
		ProposerID:       l.self,
	}

	blockCommit := block.Commit()
	signature, err := l.exchange.SignProposal(leaf.Commit())
	if err != nil {
		return highQC, err
	}

	bcast.BroadcastProposal(types.ProposalMessage{
		Proposal: types.CommitmentProposal{
			BlockCommitment: blockCommit,
			ViewNumber:      v,
			JustifyQC:       highQC,
			DAC:             dac,
			StateCommitment: newState.Commit(),
			ProposerID:      l.self,
		},
		Signature: signature,
	})

	l.consensus.SaveLeaf(leaf)
	return highQC, nil
}
