// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import "github.com/luxfi/ids"

// DAProposal is broadcast by a DA leader at the start of a view: the block
// of transactions it proposes, the view, and its signature over the block
// commitment.
type DAProposal struct {
	Deltas     Block
	ViewNumber View
	Signature  []byte
}

// CommitmentProposal is broadcast by a Quorum leader once it holds a DA
// certificate for a block: the new leaf's block commitment, the justifying
// QC of the leaf's parent, the DAC proving data availability, and the
// resulting state commitment.
type CommitmentProposal struct {
	BlockCommitment Commitment
	ViewNumber      View
	JustifyQC       QuorumCertificate
	DAC             DACertificate
	StateCommitment Commitment
	ProposerID      ids.NodeID
}
