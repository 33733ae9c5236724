// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

// ConsensusMessage is the tagged sum of every message that crosses the
// wire. Concrete variants implement the unexported marker method so the
// set is closed to this package; network.Task does the event-stream
// translation (see §4.9 / C10) and hands these values to its Transport as
// they are. This module has no byte-level encoding for them.
type ConsensusMessage interface {
	isConsensusMessage()
}

// General messages: quorum proposals, votes, and view-sync certificates.

type ProposalMessage struct {
	Proposal  CommitmentProposal
	Signature []byte
}

func (ProposalMessage) isConsensusMessage() {}

type VoteMessage struct {
	Vote Vote
}

func (VoteMessage) isConsensusMessage() {}

type TimeoutVoteMessage struct {
	Vote TimeoutVote
}

func (TimeoutVoteMessage) isConsensusMessage() {}

type ViewSyncVoteMessage struct {
	Vote Vote
}

func (ViewSyncVoteMessage) isConsensusMessage() {}

type ViewSyncCertificateMessage struct {
	Certificate ViewSyncCertificate
}

func (ViewSyncCertificateMessage) isConsensusMessage() {}

// Committee (DA) messages.

type DAProposalMessage struct {
	Proposal DAProposal
}

func (DAProposalMessage) isConsensusMessage() {}

type DAVoteMessage struct {
	Vote Vote
}

func (DAVoteMessage) isConsensusMessage() {}

type DACertificateMessage struct {
	Certificate DACertificate
}

func (DACertificateMessage) isConsensusMessage() {}

// Data messages.

type SubmitTransactionMessage struct {
	Transaction Transaction
	ViewNumber  View
}

func (SubmitTransactionMessage) isConsensusMessage() {}
