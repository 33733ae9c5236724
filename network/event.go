// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package network implements the Network Task (C10): it owns one
// communication channel and an event stream, classifies inbound wire
// messages into SequencingHotShotEvent variants, publishes them to
// per-role subscribers, and turns outbound events back into wire messages.
// See spec §4.9.
package network

import "github.com/luxfi/daseq/types"

// Event is the tagged sum of everything the network task publishes.
// Concrete variants implement the unexported marker method, closing the
// set to this package -- mirroring types.ConsensusMessage's shape.
type Event interface {
	isEvent()
}

type QuorumProposalRecv struct{ Proposal types.ProposalMessage }

func (QuorumProposalRecv) isEvent() {}

type QuorumVoteRecv struct{ Vote types.VoteMessage }

func (QuorumVoteRecv) isEvent() {}

type QuorumTimeoutVoteRecv struct{ Vote types.TimeoutVoteMessage }

func (QuorumTimeoutVoteRecv) isEvent() {}

type DAProposalRecv struct{ Proposal types.DAProposalMessage }

func (DAProposalRecv) isEvent() {}

type DAVoteRecv struct{ Vote types.DAVoteMessage }

func (DAVoteRecv) isEvent() {}

type DACRecv struct{ Certificate types.DACertificateMessage }

func (DACRecv) isEvent() {}

type ViewSyncVoteRecv struct{ Vote types.ViewSyncVoteMessage }

func (ViewSyncVoteRecv) isEvent() {}

type ViewSyncCertificateRecv struct{ Certificate types.ViewSyncCertificateMessage }

func (ViewSyncCertificateRecv) isEvent() {}

type TransactionRecv struct{ Transaction types.SubmitTransactionMessage }

func (TransactionRecv) isEvent() {}

// Shutdown tells every task to stop. Every role filter must forward it.
type Shutdown struct{}

func (Shutdown) isEvent() {}

// ViewChange is the cross-task barrier event: the only ordering guarantee
// the spec gives across tasks (§5). Every role filter must forward it.
type ViewChange struct{ NewView types.View }

func (ViewChange) isEvent() {}

// classify turns an inbound wire message into its Event variant.
func classify(msg types.ConsensusMessage) Event {
	switch m := msg.(type) {
	case types.ProposalMessage:
		return QuorumProposalRecv{Proposal: m}
	case types.VoteMessage:
		return QuorumVoteRecv{Vote: m}
	case types.TimeoutVoteMessage:
		return QuorumTimeoutVoteRecv{Vote: m}
	case types.DAProposalMessage:
		return DAProposalRecv{Proposal: m}
	case types.DAVoteMessage:
		return DAVoteRecv{Vote: m}
	case types.DACertificateMessage:
		return DACRecv{Certificate: m}
	case types.ViewSyncVoteMessage:
		return ViewSyncVoteRecv{Vote: m}
	case types.ViewSyncCertificateMessage:
		return ViewSyncCertificateRecv{Certificate: m}
	case types.SubmitTransactionMessage:
		return TransactionRecv{Transaction: m}
	default:
		return nil
	}
}
