// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package nextview implements the Next Leader / Vote Collector state
// machine (C9): at the v -> v+1 boundary, collect Yes votes into a QC, or
// on interrupt, pick the highest justify-QC any Timeout voter revealed.
// See spec §4.8.
package nextview

import (
	"github.com/luxfi/log"

	"github.com/luxfi/daseq/exchange"
	"github.com/luxfi/daseq/types"
)

// Collector runs the vote-collection half of one view boundary.
type Collector struct {
	exchange *exchange.Exchange
	log      log.Logger
}

// New builds a Collector. exch must be an exchange.NewQuorumYes instance:
// validating and accumulating Yes votes is this role's only job, Timeout
// votes are handled structurally (they only ever contribute their
// justify_qc, never a signature to an accumulator).
func New(exch *exchange.Exchange, logger log.Logger) *Collector {
	return &Collector{exchange: exch, log: logger}
}

// Sender is the capability needed once a view times out without forming a
// QC: tell the next-next leader to pick up from here.
type Sender interface {
	SendNextLeaderTimeout(v types.View)
}

// Run executes one boundary v -> v+1 per §4.8. qcs is seeded by the caller
// with the current generic QC before Run is called. On success (a Yes
// commitment crosses success threshold) it returns that QC immediately;
// on interrupt without success it returns argmax_view(qcs).
func (c *Collector) Run(v types.View, qcs []types.QuorumCertificate, sender Sender, messages <-chan types.ConsensusMessage, interrupt <-chan struct{}) types.QuorumCertificate {
	acc := c.exchange.NewAccumulator(v)

	for {
		select {
		case <-interrupt:
			sender.SendNextLeaderTimeout(v)
			return argmaxByView(qcs)

		case msg, ok := <-messages:
			if !ok {
				return argmaxByView(qcs)
			}

			switch m := msg.(type) {
			case types.VoteMessage:
				vote := m.Vote
				if vote.View != v {
					c.log.Debug("next leader: dropping foreign-view vote", "view", v, "voteView", vote.View)
					continue
				}
				if vote.Kind != types.KindYes {
					c.log.Warn("next leader: unexpected vote kind on quorum channel", "view", v, "kind", vote.Kind)
					continue
				}
				if !c.exchange.IsValidVote(vote) {
					c.log.Debug("next leader: dropping invalid vote", "view", v, "signer", vote.Signer)
					continue
				}
				cert, crossed, err := c.exchange.AccumulateVote(acc, vote)
				if err != nil {
					continue
				}
				if crossed {
					return types.QuorumCertificate{
						LeafCommitment: cert.Commitment,
						ViewNumber:     v,
						Signatures:     cert.Signatures,
						IsGenesis:      false,
					}
				}

			case types.TimeoutVoteMessage:
				if m.Vote.Vote.View != v {
					continue
				}
				qcs = append(qcs, m.Vote.JustifyQC)

			default:
				c.log.Warn("next leader: unexpected message variant", "view", v)
			}
		}
	}
}

// argmaxByView returns the QC with the highest ViewNumber in qcs. This is
// what guarantees the new high-QC is at least as recent as the best
// justification any honest timeout-voter observed (spec §4.8).
func argmaxByView(qcs []types.QuorumCertificate) types.QuorumCertificate {
	best := types.GenesisQC()
	for _, qc := range qcs {
		if qc.ViewNumber > best.ViewNumber {
			best = qc
		}
	}
	return best
}
