// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package da implements the DA Leader state machine (C7): for a view this
// node leads, wait for transactions, propose a block to the DA committee,
// and collect votes into a DA certificate. See spec §4.6.
package da

import (
	"context"
	"time"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/daseq/clock"
	"github.com/luxfi/daseq/exchange"
	"github.com/luxfi/daseq/replica"
	"github.com/luxfi/daseq/types"
)

// Config bounds how long a view waits for transactions before proposing
// with whatever it has.
type Config struct {
	MinTransactions     int
	ProposeMaxRoundTime time.Duration
}

// Leader runs one DA leader view at a time; it is not safe for concurrent
// use across views.
type Leader struct {
	cfg       Config
	consensus *replica.Consensus
	exchange  *exchange.Exchange
	clock     clock.Clock
	log       log.Logger
}

// New builds a DA Leader. exch must be an exchange.NewCommittee instance.
func New(cfg Config, consensus *replica.Consensus, exch *exchange.Exchange, clk clock.Clock, logger log.Logger) *Leader {
	return &Leader{cfg: cfg, consensus: consensus, exchange: exch, clock: clk, log: logger}
}

// Outcome is what RunView hands back: either a DA certificate over the
// block it got accepted, or nothing if the view aborted or was interrupted.
type Outcome struct {
	Certificate types.DACertificate
	Block       types.Block
}

// Broadcaster is the minimal network capability RunView needs: broadcast
// the DA proposal to the committee. Kept separate from network.Task so
// this package doesn't need to know about the wire format.
type Broadcaster interface {
	BroadcastDAProposal(types.DAProposalMessage)
}

// RunView executes one DA-leader view per §4.6. votes delivers inbound
// ConsensusMessages already filtered to this view's committee channel;
// interrupt closes when a NextViewInterrupt for v (or later) arrives; RunView
// then returns an empty Outcome and does not itself notify the next leader.
func (l *Leader) RunView(ctx context.Context, v types.View, bcast Broadcaster, votes <-chan types.ConsensusMessage, interrupt <-chan struct{}) (Outcome, error) {
	parent, err := l.consensus.ResolveParent()
	if err != nil {
		l.log.Warn("da leader: abort view, parent missing", "view", v, "error", err)
		return Outcome{}, err
	}
	if !parent.State.IsMaterialized() {
		l.log.Warn("da leader: abort view, parent state not materialized", "view", v)
		return Outcome{}, replica.ErrNoParentState
	}
	state := parent.State.Materialized

	used := parent.Deltas.ContainedTransactions()
	candidates := l.waitForTransactions(ctx, used)
	block := l.pack(state, candidates, v)

	signature, err := l.exchange.SignProposal(block.Commit())
	if err != nil {
		return Outcome{}, err
	}
	bcast.BroadcastDAProposal(types.DAProposalMessage{
		Proposal: types.DAProposal{Deltas: block, ViewNumber: v, Signature: signature},
	})

	return l.collectVotes(v, block, votes, interrupt)
}

// waitForTransactions implements §4.6 step 3's race: subscribe to the
// mempool change stream, and either proceed once there are enough
// unused candidates or once the round's wall-clock budget elapses.
func (l *Leader) waitForTransactions(ctx context.Context, used map[ids.ID]struct{}) []types.Transaction {
	deadline := l.clock.Now().Add(l.cfg.ProposeMaxRoundTime)
	for {
		candidates := l.candidatesExcluding(used)
		if len(candidates) >= l.cfg.MinTransactions || !l.clock.Now().Before(deadline) {
			return candidates
		}

		select {
		case <-ctx.Done():
			return candidates
		case <-l.consensus.Mempool.Changed():
		case <-l.clock.SleepUntil(deadline):
		}
	}
}

func (l *Leader) candidatesExcluding(used map[ids.ID]struct{}) []types.Transaction {
	snapshot := l.consensus.Mempool.Snapshot()
	out := make([]types.Transaction, 0, len(snapshot))
	for hash, tx := range snapshot {
		if _, skip := used[hash]; skip {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// pack implements §4.6 step 4: for each candidate, attempt to add it to
// the block and, if the resulting block validates, keep it; otherwise
// silently drop the candidate.
func (l *Leader) pack(state types.State, candidates []types.Transaction, v types.View) types.Block {
	block := types.Block(types.NextBlock())
	for _, tx := range candidates {
		next, err := block.AddTransactionRaw(tx)
		if err != nil {
			continue
		}
		if !state.ValidateBlock(next, v) {
			continue
		}
		block = next
	}
	return block
}

func (l *Leader) collectVotes(v types.View, block types.Block, votes <-chan types.ConsensusMessage, interrupt <-chan struct{}) (Outcome, error) {
	acc := l.exchange.NewAccumulator(v)
	for {
		select {
		case <-interrupt:
			l.log.Info("da leader: interrupted, abandoning view", "view", v)
			return Outcome{}, nil
		case msg, ok := <-votes:
			if !ok {
				return Outcome{}, replica.ErrChannelClosed
			}
			daVote, ok := msg.(types.DAVoteMessage)
			if !ok {
				l.log.Warn("da leader: unexpected message variant on committee channel", "view", v)
				continue
			}
			vote := daVote.Vote
			if vote.View != v {
				continue
			}
			if !l.exchange.IsValidVote(vote) {
				l.log.Debug("da leader: dropping invalid vote", "view", v, "signer", vote.Signer)
				continue
			}
			cert, crossed, err := l.exchange.AccumulateVote(acc, vote)
			if err != nil {
				continue
			}
			if crossed {
				return Outcome{Certificate: cert, Block: block}, nil
			}
		}
	}
}
