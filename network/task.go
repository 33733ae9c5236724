// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package network

import (
	"sync"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/daseq/membership"
	"github.com/luxfi/daseq/types"
)

// Transport is the collaborator interface from spec §6: broadcast to a
// committee, direct-send to one key, or receive the next inbound message.
// The underlying peer-to-peer implementation is out of scope for the core.
type Transport interface {
	Broadcast(msg types.ConsensusMessage, committee []ids.NodeID)
	Direct(msg types.ConsensusMessage, to ids.NodeID)
	Recv() (types.ConsensusMessage, error)
}

// Task owns one Transport and publishes classified events to subscribers
// registered under a Filter, looping Recv until the transport closes or
// Stop is called. Subscribers observe the same stream independently, per
// the "Event-stream dispatch" design note.
type Task struct {
	transport  Transport
	membership membership.Membership
	log        log.Logger

	mu   sync.Mutex
	subs []subscription

	stop chan struct{}
}

type subscription struct {
	filter Filter
	events chan Event
}

// New builds a Task bound to transport and the committee membership used to
// resolve broadcast/direct targets.
func New(transport Transport, m membership.Membership, logger log.Logger) *Task {
	return &Task{transport: transport, membership: m, log: logger, stop: make(chan struct{})}
}

// Subscribe registers a new listener gated by filter. The returned channel
// is closed when the task stops. Buffered to a modest depth per spec §5's
// backpressure note: implementations should bound vote channels.
func (t *Task) Subscribe(filter Filter) <-chan Event {
	ch := make(chan Event, 256)
	t.mu.Lock()
	t.subs = append(t.subs, subscription{filter: filter, events: ch})
	t.mu.Unlock()
	return ch
}

// Run drains the transport until it errors or Stop is called, publishing
// each classified inbound message to every subscriber whose filter admits
// it.
func (t *Task) Run() {
	for {
		select {
		case <-t.stop:
			t.publish(Shutdown{})
			t.closeAll()
			return
		default:
		}

		msg, err := t.transport.Recv()
		if err != nil {
			t.log.Error("network task: recv failed, stopping", "error", err)
			t.publish(Shutdown{})
			t.closeAll()
			return
		}
		event := classify(msg)
		if event == nil {
			t.log.Warn("network task: unclassifiable message, dropping")
			continue
		}
		t.publish(event)
	}
}

// Stop signals Run to exit after broadcasting Shutdown to every
// subscriber.
func (t *Task) Stop() { close(t.stop) }

// AnnounceViewChange publishes the cross-task barrier event (spec §5).
func (t *Task) AnnounceViewChange(v types.View) { t.publish(ViewChange{NewView: v}) }

func (t *Task) publish(e Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, sub := range t.subs {
		if !sub.filter(e) {
			continue
		}
		select {
		case sub.events <- e:
		default:
			t.log.Warn("network task: subscriber channel full, dropping event under backpressure")
		}
	}
}

func (t *Task) closeAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, sub := range t.subs {
		close(sub.events)
	}
	t.subs = nil
}

// Broadcast sends msg to the full committee for view v.
func (t *Task) Broadcast(msg types.ConsensusMessage, v types.View) {
	env := NewEnvelope(msg)
	t.log.Debug("network task: broadcasting", "correlation_id", env.ID, "view", v)
	t.transport.Broadcast(msg, t.membership.Committee(v))
}

// BroadcastProposal implements leader/quorum.Broadcaster.
func (t *Task) BroadcastProposal(msg types.ProposalMessage) {
	t.Broadcast(msg, msg.Proposal.ViewNumber)
}

// BroadcastDAProposal implements leader/da.Broadcaster.
func (t *Task) BroadcastDAProposal(msg types.DAProposalMessage) {
	t.Broadcast(msg, msg.Proposal.ViewNumber)
}

// BroadcastDACertificate sends a completed DA certificate to the committee.
func (t *Task) BroadcastDACertificate(msg types.DACertificateMessage) {
	t.Broadcast(msg, msg.Certificate.ViewNumber)
}

// BroadcastViewSyncCertificate sends a completed view-sync certificate.
func (t *Task) BroadcastViewSyncCertificate(msg types.ViewSyncCertificateMessage) {
	t.Broadcast(msg, msg.Certificate.Round)
}

// BroadcastTransaction submits a transaction for inclusion.
func (t *Task) BroadcastTransaction(msg types.SubmitTransactionMessage) {
	t.Broadcast(msg, msg.ViewNumber)
}

// direct wraps a point-to-point send with the same correlation-ID log
// trail Broadcast leaves, then hands msg to the transport.
func (t *Task) direct(msg types.ConsensusMessage, to ids.NodeID) {
	env := NewEnvelope(msg)
	t.log.Debug("network task: direct send", "correlation_id", env.ID, "to", to)
	t.transport.Direct(msg, to)
}

// SendQuorumVote directs a quorum vote to the leader of v+1, per §4.9.
func (t *Task) SendQuorumVote(msg types.ConsensusMessage, v types.View) {
	t.direct(msg, t.membership.Leader(v.Next()))
}

// SendDAVote directs a DA vote to the leader of v, per §4.9.
func (t *Task) SendDAVote(msg types.DAVoteMessage, v types.View) {
	t.direct(msg, t.membership.Leader(v))
}

// SendViewSyncVote directs a view-sync vote to leader(round + relay).
func (t *Task) SendViewSyncVote(msg types.ConsensusMessage, round types.View, relay uint64) {
	target := types.View(uint64(round) + relay)
	t.direct(msg, t.membership.Leader(target))
}

// SendNextLeaderTimeout implements leader/nextview.Sender: announces the
// view boundary failed so the next-next leader's collector can proceed.
func (t *Task) SendNextLeaderTimeout(v types.View) {
	t.AnnounceViewChange(v.Next())
}
