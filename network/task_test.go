// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package network

import (
	"testing"
	"time"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	daselog "github.com/luxfi/daseq/log"
	"github.com/luxfi/daseq/membership"
	"github.com/luxfi/daseq/types"
)

type fakeTransport struct {
	inbound  chan types.ConsensusMessage
	sent     []types.ConsensusMessage
	directTo []ids.NodeID
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{inbound: make(chan types.ConsensusMessage, 16)}
}

func (f *fakeTransport) Broadcast(msg types.ConsensusMessage, _ []ids.NodeID) { f.sent = append(f.sent, msg) }
func (f *fakeTransport) Direct(msg types.ConsensusMessage, to ids.NodeID) {
	f.sent = append(f.sent, msg)
	f.directTo = append(f.directTo, to)
}
func (f *fakeTransport) Recv() (types.ConsensusMessage, error) {
	msg, ok := <-f.inbound
	if !ok {
		return nil, errClosed
	}
	return msg, nil
}

var errClosed = &closedErr{}

type closedErr struct{}

func (*closedErr) Error() string { return "transport closed" }

func fourNodeMembership() membership.Membership {
	nodes := []ids.NodeID{{1}, {2}, {3}, {4}}
	stakes := map[ids.NodeID]uint64{}
	for _, n := range nodes {
		stakes[n] = 1
	}
	return membership.NewStaticTable(stakes)
}

func TestTaskPublishesOnlyFilteredEvents(t *testing.T) {
	transport := newFakeTransport()
	task := New(transport, fourNodeMembership(), daselog.NewNoOpLogger())

	quorumEvents := task.Subscribe(QuorumFilter())
	committeeEvents := task.Subscribe(CommitteeFilter())

	go task.Run()

	transport.inbound <- types.DAVoteMessage{Vote: types.Vote{Kind: types.KindDA}}

	select {
	case e := <-committeeEvents:
		_, ok := e.(DAVoteRecv)
		require.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("expected committee subscriber to receive DAVoteRecv")
	}

	select {
	case e := <-quorumEvents:
		t.Fatalf("quorum subscriber should not see DA events, got %T", e)
	case <-time.After(50 * time.Millisecond):
	}

	task.Stop()
}

func TestTaskForwardsShutdownToEveryFilter(t *testing.T) {
	transport := newFakeTransport()
	task := New(transport, fourNodeMembership(), daselog.NewNoOpLogger())

	quorumEvents := task.Subscribe(QuorumFilter())
	viewSyncEvents := task.Subscribe(ViewSyncFilter())

	go func() {
		close(transport.inbound)
	}()
	task.Run()

	_, ok := (<-quorumEvents).(Shutdown)
	require.True(t, ok)
	_, ok = (<-viewSyncEvents).(Shutdown)
	require.True(t, ok)
}

func TestSendQuorumVoteTargetsNextLeader(t *testing.T) {
	transport := newFakeTransport()
	m := fourNodeMembership()
	task := New(transport, m, daselog.NewNoOpLogger())

	task.SendQuorumVote(types.VoteMessage{}, types.View(1))
	require.Len(t, transport.directTo, 1)
	require.Equal(t, m.Leader(types.View(2)), transport.directTo[0])
}
