// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nextview

import (
	"testing"
	"time"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	daselog "github.com/luxfi/daseq/log"

	"github.com/luxfi/daseq/crypto"
	"github.com/luxfi/daseq/crypto/threshold"
	"github.com/luxfi/daseq/exchange"
	"github.com/luxfi/daseq/membership"
	"github.com/luxfi/daseq/types"
)

type fakeSender struct{ calledFor *types.View }

func (f *fakeSender) SendNextLeaderTimeout(v types.View) { f.calledFor = &v }

func fourNodeExchange(t *testing.T, idx int) (*exchange.Exchange, []ids.NodeID, map[ids.NodeID]*crypto.Ed25519Key, *membership.StaticTable) {
	t.Helper()
	nodes := []ids.NodeID{{1}, {2}, {3}, {4}}
	stakes := map[ids.NodeID]uint64{}
	keys := map[ids.NodeID]*crypto.Ed25519Key{}
	for _, n := range nodes {
		stakes[n] = 1
		k, err := crypto.GenerateEd25519Key()
		require.NoError(t, err)
		keys[n] = k
	}
	table := membership.NewStaticTable(stakes)
	for _, n := range nodes {
		table.RegisterKey(n, keys[n].PublicKeyBytes())
	}
	ex := exchange.NewQuorumYes(nodes[idx], keys[nodes[idx]], table, threshold.ConcatScheme{})
	return ex, nodes, keys, table
}

func TestCollectorFormsQCOnThreshold(t *testing.T) {
	ex, nodes, keys, table := fourNodeExchange(t, 0)
	logger := daselog.NewNoOpLogger()
	c := New(ex, logger)

	leafCommit := types.CommitBytes([]byte("leaf-1"))
	messages := make(chan types.ConsensusMessage, 4)
	for _, n := range nodes[:3] {
		voterEx := exchange.NewQuorumYes(n, keys[n], table, threshold.ConcatScheme{})
		v, ok, err := voterEx.MakeVote(types.View(2), leafCommit)
		require.NoError(t, err)
		require.True(t, ok)
		messages <- types.VoteMessage{Vote: v}
	}

	interrupt := make(chan struct{})
	qc := c.Run(types.View(2), []types.QuorumCertificate{types.GenesisQC()}, &fakeSender{}, messages, interrupt)

	require.False(t, qc.IsGenesis)
	require.Equal(t, leafCommit, qc.LeafCommitment)
	require.Equal(t, types.View(2), qc.ViewNumber)
}

func TestCollectorReturnsArgmaxQCOnInterrupt(t *testing.T) {
	ex, nodes, keys, table := fourNodeExchange(t, 0)
	logger := daselog.NewNoOpLogger()
	c := New(ex, logger)

	timeoutEx := exchange.NewQuorumTimeout(nodes[2], keys[nodes[2]], table, threshold.ConcatScheme{})
	timeoutVote, ok, err := timeoutEx.MakeVote(types.View(2), types.CommitBytes([]byte("view-2")))
	require.NoError(t, err)
	require.True(t, ok)

	oldQC := types.QuorumCertificate{LeafCommitment: types.CommitBytes([]byte("lc1")), ViewNumber: types.View(1)}

	messages := make(chan types.ConsensusMessage, 1)
	messages <- types.TimeoutVoteMessage{Vote: types.TimeoutVote{Vote: timeoutVote, JustifyQC: oldQC}}

	interrupt := make(chan struct{})
	sender := &fakeSender{}

	// Drain the timeout vote, then interrupt.
	done := make(chan types.QuorumCertificate)
	go func() {
		done <- c.Run(types.View(2), []types.QuorumCertificate{types.GenesisQC()}, sender, messages, interrupt)
	}()

	// give Run a beat to drain the single queued message before interrupting
	time.Sleep(10 * time.Millisecond)
	close(interrupt)
	qc := <-done

	require.Equal(t, oldQC.ViewNumber, qc.ViewNumber)
	require.NotNil(t, sender.calledFor)
	require.Equal(t, types.View(2), *sender.calledFor)
}
