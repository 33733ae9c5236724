// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package replica

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/daseq/types"
)

func TestConsensusResolveParentAtGenesis(t *testing.T) {
	genesis := types.GenesisLeaf(types.NewMapState())
	c := NewConsensus(genesis)

	parent, err := c.ResolveParent()
	require.NoError(t, err)
	require.Equal(t, genesis.Commit(), parent.Commit())
}

func TestConsensusResolveParentMissing(t *testing.T) {
	genesis := types.GenesisLeaf(types.NewMapState())
	c := NewConsensus(genesis)
	c.AdvanceHighQC(types.QuorumCertificate{ViewNumber: types.View(5), LeafCommitment: types.CommitBytes([]byte("nope"))})

	_, err := c.ResolveParent()
	require.ErrorIs(t, err, ErrParentMissing)
}

func TestConsensusViewIsImmutableOnceSet(t *testing.T) {
	genesis := types.GenesisLeaf(types.NewMapState())
	c := NewConsensus(genesis)

	c.FailView(types.View(1))
	require.Equal(t, ViewFailed, c.ViewInner(types.View(1)).Status)

	// a later attempt to commit the same view must not overwrite it
	c.CommitView(types.View(1), types.CommitBytes([]byte("late")))
	require.Equal(t, ViewFailed, c.ViewInner(types.View(1)).Status)
}

func TestMempoolChangedCoalescesSubmissions(t *testing.T) {
	m := NewMempool()
	changed := m.Changed()

	m.Submit(types.NewTransaction([]byte("t1")))
	m.Submit(types.NewTransaction([]byte("t2")))

	select {
	case <-changed:
	default:
		t.Fatal("expected Changed() channel to have fired after two submissions")
	}

	snap := m.Snapshot()
	require.Len(t, snap, 2)
}
