// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exchange

import (
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/daseq/crypto"
	"github.com/luxfi/daseq/crypto/threshold"
	"github.com/luxfi/daseq/membership"
	"github.com/luxfi/daseq/types"
)

type committeeFixture struct {
	table *membership.StaticTable
	nodes []ids.NodeID
	keys  map[ids.NodeID]*crypto.Ed25519Key
}

func newCommitteeFixture(t *testing.T) *committeeFixture {
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
	return &committeeFixture{table: table, nodes: nodes, keys: keys}
}

func TestExchangeMakeAndValidateVote(t *testing.T) {
	fx := newCommitteeFixture(t)
	scheme := threshold.ConcatScheme{}
	ex := NewCommittee(fx.nodes[0], fx.keys[fx.nodes[0]], fx.table, scheme)

	blockCommit := types.CommitBytes([]byte("block-1"))
	v, ok, err := ex.MakeVote(types.View(1), blockCommit)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, types.KindDA, v.Kind)
	require.True(t, ex.IsValidVote(v))
}

func TestExchangeRejectsWrongRoleVote(t *testing.T) {
	fx := newCommitteeFixture(t)
	scheme := threshold.ConcatScheme{}
	committee := NewCommittee(fx.nodes[0], fx.keys[fx.nodes[0]], fx.table, scheme)
	quorum := NewQuorumYes(fx.nodes[0], fx.keys[fx.nodes[0]], fx.table, scheme)

	blockCommit := types.CommitBytes([]byte("block-1"))
	daVote, ok, err := committee.MakeVote(types.View(1), blockCommit)
	require.NoError(t, err)
	require.True(t, ok)

	// A DA vote must never validate against the Quorum exchange, even
	// though it carries the same raw commitment (S6: cross-role replay).
	require.False(t, quorum.IsValidVote(daVote))
}

func TestExchangeRejectsVoteWithMismatchedSignerKey(t *testing.T) {
	fx := newCommitteeFixture(t)
	scheme := threshold.ConcatScheme{}
	ex := NewCommittee(fx.nodes[0], fx.keys[fx.nodes[0]], fx.table, scheme)

	blockCommit := types.CommitBytes([]byte("block-1"))

	// A Byzantine replica claims to vote as fx.nodes[0] (a real stakeholder
	// with a valid vote token) but signs with an attacker key never
	// registered to any node. ValidateVoteToken alone can't catch this: it
	// only checks the self-reported vote count against nodes[0]'s stake,
	// which is public information the attacker can copy.
	attackerKey, err := crypto.GenerateEd25519Key()
	require.NoError(t, err)

	v, ok, err := ex.MakeVote(types.View(1), blockCommit)
	require.NoError(t, err)
	require.True(t, ok)

	forged := v
	forged.EncodedKey = attackerKey.PublicKeyBytes()
	voteCommit := forged.VoteData().Commit()
	sig, err := attackerKey.Sign(voteCommit[:])
	require.NoError(t, err)
	forged.Signature = sig

	require.False(t, ex.IsValidVote(forged))
}

func TestExchangeAccumulatesToCertificateAndValidates(t *testing.T) {
	fx := newCommitteeFixture(t)
	scheme := threshold.ConcatScheme{}
	blockCommit := types.CommitBytes([]byte("block-1"))

	var verifier *Exchange
	acc := NewCommittee(fx.nodes[0], fx.keys[fx.nodes[0]], fx.table, scheme).NewAccumulator(types.View(1))

	var cert types.Certificate
	var gotCert bool
	for i, n := range fx.nodes[:3] {
		ex := NewCommittee(n, fx.keys[n], fx.table, scheme)
		if i == 0 {
			verifier = ex
		}
		v, ok, err := ex.MakeVote(types.View(1), blockCommit)
		require.NoError(t, err)
		require.True(t, ok)
		require.True(t, ex.IsValidVote(v))

		c, crossed, err := ex.AccumulateVote(acc, v)
		require.NoError(t, err)
		if crossed {
			cert = c
			gotCert = true
		}
	}
	require.True(t, gotCert)
	require.True(t, verifier.IsValidCert(cert, blockCommit, types.View(1)))
}
