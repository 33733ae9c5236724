// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vote

import (
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/daseq/crypto"
	"github.com/luxfi/daseq/crypto/threshold"
	"github.com/luxfi/daseq/types"
)

type votingNode struct {
	id  ids.NodeID
	key *crypto.Ed25519Key
}

func fourVotingNodes(t *testing.T) []votingNode {
	t.Helper()
	nodes := make([]votingNode, 4)
	for i := range nodes {
		k, err := crypto.GenerateEd25519Key()
		require.NoError(t, err)
		nodes[i] = votingNode{id: ids.NodeID{byte(i + 1)}, key: k}
	}
	return nodes
}

func stakeLookupOf(nodes []votingNode) StakeLookup {
	return func(n ids.NodeID) (uint64, bool) {
		for _, v := range nodes {
			if v.id == n {
				return 1, true
			}
		}
		return 0, false
	}
}

func TestAccumulatorEmitsCertificateAtThreshold(t *testing.T) {
	nodes := fourVotingNodes(t)
	acc := New(types.SigYes, types.View(1), 3, stakeLookupOf(nodes), threshold.ConcatScheme{})

	commitment := types.CommitBytes([]byte("leaf-commitment"))

	for i := 0; i < 2; i++ {
		sig, err := nodes[i].key.Sign(commitment[:])
		require.NoError(t, err)
		_, ok, err := acc.Append(commitment, nodes[i].id, nodes[i].key.PublicKeyBytes(), sig, 1)
		require.NoError(t, err)
		require.False(t, ok, "threshold 3 must not be reached by 2 votes")
	}

	sig, err := nodes[2].key.Sign(commitment[:])
	require.NoError(t, err)
	cert, ok, err := acc.Append(commitment, nodes[2].id, nodes[2].key.PublicKeyBytes(), sig, 1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, types.View(1), cert.ViewNumber)
	require.Equal(t, commitment, cert.Commitment)
	require.Equal(t, types.SigYes, cert.Signatures.Kind)

	param := crypto.PublicParameter{
		Threshold: 3,
		StakeTable: []crypto.StakeTableEntry{
			{PublicKey: nodes[0].key.PublicKeyBytes(), Stake: 1},
			{PublicKey: nodes[1].key.PublicKeyBytes(), Stake: 1},
			{PublicKey: nodes[2].key.PublicKeyBytes(), Stake: 1},
			{PublicKey: nodes[3].key.PublicKeyBytes(), Stake: 1},
		},
	}
	require.True(t, threshold.ConcatScheme{}.VerifyAggregate(commitment[:], cert.Signatures.Bytes, param))
}

func TestAccumulatorRejectsUnknownSigner(t *testing.T) {
	nodes := fourVotingNodes(t)
	acc := New(types.SigYes, types.View(1), 3, stakeLookupOf(nodes), threshold.ConcatScheme{})
	commitment := types.CommitBytes([]byte("leaf-commitment"))

	stranger := ids.NodeID{9, 9}
	strangerKey, err := crypto.GenerateEd25519Key()
	require.NoError(t, err)
	sig, err := strangerKey.Sign(commitment[:])
	require.NoError(t, err)

	_, ok, err := acc.Append(commitment, stranger, strangerKey.PublicKeyBytes(), sig, 1)
	require.ErrorIs(t, err, ErrUnknownSigner)
	require.False(t, ok)
}

func TestAccumulatorRejectsDuplicateVote(t *testing.T) {
	nodes := fourVotingNodes(t)
	acc := New(types.SigYes, types.View(1), 3, stakeLookupOf(nodes), threshold.ConcatScheme{})
	commitment := types.CommitBytes([]byte("leaf-commitment"))

	sig, err := nodes[0].key.Sign(commitment[:])
	require.NoError(t, err)
	_, _, err = acc.Append(commitment, nodes[0].id, nodes[0].key.PublicKeyBytes(), sig, 1)
	require.NoError(t, err)

	_, _, err = acc.Append(commitment, nodes[0].id, nodes[0].key.PublicKeyBytes(), sig, 1)
	require.ErrorIs(t, err, ErrDuplicateVote)
}

func TestAccumulatorAttemptsCountsRejectedDuplicates(t *testing.T) {
	nodes := fourVotingNodes(t)
	acc := New(types.SigYes, types.View(1), 3, stakeLookupOf(nodes), threshold.ConcatScheme{})
	commitment := types.CommitBytes([]byte("leaf-commitment"))

	sig, err := nodes[0].key.Sign(commitment[:])
	require.NoError(t, err)
	_, _, err = acc.Append(commitment, nodes[0].id, nodes[0].key.PublicKeyBytes(), sig, 1)
	require.NoError(t, err)
	_, _, err = acc.Append(commitment, nodes[0].id, nodes[0].key.PublicKeyBytes(), sig, 1)
	require.ErrorIs(t, err, ErrDuplicateVote)

	require.Equal(t, 2, acc.Attempts(nodes[0].id))
	require.Equal(t, 0, acc.Attempts(nodes[1].id))
}

func TestAccumulatorKeepsEquivocatingCommitmentsSeparate(t *testing.T) {
	nodes := fourVotingNodes(t)
	acc := New(types.SigYes, types.View(1), 3, stakeLookupOf(nodes), threshold.ConcatScheme{})

	commitA := types.CommitBytes([]byte("leaf-a"))
	commitB := types.CommitBytes([]byte("leaf-b"))

	sigA, err := nodes[0].key.Sign(commitA[:])
	require.NoError(t, err)
	_, ok, err := acc.Append(commitA, nodes[0].id, nodes[0].key.PublicKeyBytes(), sigA, 1)
	require.NoError(t, err)
	require.False(t, ok)

	sigB, err := nodes[1].key.Sign(commitB[:])
	require.NoError(t, err)
	_, ok, err = acc.Append(commitB, nodes[1].id, nodes[1].key.PublicKeyBytes(), sigB, 1)
	require.NoError(t, err)
	require.False(t, ok)

	require.EqualValues(t, 1, acc.Stake(commitA))
	require.EqualValues(t, 1, acc.Stake(commitB))
}
