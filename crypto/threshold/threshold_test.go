// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package threshold

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/daseq/crypto"
)

func TestConcatSchemeAggregateVerify(t *testing.T) {
	require := require.New(t)
	msg := []byte("block-commitment")

	keys := make([]*crypto.Ed25519Key, 4)
	table := make([]crypto.StakeTableEntry, 4)
	entries := make([][]byte, 0, 4)
	for i := range keys {
		k, err := crypto.GenerateEd25519Key()
		require.NoError(err)
		keys[i] = k
		table[i] = crypto.StakeTableEntry{PublicKey: k.PublicKeyBytes(), Stake: 1}

		sig, err := k.Sign(msg)
		require.NoError(err)
		entries = append(entries, crypto.PackEntry(k.PublicKeyBytes(), sig))
	}

	scheme := ConcatScheme{}
	agg, err := scheme.Aggregate(entries[:3])
	require.NoError(err)

	param := crypto.PublicParameter{StakeTable: table, Threshold: 3}
	require.True(scheme.VerifyAggregate(msg, agg, param))

	// Two signers is below threshold.
	short, err := scheme.Aggregate(entries[:2])
	require.NoError(err)
	require.False(scheme.VerifyAggregate(msg, short, param))

	// A duplicated entry must not let the same signer count twice.
	dup, err := scheme.Aggregate([][]byte{entries[0], entries[0], entries[1]})
	require.NoError(err)
	require.False(scheme.VerifyAggregate(msg, dup, param))
}
