// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validConfig() ReplicaConfig {
	cfg := Default()
	cfg.NodeID = "node-a"
	cfg.Committee = []StakeEntry{
		{Name: "node-a", Stake: 1},
		{Name: "node-b", Stake: 1},
		{Name: "node-c", Stake: 1},
		{Name: "node-d", Stake: 1},
	}
	return cfg
}

func TestReplicaConfigValid(t *testing.T) {
	require.NoError(t, validConfig().Valid())
}

func TestReplicaConfigRejectsNodeOutsideCommittee(t *testing.T) {
	cfg := validConfig()
	cfg.NodeID = "stranger"
	require.ErrorIs(t, cfg.Valid(), ErrNodeNotInCommittee)
}

func TestReplicaConfigRejectsViewTimeoutBelowRoundTime(t *testing.T) {
	cfg := validConfig()
	cfg.ViewTimeout = cfg.ProposeMaxRoundTime - time.Millisecond
	require.ErrorIs(t, cfg.Valid(), ErrViewTimeoutTooLow)
}

func TestReplicaConfigRejectsZeroStake(t *testing.T) {
	cfg := validConfig()
	cfg.Committee[0].Stake = 0
	require.ErrorIs(t, cfg.Valid(), ErrZeroStake)
}
