// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config is the typed, YAML-driven ReplicaConfig the demo binary
// and tests load a replica from (ambient concern A3; the spec treats
// configuration loading as an external collaborator).
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ReplicaConfig bundles everything needed to stand up one replica:
// committee composition, the per-view timing budget, and network binding.
type ReplicaConfig struct {
	NodeID string `yaml:"nodeID"`

	// Committee lists every replica's (name, stake) pair. Names are
	// resolved to ids.NodeID by the caller at wiring time.
	Committee []StakeEntry `yaml:"committee"`

	// MinTransactions is the DA leader's minimum batch size before it
	// will propose early (spec §4.6 step 3).
	MinTransactions int `yaml:"minTransactions"`

	// ProposeMaxRoundTime bounds how long the DA leader waits for
	// MinTransactions before proposing with whatever it has.
	ProposeMaxRoundTime time.Duration `yaml:"proposeMaxRoundTime"`

	// ViewTimeout is the per-view time budget; Valid requires it to exceed
	// ProposeMaxRoundTime. No component in this module reads it to fire
	// NextViewInterrupt: leader tasks receive the interrupt as a channel
	// that their caller closes.
	ViewTimeout time.Duration `yaml:"viewTimeout"`

	ListenAddress string `yaml:"listenAddress"`
}

// StakeEntry binds a committee member's name to its voting weight.
type StakeEntry struct {
	Name  string `yaml:"name"`
	Stake uint64 `yaml:"stake"`
}

// Default returns the timing and listen-address defaults for local
// development. NodeID and Committee are left empty, so the caller must set
// them before Valid succeeds.
func Default() ReplicaConfig {
	return ReplicaConfig{
		MinTransactions:     1,
		ProposeMaxRoundTime: 2 * time.Second,
		ViewTimeout:         5 * time.Second,
		ListenAddress:       "127.0.0.1:0",
	}
}

// Load reads and parses a ReplicaConfig from a YAML file, validating it
// before returning.
func Load(path string) (ReplicaConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ReplicaConfig{}, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ReplicaConfig{}, err
	}
	if err := cfg.Valid(); err != nil {
		return ReplicaConfig{}, err
	}
	return cfg, nil
}

// Valid checks the BFT arithmetic and timing invariants a ReplicaConfig
// must satisfy before a replica can start.
func (c ReplicaConfig) Valid() error {
	if c.NodeID == "" {
		return ErrMissingNodeID
	}
	if len(c.Committee) == 0 {
		return ErrEmptyCommittee
	}
	found := false
	var total uint64
	for _, entry := range c.Committee {
		if entry.Stake == 0 {
			return ErrZeroStake
		}
		total += entry.Stake
		if entry.Name == c.NodeID {
			found = true
		}
	}
	if !found {
		return ErrNodeNotInCommittee
	}
	if c.MinTransactions < 0 {
		return ErrInvalidMinTransactions
	}
	if c.ProposeMaxRoundTime <= 0 {
		return ErrInvalidRoundTime
	}
	if c.ViewTimeout <= c.ProposeMaxRoundTime {
		return ErrViewTimeoutTooLow
	}
	return nil
}
