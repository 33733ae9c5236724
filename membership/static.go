// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package membership

import (
	"sync"

	"github.com/luxfi/ids"

	"github.com/luxfi/daseq/types"
)

// StaticTable is a fixed committee with fixed stake weights, round-robin
// leader rotation by view. It is deterministic and has no notion of
// validator churn, which keeps it simple enough to reason about in tests
// while still exercising every Membership method real implementations need.
type StaticTable struct {
	mu        sync.RWMutex
	nodes     []ids.NodeID
	stake     map[ids.NodeID]uint64
	pubkeys   map[ids.NodeID][]byte
	total     uint64
	success   uint64
	failure   uint64
	mintedFor map[ids.NodeID]map[types.View]struct{}
}

var _ Membership = (*StaticTable)(nil)

// NewStaticTable builds a committee from (node, stake) pairs, skipping
// zero-stake nodes. The success and failure thresholds are derived from the
// total stake so that success > 2/3*total and failure = total-success+1.
func NewStaticTable(stakes map[ids.NodeID]uint64) *StaticTable {
	t := &StaticTable{
		stake:     make(map[ids.NodeID]uint64, len(stakes)),
		pubkeys:   make(map[ids.NodeID][]byte, len(stakes)),
		mintedFor: make(map[ids.NodeID]map[types.View]struct{}),
	}
	for node, stake := range stakes {
		if stake == 0 {
			continue
		}
		t.nodes = append(t.nodes, node)
		t.stake[node] = stake
		t.total += stake
	}
	// Sort for determinism: map iteration order above is random, but leader
	// rotation must be identical on every replica.
	sortNodeIDs(t.nodes)

	t.success = (2*t.total)/3 + 1 // smallest integer strictly greater than 2/3*total
	t.failure = t.total - t.success + 1
	return t
}

func sortNodeIDs(nodes []ids.NodeID) {
	for i := 1; i < len(nodes); i++ {
		for j := i; j > 0 && lessNodeID(nodes[j], nodes[j-1]); j-- {
			nodes[j], nodes[j-1] = nodes[j-1], nodes[j]
		}
	}
}

func lessNodeID(a, b ids.NodeID) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func (t *StaticTable) Leader(v types.View) ids.NodeID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.nodes) == 0 {
		return ids.NodeID{}
	}
	return t.nodes[uint64(v)%uint64(len(t.nodes))]
}

func (t *StaticTable) Committee(v types.View) []ids.NodeID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_ = v // membership is static: every view shares the same committee
	out := make([]ids.NodeID, len(t.nodes))
	copy(out, t.nodes)
	return out
}

func (t *StaticTable) MakeVoteToken(v types.View, nodeID ids.NodeID) (types.VoteToken, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	stake, ok := t.stake[nodeID]
	if !ok || stake == 0 {
		return nil, false
	}
	if _, ok := t.mintedFor[nodeID]; !ok {
		t.mintedFor[nodeID] = make(map[types.View]struct{})
	}
	t.mintedFor[nodeID][v] = struct{}{}
	return types.StaticVoteToken{Weight: stake}, true
}

func (t *StaticTable) ValidateVoteToken(nodeID ids.NodeID, token types.VoteToken) Checked {
	t.mu.RLock()
	defer t.mu.RUnlock()
	stake, ok := t.stake[nodeID]
	if !ok {
		return Invalid
	}
	if token == nil || token.VoteCount() == 0 || token.VoteCount() != stake {
		return Invalid
	}
	return Valid
}

func (t *StaticTable) SuccessThreshold() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.success
}

func (t *StaticTable) FailureThreshold() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.failure
}

func (t *StaticTable) StakeOf(nodeID ids.NodeID) (uint64, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	stake, ok := t.stake[nodeID]
	return stake, ok
}

// RegisterKey binds nodeID's encoded signature public key, so verifiers
// can later recover a crypto.PublicParameter from this committee via
// PublicKeyOf. A node with stake but no registered key is excluded from
// the stake table a verifier builds.
func (t *StaticTable) RegisterKey(nodeID ids.NodeID, encodedKey []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pubkeys[nodeID] = encodedKey
}

func (t *StaticTable) PublicKeyOf(nodeID ids.NodeID) ([]byte, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	key, ok := t.pubkeys[nodeID]
	return key, ok
}
