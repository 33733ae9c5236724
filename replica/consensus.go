// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package replica holds the per-node Consensus state (C6): the view map,
// saved leaves, the mempool, and the highest QC observed. Leader tasks
// (package leader/...) take read access against it to resolve parents; the
// commit path that writes it is intentionally left to the caller, per spec
// §5's many-reader/single-writer model.
package replica

import (
	"sort"
	"sync"

	"github.com/luxfi/daseq/types"
)

// ViewStatus tags what happened to a view, once known.
type ViewStatus int

const (
	// ViewUnknown: no entry yet, i.e. the view hasn't committed or failed.
	ViewUnknown ViewStatus = iota
	ViewCommitted
	ViewFailed
)

// ViewInner is state_map's value type: Leaf{commitment} | Failed.
type ViewInner struct {
	Status     ViewStatus
	Commitment types.Commitment
}

// Consensus is the per-node replicated state the spec's §3 "Consensus
// state (C6)" describes. Entries are append-only per view: once a view's
// ViewInner is set, it is never rewritten (invariant #3, spec §8).
type Consensus struct {
	mu          sync.RWMutex
	stateMap    map[types.View]ViewInner
	savedLeaves map[types.Commitment]*types.Leaf
	highQC      types.QuorumCertificate
	Mempool     *Mempool
}

// NewConsensus returns Consensus state seeded with the genesis leaf.
func NewConsensus(genesis *types.Leaf) *Consensus {
	c := &Consensus{
		stateMap:    make(map[types.View]ViewInner),
		savedLeaves: make(map[types.Commitment]*types.Leaf),
		highQC:      types.GenesisQC(),
		Mempool:     NewMempool(),
	}
	commitment := genesis.Commit()
	c.savedLeaves[commitment] = genesis
	c.stateMap[types.GenesisView] = ViewInner{Status: ViewCommitted, Commitment: commitment}
	return c
}

// HighQC returns the highest QC this replica has observed.
func (c *Consensus) HighQC() types.QuorumCertificate {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.highQC
}

// AdvanceHighQC replaces high_qc if candidate is for a strictly later view,
// never moving it backwards.
func (c *Consensus) AdvanceHighQC(candidate types.QuorumCertificate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if candidate.ViewNumber > c.highQC.ViewNumber {
		c.highQC = candidate
	}
}

// ViewInner returns the recorded outcome of v, or ViewUnknown if v has
// neither committed nor failed.
func (c *Consensus) ViewInner(v types.View) ViewInner {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stateMap[v]
}

// CommitView records that v committed leaf commitment. If v already has an
// entry (committed or failed), the call is ignored, so an entry is never
// rewritten (invariant #3).
func (c *Consensus) CommitView(v types.View, commitment types.Commitment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.stateMap[v]; exists {
		return
	}
	c.stateMap[v] = ViewInner{Status: ViewCommitted, Commitment: commitment}
}

// FailView records that v timed out without committing a leaf.
func (c *Consensus) FailView(v types.View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.stateMap[v]; exists {
		return
	}
	c.stateMap[v] = ViewInner{Status: ViewFailed}
}

// SaveLeaf inserts leaf into saved_leaves, keyed by its own commitment.
func (c *Consensus) SaveLeaf(leaf *types.Leaf) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.savedLeaves[leaf.Commit()] = leaf
}

// GetLeaf looks up a leaf by commitment.
func (c *Consensus) GetLeaf(commitment types.Commitment) (*types.Leaf, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	leaf, ok := c.savedLeaves[commitment]
	return leaf, ok
}

// ResolveParent implements §4.6 step 1 / §4.7 step 1: look up
// high_qc.view_number in state_map, require Leaf{c}, then resolve
// saved_leaves[c]. Returns ErrParentMissing on a Failed or missing entry.
func (c *Consensus) ResolveParent() (*types.Leaf, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	inner, ok := c.stateMap[c.highQC.ViewNumber]
	if !ok || inner.Status != ViewCommitted {
		return nil, ErrParentMissing
	}
	parent, ok := c.savedLeaves[inner.Commitment]
	if !ok {
		return nil, ErrParentMissing
	}
	return parent, nil
}

// SortedViews returns every recorded view in ascending order, for
// diagnostics and pruning sweeps. state_map is specified as an ordered
// mapping; Go maps don't preserve order, so callers that need ordered
// traversal go through here rather than ranging stateMap directly.
func (c *Consensus) SortedViews() []types.View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	views := make([]types.View, 0, len(c.stateMap))
	for v := range c.stateMap {
		views = append(views, v)
	}
	sort.Slice(views, func(i, j int) bool { return views[i] < views[j] })
	return views
}
