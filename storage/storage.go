// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package storage is the Storage collaborator interface from spec §6:
// on-disk persistence for leaves and blocks is explicitly out of scope for
// the core, which only depends on this narrow save/get contract.
package storage

import (
	"sync"

	"github.com/luxfi/daseq/types"
)

// Storage persists leaves and blocks. The core treats it as a
// many-reader/single-writer collaborator: leader tasks look up parents,
// the commit path (not part of this core) is the sole writer.
type Storage interface {
	SaveLeaf(leaf *types.Leaf) error
	GetLeaf(commitment types.Commitment) (*types.Leaf, bool)
	SaveBlock(block types.Block) error
}

// Memory is the reference in-process Storage, used by tests and the
// cmd/replica demo in place of a real embedded database.
type Memory struct {
	mu     sync.RWMutex
	leaves map[types.Commitment]*types.Leaf
	blocks map[types.Commitment]types.Block
}

var _ Storage = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		leaves: make(map[types.Commitment]*types.Leaf),
		blocks: make(map[types.Commitment]types.Block),
	}
}

func (m *Memory) SaveLeaf(leaf *types.Leaf) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaves[leaf.Commit()] = leaf
	return nil
}

func (m *Memory) GetLeaf(commitment types.Commitment) (*types.Leaf, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	leaf, ok := m.leaves[commitment]
	return leaf, ok
}

func (m *Memory) SaveBlock(block types.Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocks[block.Commit()] = block
	return nil
}
