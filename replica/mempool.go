// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package replica

import (
	"sync"

	"github.com/luxfi/ids"

	"github.com/luxfi/daseq/types"
)

// Mempool is a mapping from transaction hash to transaction with an
// edge-triggered change-notification primitive (spec §5, "Mempool:
// concurrent readers via snapshot (cloned), writers via transactional
// insert; change-notification is edge-triggered and may coalesce").
type Mempool struct {
	mu      sync.RWMutex
	pending map[ids.ID]types.Transaction
	signal  chan struct{}
}

// NewMempool returns an empty mempool.
func NewMempool() *Mempool {
	return &Mempool{
		pending: make(map[ids.ID]types.Transaction),
		signal:  make(chan struct{}),
	}
}

// Submit inserts txn if its hash is not already present. It returns false
// if the transaction was already pending, in which case no notification
// fires.
func (m *Mempool) Submit(txn types.Transaction) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.pending[txn.Hash]; exists {
		return false
	}
	m.pending[txn.Hash] = txn
	close(m.signal)
	m.signal = make(chan struct{})
	return true
}

// Snapshot returns a point-in-time copy of every pending transaction,
// matching the spec's "concurrent readers via snapshot (cloned)".
func (m *Mempool) Snapshot() map[ids.ID]types.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[ids.ID]types.Transaction, len(m.pending))
	for h, t := range m.pending {
		out[h] = t
	}
	return out
}

// Changed returns a channel that closes the next time Submit succeeds.
// Because the signal channel is edge-triggered and replaced on every fire,
// multiple submissions between two Changed() calls coalesce into one wakeup
// -- exactly the semantics §4.6 step 3's wait loop requires.
func (m *Mempool) Changed() <-chan struct{} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.signal
}
