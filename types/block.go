// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"sort"

	"github.com/luxfi/ids"
)

// Block is a set of transactions with a content-addressed commitment.
// Implementations are expected to be immutable: AddTransactionRaw returns a
// new Block rather than mutating the receiver, matching the spec's
// block.add_transaction_raw(tx) -> Result<B> contract.
type Block interface {
	// Commit returns the fixed-size commitment of this block.
	Commit() Commitment

	// ContainedTransactions returns the set of transaction hashes this
	// block carries, used by the DA leader to avoid re-proposing them.
	ContainedTransactions() map[ids.ID]struct{}

	// AddTransactionRaw returns a new Block with txn appended, or an error
	// if txn cannot be packed (e.g. it duplicates one already contained).
	AddTransactionRaw(txn Transaction) (Block, error)
}

// SimpleBlock is the reference Block implementation: an ordered set of
// transactions, commitment is the hash of their sorted hashes.
type SimpleBlock struct {
	Txns []Transaction
}

var _ Block = (*SimpleBlock)(nil)

// NextBlock returns an empty block builder, matching state.next_block().
func NextBlock() *SimpleBlock {
	return &SimpleBlock{}
}

func (b *SimpleBlock) Commit() Commitment {
	hashes := make([]ids.ID, 0, len(b.Txns))
	for _, t := range b.Txns {
		hashes = append(hashes, t.Hash)
	}
	sort.Slice(hashes, func(i, j int) bool {
		return lessID(hashes[i], hashes[j])
	})
	buf := make([]byte, 0, len(hashes)*32)
	for _, h := range hashes {
		buf = append(buf, h[:]...)
	}
	return CommitBytes(buf)
}

func (b *SimpleBlock) ContainedTransactions() map[ids.ID]struct{} {
	out := make(map[ids.ID]struct{}, len(b.Txns))
	for _, t := range b.Txns {
		out[t.Hash] = struct{}{}
	}
	return out
}

func (b *SimpleBlock) AddTransactionRaw(txn Transaction) (Block, error) {
	for _, t := range b.Txns {
		if t.Hash == txn.Hash {
			return nil, ErrDuplicateTransaction
		}
	}
	next := &SimpleBlock{
		Txns: make([]Transaction, len(b.Txns), len(b.Txns)+1),
	}
	copy(next.Txns, b.Txns)
	next.Txns = append(next.Txns, txn)
	return next, nil
}

func lessID(a, b ids.ID) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
