// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"sort"

	"github.com/luxfi/ids"
)

// State is the replicated application state threaded through the leaf
// chain. The core never inspects State's contents; it only calls
// ValidateBlock and Append on the caller's behalf.
type State interface {
	// ValidateBlock reports whether applying block at view would be a
	// legal state transition from this state.
	ValidateBlock(b Block, view View) bool

	// Append returns the state resulting from applying block at view, or
	// an error if the transition is illegal.
	Append(b Block, view View) (State, error)

	// Commit returns this state's content-addressed commitment, used when
	// a leaf stores only a StateCommitment rather than the materialized
	// State (see Leaf.State).
	Commit() Commitment
}

// MapState is a reference State: a flat set of applied transaction hashes.
// It accepts any block whose transactions are not already applied, which is
// enough to drive the leader/accumulator/leaf pipeline in tests without
// pulling in a real execution engine.
type MapState struct {
	applied map[ids.ID]struct{}
}

var _ State = (*MapState)(nil)

// NewMapState returns an empty MapState, i.e. the genesis application state.
func NewMapState() *MapState {
	return &MapState{applied: make(map[ids.ID]struct{})}
}

func (s *MapState) ValidateBlock(b Block, _ View) bool {
	for hash := range b.ContainedTransactions() {
		if _, ok := s.applied[hash]; ok {
			return false
		}
	}
	return true
}

func (s *MapState) Append(b Block, view View) (State, error) {
	if !s.ValidateBlock(b, view) {
		return nil, ErrInvalidBlock
	}
	next := &MapState{applied: make(map[ids.ID]struct{}, len(s.applied))}
	for h := range s.applied {
		next.applied[h] = struct{}{}
	}
	for h := range b.ContainedTransactions() {
		next.applied[h] = struct{}{}
	}
	return next, nil
}

func (s *MapState) Commit() Commitment {
	hashes := make([]ids.ID, 0, len(s.applied))
	for h := range s.applied {
		hashes = append(hashes, h)
	}
	sort.Slice(hashes, func(i, j int) bool { return lessID(hashes[i], hashes[j]) })
	buf := make([]byte, 0, len(hashes)*32)
	for _, h := range hashes {
		buf = append(buf, h[:]...)
	}
	return CommitBytes(buf)
}
