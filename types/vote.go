// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import "github.com/luxfi/ids"

// VoteToken is an authenticated credential proving a replica's voting
// weight for a given view. A node with zero seats in a view has no token.
type VoteToken interface {
	// VoteCount is the stake weight this token carries; it is always >= 1
	// for a token that exists at all.
	VoteCount() uint64
}

// StaticVoteToken is the reference VoteToken: a plain integer weight minted
// by membership.StaticTable.MakeVoteToken.
type StaticVoteToken struct {
	Weight uint64
}

func (t StaticVoteToken) VoteCount() uint64 { return t.Weight }

// Vote is a single signed ballot: the commitment voted on (via VoteData),
// the signer's encoded key and signature over VoteData.Commit(), and the
// vote token proving the signer's eligibility and weight.
type Vote struct {
	Kind       VoteKind
	Commitment Commitment
	EncodedKey []byte
	Signature  []byte
	Token      VoteToken
	View       View
	Signer     ids.NodeID
}

// VoteData is the tagged commitment this vote's Signature was produced over.
func (v Vote) VoteData() VoteData {
	return VoteData{Kind: v.Kind, Commitment: v.Commitment}
}

// TimeoutVote additionally carries the justify_qc the signer is revealing,
// so the next leader can recover the best known high_qc if the view fails.
type TimeoutVote struct {
	Vote
	JustifyQC QuorumCertificate
}
