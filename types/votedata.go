// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

// VoteKind tags which phase of which exchange a vote, certificate, or
// assembled signature belongs to. Every signer and verifier signs/verifies
// the VoteData commitment derived from (kind, commitment) -- never the bare
// leaf or block commitment -- so a signature minted for one kind can never
// be replayed as a different kind. See Vote.VoteData and AssembledSignature.
type VoteKind uint8

const (
	KindDA VoteKind = iota
	KindYes
	KindNo
	KindTimeout
	KindViewSyncPreCommit
	KindViewSyncCommit
	KindViewSyncFinalize
)

func (k VoteKind) tag() string {
	switch k {
	case KindDA:
		return tagDA
	case KindYes:
		return tagYes
	case KindNo:
		return tagNo
	case KindTimeout:
		return tagTimeout
	case KindViewSyncPreCommit:
		return tagViewSyncPreCommit
	case KindViewSyncCommit:
		return tagViewSyncCommit
	case KindViewSyncFinalize:
		return tagViewSyncFinalize
	default:
		return "UNKNOWN"
	}
}

func (k VoteKind) String() string {
	return k.tag()
}

// VoteData is the canonical "what was voted on": a tagged commitment.
// Two VoteData values with the same Commitment but different Kind commit to
// different bytes and can never collide under Commit().
type VoteData struct {
	Kind       VoteKind
	Commitment Commitment
}

// Commit computes H(tag(kind) ++ commitment), the single quantity every
// signature in the system is actually produced and verified over.
func (d VoteData) Commit() Commitment {
	return taggedCommit(d.Kind.tag(), d.Commitment[:])
}
