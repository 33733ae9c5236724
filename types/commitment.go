// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Commitment is a fixed-size, content-addressed digest of something that
// was voted on or chained to: a block, a leaf, or a vote-data tag.
type Commitment [32]byte

// Empty is the zero commitment, used for the genesis leaf's fake parent.
var Empty Commitment

func (c Commitment) String() string {
	return hex.EncodeToString(c[:])
}

func (c Commitment) IsZero() bool {
	return c == Empty
}

// CommitBytes hashes an arbitrary byte slice into a Commitment. Collaborators
// producing Block/Leaf/State commitments use this as their building block so
// that every commitment in the system has the same shape.
func CommitBytes(b []byte) Commitment {
	return sha256.Sum256(b)
}

// domain-separation tags, verbatim from the wire spec (ASCII, concatenated
// as a prefix to the commitment input before hashing). Never reuse a tag
// across vote kinds: that is the entire point of domain separation.
const (
	tagDA                = "DA Block Commit"
	tagYes               = "Yes Vote Commit"
	tagNo                = "No Vote Commit"
	tagTimeout           = "Timeout View Number Commit"
	tagViewSyncPreCommit = "ViewSyncPreCommit"
	tagViewSyncCommit    = "ViewSyncCommit"
	tagViewSyncFinalize  = "ViewSyncFinalize"
	tagQuorumCert        = "Quorum Certificate Commitment"
	tagViewSyncCert      = "View Sync Certificate Commitment"
)

// taggedCommit computes H(tag ++ payload), the commit rule used by
// VoteData. QuorumCertificate.CommitForHashing builds its own tag-prefixed
// input and hashes it with CommitBytes.
func taggedCommit(tag string, payload []byte) Commitment {
	h := sha256.New()
	h.Write([]byte(tag))
	h.Write(payload)
	var out Commitment
	copy(out[:], h.Sum(nil))
	return out
}

func appendViewBE(dst []byte, v View) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	return append(dst, buf[:]...)
}
