// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import "fmt"

// SigKind tags which AssembledSignature variant a certificate carries.
// Verification must reject a certificate whose Kind doesn't match the
// expected role: a Quorum verifier rejects ViewSync* variants, and so on.
type SigKind uint8

const (
	SigYes SigKind = iota
	SigNo
	SigDA
	SigTimeout
	SigViewSyncPreCommit
	SigViewSyncCommit
	SigViewSyncFinalize
	SigGenesis
)

// AssembledSignature is an opaque aggregate of per-voter signatures,
// verifiable against a weighted stake table. The core never combines
// signatures of different Kinds, and never interprets Bytes itself: that is
// the job of the pluggable aggregation scheme, crypto.Scheme.
type AssembledSignature struct {
	Kind  SigKind
	Bytes []byte
}

// Certificate is the common shape of a DA, Timeout, or ViewSync certificate:
// a view, the commitment that was certified, and the assembled signature.
type Certificate struct {
	ViewNumber View
	Commitment Commitment
	Signatures AssembledSignature
}

func (c Certificate) String() string {
	return fmt.Sprintf("cert(view=%d, kind=%d, commitment=%s)", c.ViewNumber, c.Signatures.Kind, c.Commitment)
}

// DACertificate proves a quorum of the DA committee will make a block
// available. It is a Certificate over the block commitment with Kind SigDA.
type DACertificate = Certificate

// TimeoutCertificate proves a quorum of replicas gave up on a view. It is a
// Certificate over H(view) with Kind SigTimeout.
type TimeoutCertificate = Certificate

// ViewSyncPhase distinguishes the three view-sync certificate phases.
type ViewSyncPhase uint8

const (
	ViewSyncPreCommit ViewSyncPhase = iota
	ViewSyncCommitPhase
	ViewSyncFinalize
)

// ViewSyncCertificate proves a quorum of replicas agreed to synchronize on
// round at the given relay, for one of the three view-sync phases.
type ViewSyncCertificate struct {
	Phase      ViewSyncPhase
	Relay      uint64
	Round      View
	Signatures AssembledSignature
}

// QuorumCertificate proves a quorum of replicas accepted a leaf. Unlike
// DACertificate/TimeoutCertificate it carries IsGenesis, since the genesis
// leaf's QC never actually collects signatures.
type QuorumCertificate struct {
	LeafCommitment Commitment
	ViewNumber     View
	Signatures     AssembledSignature
	IsGenesis      bool
}

func (qc QuorumCertificate) String() string {
	return fmt.Sprintf("view: %d, is_genesis: %t", qc.ViewNumber, qc.IsGenesis)
}

// GenesisQC returns the QC every genesis leaf carries: no signers, marked
// IsGenesis, valid by definition only at GenesisView.
func GenesisQC() QuorumCertificate {
	return QuorumCertificate{
		LeafCommitment: Empty,
		ViewNumber:     GenesisView,
		Signatures:     AssembledSignature{Kind: SigGenesis},
		IsGenesis:      true,
	}
}

// CommitForHashing serializes a QC the way the wire spec requires for
// hashing it into a further commitment:
//
//	H("Quorum Certificate Commitment" ++ leaf_commitment ++ view_be ++
//	  "justify_qc signatures" ++ signatures_bytes)
func (qc QuorumCertificate) CommitForHashing() Commitment {
	buf := []byte(tagQuorumCert)
	buf = append(buf, qc.LeafCommitment[:]...)
	buf = appendViewBE(buf, qc.ViewNumber)
	buf = append(buf, "justify_qc signatures"...)
	buf = append(buf, qc.Signatures.Bytes...)
	return CommitBytes(buf)
}
