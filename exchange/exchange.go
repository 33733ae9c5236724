// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package exchange implements the parameterised participant role shared by
// the DA committee, the Quorum committee, and view-sync: sign proposals and
// votes, validate incoming votes and certificates, and fold votes into a
// certificate through an embedded vote.Accumulator. See spec §4.5 / C5.
//
// The three concrete exchanges (Committee, Quorum, ViewSync) are all
// instances of the same Exchange struct, parameterised only by VoteKind,
// SigKind, and threshold -- per the design note to dispatch statically at
// replica-construction time rather than unify their certificate types.
package exchange

import (
	"bytes"

	"github.com/luxfi/ids"

	"github.com/luxfi/daseq/crypto"
	"github.com/luxfi/daseq/membership"
	"github.com/luxfi/daseq/types"
	"github.com/luxfi/daseq/vote"
)

// Exchange is the shared contract every role-specific instance satisfies.
// Role is baked into an Exchange at construction (VoteKind + SigKind +
// which of SuccessThreshold/FailureThreshold applies); callers never
// choose it per-call.
type Exchange struct {
	self       ids.NodeID
	key        crypto.SignatureKey
	membership membership.Membership
	scheme     crypto.Scheme
	kind       types.VoteKind
	sigKind    types.SigKind
	threshold  uint64
}

// NewCommittee builds the DA exchange: votes are VoteData{KindDA, blockCommitment},
// certified with SigDA, gated by the committee's success threshold.
func NewCommittee(self ids.NodeID, key crypto.SignatureKey, m membership.Membership, scheme crypto.Scheme) *Exchange {
	return &Exchange{self: self, key: key, membership: m, scheme: scheme, kind: types.KindDA, sigKind: types.SigDA, threshold: m.SuccessThreshold()}
}

// NewQuorumYes builds the Quorum exchange's Yes-vote path: votes are
// VoteData{KindYes, leafCommitment}, certified with SigYes.
func NewQuorumYes(self ids.NodeID, key crypto.SignatureKey, m membership.Membership, scheme crypto.Scheme) *Exchange {
	return &Exchange{self: self, key: key, membership: m, scheme: scheme, kind: types.KindYes, sigKind: types.SigYes, threshold: m.SuccessThreshold()}
}

// NewQuorumNo builds the Quorum exchange's No-vote path, gated by the
// failure threshold -- a quorum of No votes proves a view cannot succeed.
func NewQuorumNo(self ids.NodeID, key crypto.SignatureKey, m membership.Membership, scheme crypto.Scheme) *Exchange {
	return &Exchange{self: self, key: key, membership: m, scheme: scheme, kind: types.KindNo, sigKind: types.SigNo, threshold: m.FailureThreshold()}
}

// NewQuorumTimeout builds the Quorum exchange's Timeout-vote path, gated
// by the failure threshold.
func NewQuorumTimeout(self ids.NodeID, key crypto.SignatureKey, m membership.Membership, scheme crypto.Scheme) *Exchange {
	return &Exchange{self: self, key: key, membership: m, scheme: scheme, kind: types.KindTimeout, sigKind: types.SigTimeout, threshold: m.FailureThreshold()}
}

// NewViewSync builds one of the three view-sync phase exchanges.
func NewViewSync(phase types.ViewSyncPhase, self ids.NodeID, key crypto.SignatureKey, m membership.Membership, scheme crypto.Scheme) *Exchange {
	kind, sigKind := viewSyncKinds(phase)
	return &Exchange{self: self, key: key, membership: m, scheme: scheme, kind: kind, sigKind: sigKind, threshold: m.SuccessThreshold()}
}

func viewSyncKinds(phase types.ViewSyncPhase) (types.VoteKind, types.SigKind) {
	switch phase {
	case types.ViewSyncPreCommit:
		return types.KindViewSyncPreCommit, types.SigViewSyncPreCommit
	case types.ViewSyncCommitPhase:
		return types.KindViewSyncCommit, types.SigViewSyncCommit
	default:
		return types.KindViewSyncFinalize, types.SigViewSyncFinalize
	}
}

// VoteData builds this exchange's role-specific tagged commitment for the
// thing being voted on (a block commitment for Committee, a leaf commitment
// for Quorum, a round commitment for ViewSync).
func (e *Exchange) VoteData(commitment types.Commitment) types.VoteData {
	return types.VoteData{Kind: e.kind, Commitment: commitment}
}

// SignVote signs this exchange's VoteData commitment for commitment,
// returning the signer's encoded key and signature -- never the bare
// commitment, which would allow cross-role signature reuse (spec §4.1, S6).
func (e *Exchange) SignVote(commitment types.Commitment) (encodedKey, signature []byte, err error) {
	voteCommit := e.VoteData(commitment).Commit()
	sig, err := e.key.Sign(voteCommit[:])
	if err != nil {
		return nil, nil, err
	}
	return e.key.PublicKeyBytes(), sig, nil
}

// SignProposal signs the raw commitment of a proposal (a block or a leaf),
// which -- unlike votes -- is not tagged through VoteData.
func (e *Exchange) SignProposal(commitment types.Commitment) ([]byte, error) {
	return e.key.Sign(commitment[:])
}

// MakeVote builds and signs a full Vote for commitment at view v, pulling
// this node's vote token from Membership. ok is false if this node holds
// zero seats for v.
func (e *Exchange) MakeVote(v types.View, commitment types.Commitment) (types.Vote, bool, error) {
	token, ok := e.membership.MakeVoteToken(v, e.self)
	if !ok {
		return types.Vote{}, false, nil
	}
	encodedKey, sig, err := e.SignVote(commitment)
	if err != nil {
		return types.Vote{}, false, err
	}
	return types.Vote{
		Kind:       e.kind,
		Commitment: commitment,
		EncodedKey: encodedKey,
		Signature:  sig,
		Token:      token,
		View:       v,
		Signer:     e.self,
	}, true, nil
}

// IsValidVote checks a vote against this exchange's role before it is fed
// to the accumulator: the vote's kind must match the exchange's role, the
// token must validate, the encoded key must be the claimed signer's actual
// registered public key -- not just any key that happens to verify -- and
// the signature must check against the VoteData commitment, never the bare
// commitment. The key-identity check is what stops a Byzantine replica from
// voting as Signer=A (a real stakeholder) while signing with a key of its
// own choosing: without it, ValidateVoteToken only checks the self-reported
// vote count against Signer's stake, which proves nothing about whose key
// actually produced the signature.
func (e *Exchange) IsValidVote(v types.Vote) bool {
	if v.Kind != e.kind {
		return false
	}
	if e.membership.ValidateVoteToken(v.Signer, v.Token) == membership.Invalid {
		return false
	}
	registeredKey, ok := e.membership.PublicKeyOf(v.Signer)
	if !ok || !bytes.Equal(registeredKey, v.EncodedKey) {
		return false
	}
	voteCommit := v.VoteData().Commit()
	return e.scheme.Check(v.EncodedKey, v.Signature, voteCommit[:])
}

// IsValidCert checks a certificate produced by this exchange's accumulator:
// its Signatures.Kind must match the role, its Commitment must match
// expectedCommitment, and the aggregate must verify against the
// recomputed VoteData commitment and the committee's stake table at the
// threshold this exchange enforces. It has no genesis branch: a
// QuorumCertificate marked IsGenesis is not a Certificate and is not
// checked here, and no function in this module validates genesis QCs.
func (e *Exchange) IsValidCert(cert types.Certificate, expectedCommitment types.Commitment, v types.View) bool {
	if cert.Signatures.Kind != e.sigKind {
		return false
	}
	if cert.Commitment != expectedCommitment {
		return false
	}
	expected := e.VoteData(cert.Commitment).Commit()
	param := crypto.PublicParameter{StakeTable: e.stakeTable(v), Threshold: e.threshold}
	return e.scheme.VerifyAggregate(expected[:], cert.Signatures.Bytes, param)
}

func (e *Exchange) stakeTable(v types.View) []crypto.StakeTableEntry {
	committee := e.membership.Committee(v)
	table := make([]crypto.StakeTableEntry, 0, len(committee))
	for _, node := range committee {
		stake, ok := e.membership.StakeOf(node)
		if !ok {
			continue
		}
		pubKey, ok := e.membership.PublicKeyOf(node)
		if !ok {
			continue
		}
		table = append(table, crypto.StakeTableEntry{PublicKey: pubKey, Stake: stake})
	}
	return table
}

// NewAccumulator opens a fresh vote.Accumulator for view v, scoped to this
// exchange's kind and threshold. Leader code calls this once per view and
// feeds it every vote that passes IsValidVote.
func (e *Exchange) NewAccumulator(v types.View) *vote.Accumulator {
	return vote.New(e.sigKind, v, e.threshold, e.membership.StakeOf, e.scheme)
}

// AccumulateVote feeds a vote already known to be valid (IsValidVote) into
// acc, returning the resulting certificate when threshold is crossed.
func (e *Exchange) AccumulateVote(acc *vote.Accumulator, v types.Vote) (types.Certificate, bool, error) {
	return acc.Append(v.Commitment, v.Signer, v.EncodedKey, v.Signature, v.Token.VoteCount())
}

// CreateVoteMessage wraps v in the wire envelope appropriate to this
// exchange's role: DAVoteMessage for the committee, VoteMessage for
// Quorum Yes/No, TimeoutVoteMessage for Quorum Timeout (timeoutQC must be
// non-nil), ViewSyncVoteMessage for any view-sync phase.
func (e *Exchange) CreateVoteMessage(v types.Vote, timeoutQC *types.QuorumCertificate) types.ConsensusMessage {
	switch e.kind {
	case types.KindDA:
		return types.DAVoteMessage{Vote: v}
	case types.KindTimeout:
		qc := types.QuorumCertificate{}
		if timeoutQC != nil {
			qc = *timeoutQC
		}
		return types.TimeoutVoteMessage{Vote: types.TimeoutVote{Vote: v, JustifyQC: qc}}
	case types.KindViewSyncPreCommit, types.KindViewSyncCommit, types.KindViewSyncFinalize:
		return types.ViewSyncVoteMessage{Vote: v}
	default:
		return types.VoteMessage{Vote: v}
	}
}

// CreateDACertificateMessage wraps a completed DA certificate for broadcast.
func (e *Exchange) CreateDACertificateMessage(cert types.DACertificate) types.ConsensusMessage {
	return types.DACertificateMessage{Certificate: cert}
}

// CreateViewSyncCertificateMessage wraps a completed view-sync certificate
// for broadcast.
func (e *Exchange) CreateViewSyncCertificateMessage(cert types.ViewSyncCertificate) types.ConsensusMessage {
	return types.ViewSyncCertificateMessage{Certificate: cert}
}
