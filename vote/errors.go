// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vote

import "github.com/cockroachdb/errors"

var (
	// ErrUnknownSigner is returned when a vote's signer has no stake-table
	// entry for the accumulator's membership epoch.
	ErrUnknownSigner = errors.New("vote: signer has no stake-table entry")

	// ErrDuplicateVote is returned when a signer has already voted for the
	// same commitment. It is not an equivocation: a signer is free to vote
	// for a different commitment in the same view, which opens a second
	// bucket rather than erroring.
	ErrDuplicateVote = errors.New("vote: signer already voted for this commitment")
)
