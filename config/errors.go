// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "github.com/cockroachdb/errors"

var (
	ErrMissingNodeID          = errors.New("config: nodeID must be set")
	ErrEmptyCommittee         = errors.New("config: committee must have at least one member")
	ErrZeroStake              = errors.New("config: committee member stake must be > 0")
	ErrNodeNotInCommittee     = errors.New("config: nodeID is not a member of the committee")
	ErrInvalidMinTransactions = errors.New("config: minTransactions must be >= 0")
	ErrInvalidRoundTime       = errors.New("config: proposeMaxRoundTime must be > 0")
	ErrViewTimeoutTooLow      = errors.New("config: viewTimeout must exceed proposeMaxRoundTime")
)
