// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import "github.com/cockroachdb/errors"

var (
	ErrDuplicateTransaction = errors.New("transaction already contained in block")
	ErrInvalidBlock         = errors.New("block contains an already-applied transaction")
	ErrStateNotMaterialized = errors.New("leaf holds only a state commitment, not the materialized state")
)
