// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import "github.com/luxfi/ids"

// Transaction is an opaque payload with a stable content-addressed hash.
// The mempool is keyed by Hash, so Hash must uniquely identify the payload.
type Transaction struct {
	Hash    ids.ID
	Payload []byte
}

// NewTransaction derives the content hash from the payload.
func NewTransaction(payload []byte) Transaction {
	c := CommitBytes(payload)
	return Transaction{
		Hash:    ids.ID(c),
		Payload: payload,
	}
}
