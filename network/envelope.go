// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package network

import (
	"github.com/google/uuid"

	"github.com/luxfi/daseq/types"
)

// Envelope tags an outbound ConsensusMessage with a correlation ID, so log
// lines at the sender and (once a Transport logs inbound traffic too) the
// receiver can be joined for one send. The wire format Transport actually
// puts on the network is out of scope (spec §1); this ID exists purely for
// the local log trail a Task leaves behind.
type Envelope struct {
	ID      uuid.UUID
	Message types.ConsensusMessage
}

// NewEnvelope stamps msg with a fresh correlation ID.
func NewEnvelope(msg types.ConsensusMessage) Envelope {
	return Envelope{ID: uuid.New(), Message: msg}
}
