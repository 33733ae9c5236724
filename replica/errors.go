// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package replica

import "github.com/cockroachdb/errors"

// Error kinds surfaced by the core, per spec §7. None are retried inside a
// view: the view-advance protocol (timeouts + view-sync) is the sole
// recovery mechanism, and Byzantine inputs are always dropped, never
// propagated.
var (
	// ErrParentMissing: state_map lookup fails or points to Failed. Log
	// warn, abort view silently.
	ErrParentMissing = errors.New("replica: parent view missing or failed")

	// ErrNoParentState: parent leaf stores only a state commitment. Log
	// warn, abort view.
	ErrNoParentState = errors.New("replica: parent leaf state is not materialized")

	// ErrCannotAppend: state.Append returned an error. Log error, abort
	// view.
	ErrCannotAppend = errors.New("replica: state append failed")

	// ErrChannelClosed: mempool or vote channel dropped. Log error, abort
	// leader task.
	ErrChannelClosed = errors.New("replica: channel closed")

	// ErrInvalidVote: signature or token check failed. Drop vote, continue.
	ErrInvalidVote = errors.New("replica: invalid vote")

	// ErrForeignView: message view != current view. Drop, continue.
	ErrForeignView = errors.New("replica: foreign view")

	// ErrUnexpectedMessage: wrong variant arrived on a role channel. Log
	// warn, continue.
	ErrUnexpectedMessage = errors.New("replica: unexpected message variant")

	// ErrTimeout: view timer elapsed before quorum. Emit NextViewInterrupt,
	// exit.
	ErrTimeout = errors.New("replica: view timed out")
)
