// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package network

// Filter selects which published events one task instance receives.
// Every filter must forward Shutdown and ViewChange regardless of role
// (spec §4.9, design note "Event-stream dispatch").
type Filter func(Event) bool

func withBarrier(f Filter) Filter {
	return func(e Event) bool {
		switch e.(type) {
		case Shutdown, ViewChange:
			return true
		default:
			return f(e)
		}
	}
}

// QuorumFilter passes quorum proposals and votes (Yes/No/Timeout).
func QuorumFilter() Filter {
	return withBarrier(func(e Event) bool {
		switch e.(type) {
		case QuorumProposalRecv, QuorumVoteRecv, QuorumTimeoutVoteRecv:
			return true
		default:
			return false
		}
	})
}

// CommitteeFilter passes DA proposals, DA votes, and DA certificates.
func CommitteeFilter() Filter {
	return withBarrier(func(e Event) bool {
		switch e.(type) {
		case DAProposalRecv, DAVoteRecv, DACRecv:
			return true
		default:
			return false
		}
	})
}

// ViewSyncFilter passes view-sync votes and certificates.
func ViewSyncFilter() Filter {
	return withBarrier(func(e Event) bool {
		switch e.(type) {
		case ViewSyncVoteRecv, ViewSyncCertificateRecv:
			return true
		default:
			return false
		}
	})
}
