// Package ledger provides read-only queries over an in-flight FeeEvent
// log, shared by the core stages that need an address's current stake
// before the transaction finishes (idleness replacement, deterministic-
// violation slashing, sender refund). The final aggregate views used by
// callers after a transaction completes live in core/aggregate; this
// package is the incremental counterpart consulted mid-pipeline.
package ledger

import "github.com/genlayerlabs/fee-simulator/core/types"

// CurrentStake returns an address's current stake given the event log
// emitted so far: the sum of every Staked event minus the sum of every
// Slashed event recorded against that address.
func CurrentStake(events []types.FeeEvent, addr types.Address) uint64 {
	var staked, slashed uint64
	for _, ev := range events {
		if ev.Address != addr {
			continue
		}
		staked += ev.Staked
		slashed += ev.Slashed
	}
	if slashed >= staked {
		return 0
	}
	return staked - slashed
}
