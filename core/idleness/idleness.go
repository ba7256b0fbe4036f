// Package idleness implements the idle-replacement pipeline stage: it
// slashes idle validators and substitutes reserve votes into their
// slots before any further round processing sees the rotation.
package idleness

import (
	"github.com/genlayerlabs/fee-simulator/core/ledger"
	"github.com/genlayerlabs/fee-simulator/core/types"
)

// idleSlashRateNumerator is the percentage of an idle validator's current
// stake slashed for failing to vote.
const idleSlashRateNumerator = 1 // 1%

// Replace scans rotation's tail for idle voters, slashes each 1% of its
// current stake (computed from priorEvents, the transaction's event log
// up to but not including this round), and substitutes reserve votes in
// insertion order until idle slots are filled or reserves run out. It
// returns the rotation's effective vote set after substitution and the
// slash events emitted.
func Replace(seq *types.EventSequence, priorEvents []types.FeeEvent, roundIndex int, rotation types.Rotation) (types.Rotation, []types.FeeEvent) {
	var emitted []types.FeeEvent
	reserves := append([]types.VoteEntry(nil), rotation.Reserves...)
	reserveIdx := 0

	effective := make([]types.VoteEntry, 0, len(rotation.Votes))
	for _, entry := range rotation.Votes {
		if !entry.Vote.IsIdle() {
			effective = append(effective, entry)
			continue
		}

		stake := ledger.CurrentStake(priorEvents, entry.Address)
		slashAmount := stake * idleSlashRateNumerator / 100
		emitted = append(emitted, seq.Emit(types.FeeEvent{
			Address:    entry.Address,
			RoundIndex: types.RoundIndexPtr(roundIndex),
			Vote:       types.VotePtrOf(entry.Vote),
			Slashed:    slashAmount,
		}))

		if reserveIdx < len(reserves) {
			effective = append(effective, reserves[reserveIdx])
			reserveIdx++
		}
		// Reserves exhausted: the slot is dropped and the rotation shrinks.
	}

	remainingReserves := reserves[reserveIdx:]
	return types.Rotation{Votes: effective, Reserves: remainingReserves}, emitted
}
