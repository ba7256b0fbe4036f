// Package slashing implements the deterministic-violation slashing
// pipeline stage: validators whose hash disagrees with the round's
// hash-majority are slashed, at a higher rate for the leader.
package slashing

import (
	"github.com/genlayerlabs/fee-simulator/core/ledger"
	"github.com/genlayerlabs/fee-simulator/core/majority"
	"github.com/genlayerlabs/fee-simulator/core/types"
)

// leaderRateNumerator and validatorRateNumerator are percentages of
// current stake, not surviving stake:
// a leader caught on the wrong side of the hash majority loses 5% of its
// current stake, a validator 1%.
const (
	leaderRateNumerator    = 5
	validatorRateNumerator = 1
)

// Apply computes the round's hash majority and slashes every non-idle,
// hash-minority address: leaderRateNumerator% of current stake if it is
// the rotation's leader, validatorRateNumerator% otherwise. priorEvents
// is the transaction's event log up to but not including this round.
// rotation must already reflect idle replacement. If no hash majority
// exists, no slashing occurs.
func Apply(seq *types.EventSequence, priorEvents []types.FeeEvent, roundIndex int, rotation types.Rotation) []types.FeeEvent {
	h, ok := majority.HashMajority(rotation)
	if !ok {
		return nil
	}

	_, minority := majority.WhoIsInHashMajority(rotation, h)
	if len(minority) == 0 {
		return nil
	}

	leader := rotation.Leader()
	var emitted []types.FeeEvent
	for _, addr := range minority {
		rate := validatorRateNumerator
		role := types.RoleValidator
		if addr == leader {
			rate = leaderRateNumerator
			role = types.RoleLeader
		}
		stake := ledger.CurrentStake(priorEvents, addr)
		slashAmount := stake * uint64(rate) / 100

		emitted = append(emitted, seq.Emit(types.FeeEvent{
			Address:    addr,
			RoundIndex: types.RoundIndexPtr(roundIndex),
			Role:       types.RolePtrOf(role),
			Hash:       types.HashPtrOf(h),
			Slashed:    slashAmount,
		}))
	}
	return emitted
}
