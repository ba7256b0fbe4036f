package pipeline

import (
	"fmt"

	"github.com/genlayerlabs/fee-simulator/core/types"
)

// TotalTransactionCost sums the sender's worst-case pre-payment across
// every round the budget allows: for normal rounds, every configured
// rotation attempt plus one; for appeal rounds, the round's own cost
// plus a flat leaderTimeout surcharge per appeal slot.
func TotalTransactionCost(budget types.TransactionBudget) (uint64, error) {
	lastRound := 2 * budget.AppealRounds
	if lastRound >= uint64(len(types.RoundSizes)) {
		return 0, fmt.Errorf("pipeline: budget requires round size beyond the configured table (round %d)", lastRound)
	}

	var total uint64
	for r := uint64(0); r <= lastRound; r++ {
		size := types.RoundSizes[r]
		if r%2 == 0 {
			rotations := budget.RotationsFor(r / 2)
			total += (rotations + 1) * (budget.LeaderTimeout + size*budget.ValidatorsTimeout)
		} else {
			total += budget.LeaderTimeout + size*budget.ValidatorsTimeout
			total += budget.LeaderTimeout
		}
	}
	return total, nil
}
