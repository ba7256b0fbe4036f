// Package refund computes the sender's final refund, the event that
// closes the transaction's conservation identity.
package refund

import (
	"github.com/genlayerlabs/fee-simulator/core/errors"
	"github.com/genlayerlabs/fee-simulator/core/types"
)

// excludedFromPaidOut is the set of labels whose earnings are funded by
// a burned appeal bond rather than by the sender's pre-payment, and so
// must not reduce the sender's refund.
var excludedFromPaidOut = map[types.RoundLabel]bool{
	types.SplitPreviousAppealBond:           true,
	types.LeaderTimeout50PreviousAppealBond: true,
}

// Compute returns the sender's refund: its total cost minus every
// earning not excluded above, and not earned by an appellant or by an
// unsuccessful appeal round. Returns a *errors.ConservationError,
// carrying the full event log, if the refund would be negative.
func Compute(events []types.FeeEvent, sender types.Address) (uint64, error) {
	var senderCost, paidOut uint64
	for _, ev := range events {
		if ev.Address == sender {
			senderCost += ev.Cost
		}
		if ev.Earned == 0 {
			continue
		}
		if ev.Role != nil && *ev.Role == types.RoleAppealant {
			continue
		}
		if unsuccessfulAppeal(ev.RoundLabel) {
			continue
		}
		if ev.RoundLabel != nil && excludedFromPaidOut[*ev.RoundLabel] {
			continue
		}
		paidOut += ev.Earned
	}

	if paidOut > senderCost {
		return 0, errors.NewConservationError(senderCost, paidOut, events)
	}
	return senderCost - paidOut, nil
}

func unsuccessfulAppeal(label *types.RoundLabel) bool {
	if label == nil {
		return false
	}
	switch *label {
	case types.AppealLeaderUnsuccessful, types.AppealLeaderTimeoutUnsuccessful, types.AppealValidatorUnsuccessful:
		return true
	default:
		return false
	}
}
