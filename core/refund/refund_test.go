package refund

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/genlayerlabs/fee-simulator/core/errors"
	"github.com/genlayerlabs/fee-simulator/core/types"
)

func addr(b byte) types.Address {
	var a types.Address
	a[19] = b
	return a
}

func labeled(l types.RoundLabel) *types.RoundLabel { return &l }
func roled(r types.Role) *types.Role               { return &r }

func TestComputeRefundsUnspentCost(t *testing.T) {
	sender := addr(1)
	leader := addr(2)
	events := []types.FeeEvent{
		{SequenceID: 1, Address: sender, Cost: 100, Role: roled(types.RoleSender)},
		{SequenceID: 2, Address: leader, Earned: 40, Role: roled(types.RoleLeader), RoundLabel: labeled(types.NormalRound)},
	}
	refund, err := Compute(events, sender)
	require.NoError(t, err)
	require.Equal(t, uint64(60), refund)
}

func TestComputeExcludesSplitPreviousAppealBondEarnings(t *testing.T) {
	sender := addr(1)
	validator := addr(2)
	events := []types.FeeEvent{
		{SequenceID: 1, Address: sender, Cost: 100, Role: roled(types.RoleSender)},
		{SequenceID: 2, Address: validator, Earned: 500, Role: roled(types.RoleValidator), RoundLabel: labeled(types.SplitPreviousAppealBond)},
	}
	refund, err := Compute(events, sender)
	require.NoError(t, err)
	require.Equal(t, uint64(100), refund)
}

func TestComputeExcludesAppealantEarnings(t *testing.T) {
	sender := addr(1)
	appellant := addr(2)
	events := []types.FeeEvent{
		{SequenceID: 1, Address: sender, Cost: 100, Role: roled(types.RoleSender)},
		{SequenceID: 2, Address: appellant, Earned: 200, Role: roled(types.RoleAppealant), RoundLabel: labeled(types.AppealLeaderSuccessful)},
	}
	refund, err := Compute(events, sender)
	require.NoError(t, err)
	require.Equal(t, uint64(100), refund)
}

func TestComputeReturnsConservationErrorOnOverpay(t *testing.T) {
	sender := addr(1)
	leader := addr(2)
	events := []types.FeeEvent{
		{SequenceID: 1, Address: sender, Cost: 50, Role: roled(types.RoleSender)},
		{SequenceID: 2, Address: leader, Earned: 60, Role: roled(types.RoleLeader), RoundLabel: labeled(types.NormalRound)},
	}
	_, err := Compute(events, sender)
	require.Error(t, err)
	var convErr *errors.ConservationError
	require.ErrorAs(t, err, &convErr)
	require.Equal(t, uint64(50), convErr.SenderCost)
	require.Equal(t, uint64(60), convErr.PaidOut)
}
