package aggregate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/genlayerlabs/fee-simulator/core/types"
)

func addr(b byte) types.Address {
	var a types.Address
	a[19] = b
	return a
}

func TestTotalBalanceIsSignedNet(t *testing.T) {
	sender := addr(1)
	events := []types.FeeEvent{
		{Address: sender, Cost: 100},
		{Address: sender, Earned: 40},
	}
	require.Equal(t, int64(-60), TotalBalance(events, sender))
}

func TestCurrentStakeFloorsAtZero(t *testing.T) {
	a := addr(1)
	events := []types.FeeEvent{
		{Address: a, Staked: 100},
		{Address: a, Slashed: 300},
	}
	require.Equal(t, uint64(0), CurrentStake(events, a))
}

func TestAllZerosIsTrueForUntouchedAddress(t *testing.T) {
	a := addr(1)
	events := []types.FeeEvent{{Address: addr(2), Cost: 10}}
	require.True(t, AllZeros(events, a))
}

func TestAllZerosIsFalseWhenAnyFieldIsSet(t *testing.T) {
	a := addr(1)
	events := []types.FeeEvent{{Address: a, Slashed: 1}}
	require.False(t, AllZeros(events, a))
}

func TestAggregatesSumAcrossAllAddresses(t *testing.T) {
	events := []types.FeeEvent{
		{Address: addr(1), Cost: 10, Earned: 5, Burned: 1, Slashed: 2, Staked: 100},
		{Address: addr(2), Cost: 20, Earned: 15, Burned: 3, Slashed: 4, Staked: 200},
	}
	require.Equal(t, uint64(30), AggCosts(events))
	require.Equal(t, uint64(20), AggEarnings(events))
	require.Equal(t, uint64(4), AggBurnt(events))
	require.Equal(t, uint64(6), AggSlashed(events))
	require.Equal(t, uint64(300), AggStaked(events))
}
