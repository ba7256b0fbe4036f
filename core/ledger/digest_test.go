package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/genlayerlabs/fee-simulator/core/types"
)

func TestDigestIsStableAndDeterministic(t *testing.T) {
	events := []types.FeeEvent{
		{SequenceID: 1, Address: addr(1), Staked: 100},
		{SequenceID: 2, Address: addr(2), Earned: 50},
	}
	first := Digest(events)
	second := Digest(events)
	require.Equal(t, first, second)
	require.Len(t, first, 66)
}

func TestDigestChangesWithEventOrder(t *testing.T) {
	a := types.FeeEvent{SequenceID: 1, Address: addr(1), Staked: 100}
	b := types.FeeEvent{SequenceID: 2, Address: addr(2), Earned: 50}

	d1 := Digest([]types.FeeEvent{a, b})
	d2 := Digest([]types.FeeEvent{b, a})
	require.NotEqual(t, d1, d2)
}
