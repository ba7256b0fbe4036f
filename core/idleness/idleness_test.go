package idleness

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

func TestReplaceSubstitutesIdleWithReserve(t *testing.T) {
	leader, idle, reserve := addr(1), addr(2), addr(3)
	votes := []types.VoteEntry{
		{Address: leader, Vote: types.NewLeaderReceiptVote(types.TagAgree, "")},
		{Address: idle, Vote: types.NewPlainVote(types.TagIdle)},
	}
	reserves := []types.VoteEntry{
		{Address: reserve, Vote: types.NewPlainVote(types.TagAgree)},
	}
	rotation, err := types.NewRotation(votes, reserves)
	require.NoError(t, err)

	priorEvents := []types.FeeEvent{{Address: idle, Staked: types.DefaultStake}}
	seq := types.NewEventSequence()

	effective, emitted := Replace(seq, priorEvents, 0, rotation)

	require.Len(t, effective.Votes, 2)
	require.Equal(t, leader, effective.Votes[0].Address)
	require.Equal(t, reserve, effective.Votes[1].Address)
	require.Empty(t, effective.Reserves)

	require.Len(t, emitted, 1)
	require.Equal(t, idle, emitted[0].Address)
	require.Equal(t, uint64(types.DefaultStake/100), emitted[0].Slashed)
}

func TestReplaceDropsSlotWhenReservesExhausted(t *testing.T) {
	leader, idle := addr(1), addr(2)
	votes := []types.VoteEntry{
		{Address: leader, Vote: types.NewLeaderReceiptVote(types.TagAgree, "")},
		{Address: idle, Vote: types.NewPlainVote(types.TagIdle)},
	}
	rotation, err := types.NewRotation(votes, nil)
	require.NoError(t, err)

	seq := types.NewEventSequence()
	effective, emitted := Replace(seq, nil, 0, rotation)

	require.Len(t, effective.Votes, 1)
	require.Equal(t, leader, effective.Votes[0].Address)
	require.Len(t, emitted, 1)
	require.Equal(t, uint64(0), emitted[0].Slashed)
}

func TestReplaceLeavesNonIdleRotationUnchanged(t *testing.T) {
	leader, validator := addr(1), addr(2)
	votes := []types.VoteEntry{
		{Address: leader, Vote: types.NewLeaderReceiptVote(types.TagAgree, "")},
		{Address: validator, Vote: types.NewValidatorWithHashVote(types.TagAgree, "0xaa")},
	}
	rotation, err := types.NewRotation(votes, nil)
	require.NoError(t, err)

	seq := types.NewEventSequence()
	effective, emitted := Replace(seq, nil, 0, rotation)

	require.Equal(t, rotation.Votes, effective.Votes)
	require.Empty(t, emitted)
}
