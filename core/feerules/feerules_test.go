package feerules

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

func agreeingRotation(addresses []types.Address) types.Rotation {
	entries := make([]types.VoteEntry, len(addresses))
	for i, a := range addresses {
		if i == 0 {
			entries[i] = types.VoteEntry{Address: a, Vote: types.NewLeaderReceiptVote(types.TagAgree, "0xaa")}
			continue
		}
		entries[i] = types.VoteEntry{Address: a, Vote: types.NewValidatorWithHashVote(types.TagAgree, "0xaa")}
	}
	r, err := types.NewRotation(entries, nil)
	if err != nil {
		panic(err)
	}
	return r
}

func singleRoundContext(t *testing.T, rotation types.Rotation, sender types.Address) Context {
	t.Helper()
	round, err := types.NewRound([]types.Rotation{rotation})
	require.NoError(t, err)
	results, err := types.NewTransactionRoundResults([]types.Round{round})
	require.NoError(t, err)
	budget, err := types.NewTransactionBudget(100, 10, 0, []uint64{1}, sender, nil, types.StakingConstant, nil, nil)
	require.NoError(t, err)
	return Context{Results: results, RoundIndex: 0, Budget: budget, Seq: types.NewEventSequence()}
}

func TestApplyNormalRoundPaysLeaderAndMajority(t *testing.T) {
	validators := []types.Address{addr(1), addr(2), addr(3), addr(4), addr(5)}
	ctx := singleRoundContext(t, agreeingRotation(validators), addr(99))

	events, err := Apply(ctx, types.NormalRound)
	require.NoError(t, err)

	var leaderEarned, totalValidatorEarned uint64
	for _, ev := range events {
		if *ev.Role == types.RoleLeader {
			leaderEarned = ev.Earned
		}
		if *ev.Role == types.RoleValidator {
			totalValidatorEarned += ev.Earned
		}
	}
	require.Equal(t, ctx.Budget.LeaderTimeout, leaderEarned)
	require.Equal(t, ctx.Budget.ValidatorsTimeout*uint64(len(validators)), totalValidatorEarned)
}

func TestApplyNormalRoundBurnsMinority(t *testing.T) {
	validators := []types.Address{addr(1), addr(2), addr(3), addr(4), addr(5)}
	entries := make([]types.VoteEntry, len(validators))
	for i, a := range validators {
		if i == 0 {
			entries[i] = types.VoteEntry{Address: a, Vote: types.NewLeaderReceiptVote(types.TagAgree, "0xaa")}
			continue
		}
		tag := types.TagAgree
		if i >= 3 {
			tag = types.TagDisagree
		}
		entries[i] = types.VoteEntry{Address: a, Vote: types.NewValidatorWithHashVote(tag, "0xaa")}
	}
	rotation, err := types.NewRotation(entries, nil)
	require.NoError(t, err)

	ctx := singleRoundContext(t, rotation, addr(99))
	events, err := Apply(ctx, types.NormalRound)
	require.NoError(t, err)

	var burned uint64
	for _, ev := range events {
		burned += ev.Burned
	}
	require.Equal(t, 2*ctx.Budget.ValidatorsTimeout, burned)
}

func TestApplyLeaderTimeout50PercentPaysHalf(t *testing.T) {
	validators := []types.Address{addr(1), addr(2), addr(3), addr(4), addr(5)}
	ctx := singleRoundContext(t, agreeingRotation(validators), addr(99))

	events, err := Apply(ctx, types.LeaderTimeout50Percent)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, ctx.Budget.LeaderTimeout/2, events[0].Earned)
}

func TestApplySkipAndEmptyRoundsEmitNothing(t *testing.T) {
	validators := []types.Address{addr(1), addr(2), addr(3), addr(4), addr(5)}
	ctx := singleRoundContext(t, agreeingRotation(validators), addr(99))

	for _, label := range []types.RoundLabel{types.EmptyRound, types.SkipRound, types.LeaderTimeout} {
		events, err := Apply(ctx, label)
		require.NoError(t, err)
		require.Empty(t, events)
	}
}
