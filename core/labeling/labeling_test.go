package labeling

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

func plainRotation(tags ...types.VoteTag) types.Rotation {
	var entries []types.VoteEntry
	for i, tag := range tags {
		var vote types.Vote
		if i == 0 {
			vote = types.NewLeaderReceiptVote(tag, "")
		} else {
			vote = types.NewValidatorWithHashVote(tag, "")
		}
		entries = append(entries, types.VoteEntry{Address: addr(byte(i + 1)), Vote: vote})
	}
	r, err := types.NewRotation(entries, nil)
	if err != nil {
		panic(err)
	}
	return r
}

func timeoutRotation(n int) types.Rotation {
	var entries []types.VoteEntry
	for i := 0; i < n; i++ {
		var vote types.Vote
		if i == 0 {
			vote = types.NewLeaderTimeoutVote()
		} else {
			vote = types.NewPlainVote(types.TagTimeout)
		}
		entries = append(entries, types.VoteEntry{Address: addr(byte(i + 1)), Vote: vote})
	}
	r, err := types.NewRotation(entries, nil)
	if err != nil {
		panic(err)
	}
	return r
}

func resultsOf(t *testing.T, rotations ...types.Rotation) types.TransactionRoundResults {
	t.Helper()
	var rounds []types.Round
	for _, r := range rotations {
		round, err := types.NewRound([]types.Rotation{r})
		require.NoError(t, err)
		rounds = append(rounds, round)
	}
	results, err := types.NewTransactionRoundResults(rounds)
	require.NoError(t, err)
	return results
}

func TestLabelSingleNormalRound(t *testing.T) {
	results := resultsOf(t, plainRotation(types.TagAgree, types.TagAgree, types.TagAgree, types.TagAgree, types.TagAgree))
	labels := Label(results)
	require.Equal(t, []types.RoundLabel{types.NormalRound}, labels)
}

func TestLabelSingleLeaderTimeoutIsHalfPercent(t *testing.T) {
	results := resultsOf(t, timeoutRotation(5))
	labels := Label(results)
	require.Equal(t, []types.RoundLabel{types.LeaderTimeout50Percent}, labels)
}

func TestLabelLeaderTimeoutWithFollowingRoundsIsPlainTimeout(t *testing.T) {
	results := resultsOf(t,
		timeoutRotation(5),
		plainRotation(types.TagAgree, types.TagAgree, types.TagAgree, types.TagAgree, types.TagAgree, types.TagAgree, types.TagAgree),
		plainRotation(types.TagAgree, types.TagAgree, types.TagAgree, types.TagAgree, types.TagAgree, types.TagAgree, types.TagAgree, types.TagAgree, types.TagAgree, types.TagAgree, types.TagAgree),
	)
	labels := Label(results)
	require.Equal(t, types.LeaderTimeout, labels[0])
	require.Equal(t, types.AppealLeaderTimeoutSuccessful, labels[1])
	require.Equal(t, types.NormalRound, labels[2])
}

// TestLabelAppealValidatorSuccessfulRewritesPrecedingToSkip exercises the
// reviewed rewrite: when an appeal round's own (undetermined) majority
// differs from the nearest determined ancestor round's majority, the
// appeal overturns that ancestor, which is rewritten to SKIP_ROUND so the
// merged-committee transformer pays out instead of the original round.
func TestLabelAppealValidatorSuccessfulRewritesPrecedingToSkip(t *testing.T) {
	agreeingNormal := plainRotation(types.TagAgree, types.TagAgree, types.TagAgree, types.TagAgree, types.TagAgree)
	disagreeingAppeal := plainRotation(types.TagDisagree, types.TagDisagree, types.TagDisagree, types.TagDisagree, types.TagDisagree, types.TagDisagree, types.TagDisagree)
	nextNormal := plainRotation(
		types.TagAgree, types.TagAgree, types.TagAgree, types.TagAgree,
		types.TagAgree, types.TagAgree, types.TagAgree, types.TagAgree,
		types.TagAgree, types.TagAgree, types.TagAgree,
	)
	results := resultsOf(t, agreeingNormal, disagreeingAppeal, nextNormal)
	labels := Label(results)

	require.Equal(t, types.SkipRound, labels[0])
	require.Equal(t, types.AppealValidatorSuccessful, labels[1])
}

// TestLabelAppealLeaderSuccessfulOnUndeterminedPredecessor exercises the
// reviewed prevUndetermined branch: when the round preceding the appeal
// is itself undetermined, the appeal's outcome is a leader appeal
// (APPEAL_LEADER_SUCCESSFUL/UNSUCCESSFUL), not a validator appeal.
func TestLabelAppealLeaderSuccessfulOnUndeterminedPredecessor(t *testing.T) {
	undeterminedNormal := plainRotation(types.TagAgree, types.TagAgree, types.TagDisagree, types.TagDisagree, types.TagDisagree)
	appeal := plainRotation(types.TagAgree, types.TagAgree, types.TagAgree, types.TagAgree, types.TagAgree, types.TagAgree, types.TagAgree)
	nextDetermined := plainRotation(
		types.TagAgree, types.TagAgree, types.TagAgree, types.TagAgree,
		types.TagAgree, types.TagAgree, types.TagAgree, types.TagAgree,
		types.TagAgree, types.TagAgree, types.TagAgree,
	)
	results := resultsOf(t, undeterminedNormal, appeal, nextDetermined)
	labels := Label(results)

	require.Equal(t, types.AppealLeaderSuccessful, labels[1])
}

// TestLabelAppealLeaderTimeoutUnsuccessfulSandwich exercises the
// reviewed rewrite: a failed appeal against a leader timeout rewrites
// the surrounding LEADER_TIMEOUT rounds into the 50/50 split pair.
func TestLabelAppealLeaderTimeoutUnsuccessfulSandwich(t *testing.T) {
	first := timeoutRotation(5)
	appeal := timeoutRotation(7)
	second := timeoutRotation(11)
	results := resultsOf(t, first, appeal, second)
	labels := Label(results)

	require.Equal(t, types.LeaderTimeout50Percent, labels[0])
	require.Equal(t, types.AppealLeaderTimeoutUnsuccessful, labels[1])
	require.Equal(t, types.LeaderTimeout50PreviousAppealBond, labels[2])
}
