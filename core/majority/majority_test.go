package majority

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

func rotationOf(tags ...types.VoteTag) types.Rotation {
	var entries []types.VoteEntry
	for i, tag := range tags {
		entries = append(entries, types.VoteEntry{Address: addr(byte(i + 1)), Vote: types.NewPlainVote(tag)})
	}
	r, err := types.NewRotation(entries, nil)
	if err != nil {
		panic(err)
	}
	return r
}

func TestVoteMajorityAgree(t *testing.T) {
	r := rotationOf(types.TagAgree, types.TagAgree, types.TagAgree, types.TagDisagree, types.TagDisagree)
	require.Equal(t, Agree, VoteMajority(r))
}

func TestVoteMajorityTimeout(t *testing.T) {
	r := rotationOf(types.TagTimeout, types.TagTimeout, types.TagTimeout, types.TagAgree, types.TagAgree)
	require.Equal(t, Timeout, VoteMajority(r))
}

func TestVoteMajorityUndeterminedOnDisagree(t *testing.T) {
	r := rotationOf(types.TagDisagree, types.TagDisagree, types.TagDisagree, types.TagAgree, types.TagAgree)
	require.Equal(t, Undetermined, VoteMajority(r))
}

func TestVoteMajorityUndeterminedOnSplit(t *testing.T) {
	r := rotationOf(types.TagAgree, types.TagAgree, types.TagTimeout, types.TagTimeout, types.TagDisagree)
	require.Equal(t, Undetermined, VoteMajority(r))
}

func TestHashMajority(t *testing.T) {
	entries := []types.VoteEntry{
		{Address: addr(1), Vote: types.NewValidatorWithHashVote(types.TagAgree, "0xaa")},
		{Address: addr(2), Vote: types.NewValidatorWithHashVote(types.TagAgree, "0xaa")},
		{Address: addr(3), Vote: types.NewValidatorWithHashVote(types.TagAgree, "0xaa")},
		{Address: addr(4), Vote: types.NewValidatorWithHashVote(types.TagDisagree, "0xbb")},
		{Address: addr(5), Vote: types.NewValidatorWithHashVote(types.TagDisagree, "0xbb")},
	}
	r, err := types.NewRotation(entries, nil)
	require.NoError(t, err)

	h, ok := HashMajority(r)
	require.True(t, ok)
	require.Equal(t, types.Hash("0xaa"), h)
}

func TestHashMajorityNoneWhenSplit(t *testing.T) {
	entries := []types.VoteEntry{
		{Address: addr(1), Vote: types.NewValidatorWithHashVote(types.TagAgree, "0xaa")},
		{Address: addr(2), Vote: types.NewValidatorWithHashVote(types.TagAgree, "0xaa")},
		{Address: addr(3), Vote: types.NewValidatorWithHashVote(types.TagDisagree, "0xbb")},
		{Address: addr(4), Vote: types.NewValidatorWithHashVote(types.TagDisagree, "0xbb")},
		{Address: addr(5), Vote: types.NewValidatorWithHashVote(types.TagDisagree, "0xcc")},
	}
	r, err := types.NewRotation(entries, nil)
	require.NoError(t, err)

	_, ok := HashMajority(r)
	require.False(t, ok)
}

func TestWhoIsInVoteMajority(t *testing.T) {
	r := rotationOf(types.TagAgree, types.TagAgree, types.TagAgree, types.TagDisagree, types.TagDisagree)
	maj, min := WhoIsInVoteMajority(r, Agree)
	require.Len(t, maj, 3)
	require.Len(t, min, 2)
}

func TestWhoIsInHashMajorityExcludesIdle(t *testing.T) {
	entries := []types.VoteEntry{
		{Address: addr(1), Vote: types.NewValidatorWithHashVote(types.TagAgree, "0xaa")},
		{Address: addr(2), Vote: types.NewValidatorWithHashVote(types.TagAgree, "0xaa")},
		{Address: addr(3), Vote: types.NewValidatorWithHashVote(types.TagAgree, "0xaa")},
		{Address: addr(4), Vote: types.NewPlainVote(types.TagIdle)},
		{Address: addr(5), Vote: types.NewValidatorWithHashVote(types.TagDisagree, "0xbb")},
	}
	r, err := types.NewRotation(entries, nil)
	require.NoError(t, err)

	maj, min := WhoIsInHashMajority(r, "0xaa")
	require.ElementsMatch(t, []types.Address{addr(1), addr(2), addr(3)}, maj)
	require.ElementsMatch(t, []types.Address{addr(5)}, min)
}
