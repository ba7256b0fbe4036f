package bond

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/genlayerlabs/fee-simulator/core/errors"
	"github.com/genlayerlabs/fee-simulator/core/types"
)

func TestAmountFirstAppeal(t *testing.T) {
	got, err := Amount(0, 100, 10)
	require.NoError(t, err)
	require.Equal(t, uint64(100)+10*types.RoundSizes[2], got)
}

func TestAmountScalesWithRoundIndex(t *testing.T) {
	first, err := Amount(0, 100, 10)
	require.NoError(t, err)
	second, err := Amount(2, 100, 10)
	require.NoError(t, err)
	require.Greater(t, second, first)
}

func TestAmountRejectsOutOfRange(t *testing.T) {
	_, err := Amount(-1, 100, 10)
	require.ErrorIs(t, err, errors.ErrInvalidRoundIndex)

	_, err = Amount(len(types.RoundSizes), 100, 10)
	require.ErrorIs(t, err, errors.ErrInvalidRoundIndex)
}
