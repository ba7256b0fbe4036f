package export_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/genlayerlabs/fee-simulator/core/types"
	"github.com/genlayerlabs/fee-simulator/export"
)

func addr(b byte) types.Address {
	var a types.Address
	a[19] = b
	return a
}

func TestWriteLedgerProducesNonEmptyFile(t *testing.T) {
	label := types.NormalRound
	role := types.RoleLeader
	events := []types.FeeEvent{
		{
			SequenceID: 1,
			Address:    addr(1),
			RoundIndex: types.RoundIndexPtr(0),
			RoundLabel: &label,
			Role:       &role,
			Earned:     100,
		},
		{
			SequenceID: 2,
			Address:    addr(2),
			Staked:     types.DefaultStake,
		},
	}

	path := filepath.Join(t.TempDir(), "ledger.parquet")
	require.NoError(t, export.WriteLedger(path, events))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestWriteLedgerEmptyLogStillProducesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, export.WriteLedger(path, nil))

	_, err := os.Stat(path)
	require.NoError(t, err)
}
