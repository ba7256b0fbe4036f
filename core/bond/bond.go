// Package bond computes the appeal bond required to file an appeal
// against a given normal round.
package bond

import (
	"github.com/genlayerlabs/fee-simulator/core/errors"
	"github.com/genlayerlabs/fee-simulator/core/types"
)

// Amount returns the appeal bond owed by an appellant challenging the
// result of the normal round at transcript round index i (an even
// index; the appeal itself is round i+1). The bond is the full leader
// timeout plus validatorsTimeout for every member of the committee of
// the next normal round, whose size is ROUND_SIZES[i+2]. An odd or
// negative i, or one whose i+2 falls outside ROUND_SIZES, yields
// ErrInvalidRoundIndex.
//
// bond(i) = leaderTimeout + validatorsTimeout * ROUND_SIZES[i+2]
func Amount(i int, leaderTimeout, validatorsTimeout uint64) (uint64, error) {
	if i < 0 || i%2 != 0 || i+2 >= len(types.RoundSizes) {
		return 0, errors.ErrInvalidRoundIndex
	}
	size := types.RoundSizes[i+2]
	return leaderTimeout + validatorsTimeout*size, nil
}
