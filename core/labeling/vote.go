package labeling

import (
	"github.com/genlayerlabs/fee-simulator/core/majority"
	"github.com/genlayerlabs/fee-simulator/core/types"
)

type voteResult = majority.Result

const resultUndetermined = majority.Undetermined

func voteMajority(tail types.Rotation) voteResult {
	return majority.VoteMajority(tail)
}
