package types

import "fmt"

// StakingDistribution names the budget's staking distribution.
// NewTransactionBudget requires a mean and variance for "normal" and
// rejects them for "constant". No pipeline stage reads this value: every
// address is seeded at DefaultStake (see core/pipeline) whichever
// distribution is set, and no stake is sampled.
type StakingDistribution uint8

const (
	StakingConstant StakingDistribution = iota
	StakingNormal
)

func (d StakingDistribution) String() string {
	if d == StakingNormal {
		return "normal"
	}
	return "constant"
}

// TransactionBudget carries the per-role timeouts and appeal-round shape
// for a transaction, plus the optional appeals actually filed.
type TransactionBudget struct {
	LeaderTimeout       uint64
	ValidatorsTimeout   uint64
	AppealRounds        uint64
	Rotations           []uint64 // len == AppealRounds+1; rotation count per normal round
	SenderAddress       Address
	Appeals             []*Appeal // len == AppealRounds; nil entry == no appeal filed for that slot
	StakingDistribution StakingDistribution
	StakingMean         *float64
	StakingVariance     *float64
}

// NewTransactionBudget validates the structural invariants the spec
// requires of a budget before any pipeline stage may assume it is
// well-formed.
func NewTransactionBudget(
	leaderTimeout, validatorsTimeout, appealRounds uint64,
	rotations []uint64,
	sender Address,
	appeals []*Appeal,
	distribution StakingDistribution,
	mean, variance *float64,
) (TransactionBudget, error) {
	if uint64(len(rotations)) != appealRounds+1 {
		return TransactionBudget{}, fmt.Errorf(
			"types: budget invariant violated: len(rotations)=%d must equal appealRounds+1=%d",
			len(rotations), appealRounds+1,
		)
	}
	if appeals != nil && uint64(len(appeals)) != appealRounds {
		return TransactionBudget{}, fmt.Errorf(
			"types: budget invariant violated: len(appeals)=%d must equal appealRounds=%d",
			len(appeals), appealRounds,
		)
	}
	switch distribution {
	case StakingConstant:
		if mean != nil || variance != nil {
			return TransactionBudget{}, fmt.Errorf("types: constant staking distribution forbids mean/variance")
		}
	case StakingNormal:
		if mean == nil || variance == nil {
			return TransactionBudget{}, fmt.Errorf("types: normal staking distribution requires mean and variance")
		}
	default:
		return TransactionBudget{}, fmt.Errorf("types: unknown staking distribution %d", distribution)
	}
	return TransactionBudget{
		LeaderTimeout:       leaderTimeout,
		ValidatorsTimeout:   validatorsTimeout,
		AppealRounds:        appealRounds,
		Rotations:           rotations,
		SenderAddress:       sender,
		Appeals:             appeals,
		StakingDistribution: distribution,
		StakingMean:         mean,
		StakingVariance:     variance,
	}, nil
}

// AppealAt returns the appeal filed for appeal-round slot k (0-indexed
// among appeal rounds, i.e. transcript round index 2k+1), or nil if none
// was filed.
func (b TransactionBudget) AppealAt(k uint64) *Appeal {
	if k >= uint64(len(b.Appeals)) {
		return nil
	}
	return b.Appeals[k]
}

// RotationsFor returns the configured rotation count for normal round
// index 2k.
func (b TransactionBudget) RotationsFor(k uint64) uint64 {
	if k >= uint64(len(b.Rotations)) {
		return 0
	}
	return b.Rotations[k]
}
