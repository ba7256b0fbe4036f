package types

// RoundSizes enumerates committee sizes by round index; even indices are
// normal-round sizes, odd indices are appeal-round sizes.
var RoundSizes = []uint64{5, 7, 11, 13, 23, 25, 47, 49, 95, 97, 191, 193, 383, 385, 767, 769, 1000}

// PenaltyRewardCoefficient multiplies validatorsTimeout when burning the
// stake of minority voters.
const PenaltyRewardCoefficient = 1

// DefaultStake is the initial stake credited to every known address at
// the start of a transaction computation.
const DefaultStake = 2_000_000

// FixedPointScale is the scaling factor applied before floor-dividing in
// proportional splits, replicating the source's `* 10**18 // n // 10**18`
// scheme so event-for-event equality can be preserved exactly.
const FixedPointScale = 1_000_000_000_000_000_000
