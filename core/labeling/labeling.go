// Package labeling implements the two-pass round-labeling state machine:
// a first left-to-right pass assigns a preliminary label to every round,
// then a second pass rewrites context-sensitive label sequences that
// only resolve once neighbouring rounds are known.
package labeling

import "github.com/genlayerlabs/fee-simulator/core/types"

// Label classifies every round of results into exactly one RoundLabel,
// per the two-pass rules in core/labeling's package documentation. The
// returned slice has one entry per round, in round order.
func Label(results types.TransactionRoundResults) []types.RoundLabel {
	n := results.Len()
	labels := make([]types.RoundLabel, n)

	for i := 0; i < n; i++ {
		labels[i] = firstPass(results, labels, i)
	}
	secondPass(results, labels)
	return labels
}

func firstPass(results types.TransactionRoundResults, labels []types.RoundLabel, i int) types.RoundLabel {
	tail := results.Rounds[i].Tail()
	if tail.Len() == 0 {
		return types.EmptyRound
	}

	if i%2 == 0 {
		return firstPassNormal(results, i, tail)
	}
	return firstPassAppeal(results, labels, i)
}

func firstPassNormal(results types.TransactionRoundResults, i int, tail types.Rotation) types.RoundLabel {
	if i == 0 {
		if !leaderTimedOut(tail) {
			return types.NormalRound
		}
		if results.Len() == 1 {
			return types.LeaderTimeout50Percent
		}
		return types.LeaderTimeout
	}
	if leaderTimedOut(tail) {
		return types.LeaderTimeout
	}
	return types.NormalRound
}

func firstPassAppeal(results types.TransactionRoundResults, labels []types.RoundLabel, i int) types.RoundLabel {
	prevTail := results.Rounds[i-1].Tail()
	prevTimeout := leaderTimedOut(prevTail)

	hasNext := i+1 < results.Len()
	var nextTimeout, nextReceipt bool
	if hasNext {
		nextTail := results.Rounds[i+1].Tail()
		nextTimeout = leaderTimedOut(nextTail)
		nextReceipt = leaderReceipted(nextTail)
	}

	if prevTimeout {
		if hasNext && nextReceipt && !nextTimeout {
			return types.AppealLeaderTimeoutSuccessful
		}
		return types.AppealLeaderTimeoutUnsuccessful
	}

	prevUndetermined := voteMajority(prevTail) == resultUndetermined
	if prevUndetermined {
		nextUndetermined := true
		if hasNext {
			nextUndetermined = voteMajority(results.Rounds[i+1].Tail()) == resultUndetermined
		}
		if nextUndetermined {
			return types.AppealLeaderUnsuccessful
		}
		return types.AppealLeaderSuccessful
	}

	thisMajority := voteMajority(results.Rounds[i].Tail())
	ancestorMajority, found := nearestAncestorMajority(results, labels, i)
	if found && ancestorMajority != thisMajority {
		return types.AppealValidatorSuccessful
	}
	return types.AppealValidatorUnsuccessful
}

// nearestAncestorMajority walks back from i in steps of 2 over already
// labeled normal rounds, skipping empty and undetermined ones, and
// returns the first determined majority found.
func nearestAncestorMajority(results types.TransactionRoundResults, labels []types.RoundLabel, i int) (voteResult, bool) {
	for j := i - 1; j >= 0; j -= 2 {
		if labels[j] == types.EmptyRound {
			continue
		}
		m := voteMajority(results.Rounds[j].Tail())
		if m == resultUndetermined {
			continue
		}
		return m, true
	}
	return resultUndetermined, false
}

// secondPass rewrites context-sensitive label sequences once every
// round's preliminary label is known. Only appeal rounds (odd indices)
// trigger a rewrite, and only of their immediate neighbours.
func secondPass(results types.TransactionRoundResults, labels []types.RoundLabel) {
	n := len(labels)
	for i := 1; i < n; i += 2 {
		switch labels[i] {
		case types.AppealValidatorSuccessful:
			// The overturned normal round no longer pays out on its own;
			// the appeal transformer pays the merged committee instead.
			if i-1 >= 0 {
				labels[i-1] = types.SkipRound
			}

		case types.AppealValidatorUnsuccessful:
			if i-1 >= 0 && i+1 < n &&
				labels[i+1] == types.NormalRound &&
				voteMajority(results.Rounds[i-1].Tail()) == resultUndetermined {
				labels[i+1] = types.SplitPreviousAppealBond
			}

		case types.AppealLeaderTimeoutUnsuccessful:
			if i-1 >= 0 && i+1 < n &&
				labels[i-1] == types.LeaderTimeout && labels[i+1] == types.LeaderTimeout {
				labels[i-1] = types.LeaderTimeout50Percent
				labels[i+1] = types.LeaderTimeout50PreviousAppealBond
			}

		case types.AppealLeaderTimeoutSuccessful:
			if i-1 >= 0 && i+1 < n &&
				labels[i-1] == types.NormalRound && labels[i+1] == types.LeaderTimeout {
				labels[i-1] = types.SkipRound
				labels[i+1] = types.LeaderTimeout150PreviousNormalRound
			}
		}
	}
}

func leaderTimedOut(tail types.Rotation) bool {
	entry, ok := tail.Get(tail.Leader())
	return ok && entry.Vote.IsLeaderTimeout()
}

func leaderReceipted(tail types.Rotation) bool {
	entry, ok := tail.Get(tail.Leader())
	return ok && entry.Vote.IsLeaderReceipt()
}
