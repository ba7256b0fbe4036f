// Package feerules holds the thirteen per-label fee transformers: pure
// functions from a round's label and context to the FeeEvents that
// round emits. Dispatch is a total switch over the closed RoundLabel
// enum, grounded in the round-labeler's output.
package feerules

import (
	"github.com/genlayerlabs/fee-simulator/core/bond"
	"github.com/genlayerlabs/fee-simulator/core/errors"
	"github.com/genlayerlabs/fee-simulator/core/majority"
	"github.com/genlayerlabs/fee-simulator/core/types"
)

// Context carries everything a label transformer needs beyond the label
// itself: the full transcript (for neighbour lookups), the round being
// transformed, the transaction's budget, and the shared event sequence.
type Context struct {
	Results    types.TransactionRoundResults
	RoundIndex int
	Budget     types.TransactionBudget
	Seq        *types.EventSequence
}

const k = types.PenaltyRewardCoefficient

// Apply dispatches label to its transformer and returns the events it
// emits. Returns ErrLabelDispatchMiss if label is not a member of the
// enumerated set; this can only happen if the labeler produced an
// invalid value.
func Apply(ctx Context, label types.RoundLabel) ([]types.FeeEvent, error) {
	switch label {
	case types.NormalRound:
		return normalRound(ctx), nil
	case types.EmptyRound, types.SkipRound, types.LeaderTimeout:
		return nil, nil
	case types.LeaderTimeout50Percent:
		return leaderTimeout50Percent(ctx), nil
	case types.LeaderTimeout50PreviousAppealBond:
		return leaderTimeout50PreviousAppealBond(ctx)
	case types.LeaderTimeout150PreviousNormalRound:
		return leaderTimeout150PreviousNormalRound(ctx)
	case types.AppealLeaderSuccessful:
		return appealLeaderSuccessful(ctx)
	case types.AppealLeaderTimeoutSuccessful:
		return appealLeaderTimeoutSuccessful(ctx)
	case types.AppealLeaderUnsuccessful, types.AppealLeaderTimeoutUnsuccessful:
		return nil, nil
	case types.AppealValidatorSuccessful:
		return appealValidatorSuccessful(ctx)
	case types.AppealValidatorUnsuccessful:
		return appealValidatorUnsuccessful(ctx), nil
	case types.SplitPreviousAppealBond:
		return splitPreviousAppealBond(ctx)
	default:
		return nil, errors.ErrLabelDispatchMiss
	}
}

func (c Context) tail() types.Rotation {
	return c.Results.Rounds[c.RoundIndex].Tail()
}

func (c Context) emit(ev types.FeeEvent) types.FeeEvent {
	return c.Seq.Emit(ev)
}

// bondForAppealRound returns the bond posted when the appeal at this
// (odd) round index was filed, derived from the normal round it
// immediately follows.
func (c Context) bondForAppealRound() (uint64, error) {
	return bond.Amount(c.RoundIndex-1, c.Budget.LeaderTimeout, c.Budget.ValidatorsTimeout)
}

// bondForFollowingRound returns the bond posted by the appeal that
// immediately precedes this (even) round index.
func (c Context) bondForFollowingRound() (uint64, error) {
	return bond.Amount(c.RoundIndex-2, c.Budget.LeaderTimeout, c.Budget.ValidatorsTimeout)
}

func (c Context) appellant() types.Address {
	slot := uint64((c.RoundIndex - 1) / 2)
	if appeal := c.Budget.AppealAt(slot); appeal != nil {
		return appeal.Appellant
	}
	return types.Address{}
}

func normalRound(ctx Context) []types.FeeEvent {
	tail := ctx.tail()
	leader := tail.Leader()
	L := ctx.Budget.LeaderTimeout
	V := ctx.Budget.ValidatorsTimeout

	var events []types.FeeEvent
	events = append(events, ctx.emit(types.FeeEvent{
		Address:    leader,
		RoundIndex: types.RoundIndexPtr(ctx.RoundIndex),
		RoundLabel: types.LabelPtrOf(types.NormalRound),
		Role:       types.RolePtrOf(types.RoleLeader),
		Earned:     L,
	}))

	result := majority.VoteMajority(tail)
	if result == majority.Undetermined {
		for _, addr := range tail.Addresses() {
			events = append(events, ctx.emit(types.FeeEvent{
				Address:    addr,
				RoundIndex: types.RoundIndexPtr(ctx.RoundIndex),
				RoundLabel: types.LabelPtrOf(types.NormalRound),
				Role:       types.RolePtrOf(types.RoleValidator),
				Earned:     V,
			}))
		}
		return events
	}

	majAddrs, minAddrs := majority.WhoIsInVoteMajority(tail, result)
	for _, addr := range majAddrs {
		events = append(events, ctx.emit(types.FeeEvent{
			Address:    addr,
			RoundIndex: types.RoundIndexPtr(ctx.RoundIndex),
			RoundLabel: types.LabelPtrOf(types.NormalRound),
			Role:       types.RolePtrOf(types.RoleValidator),
			Earned:     V,
		}))
	}
	for _, addr := range minAddrs {
		events = append(events, ctx.emit(types.FeeEvent{
			Address:    addr,
			RoundIndex: types.RoundIndexPtr(ctx.RoundIndex),
			RoundLabel: types.LabelPtrOf(types.NormalRound),
			Role:       types.RolePtrOf(types.RoleValidator),
			Burned:     k * V,
		}))
	}
	return events
}

func leaderTimeout50Percent(ctx Context) []types.FeeEvent {
	tail := ctx.tail()
	return []types.FeeEvent{ctx.emit(types.FeeEvent{
		Address:    tail.Leader(),
		RoundIndex: types.RoundIndexPtr(ctx.RoundIndex),
		RoundLabel: types.LabelPtrOf(types.LeaderTimeout50Percent),
		Role:       types.RolePtrOf(types.RoleLeader),
		Earned:     ctx.Budget.LeaderTimeout / 2,
	})}
}

func leaderTimeout50PreviousAppealBond(ctx Context) ([]types.FeeEvent, error) {
	B, err := ctx.bondForFollowingRound()
	if err != nil {
		return nil, err
	}
	tail := ctx.tail()
	return []types.FeeEvent{
		ctx.emit(types.FeeEvent{
			Address:    tail.Leader(),
			RoundIndex: types.RoundIndexPtr(ctx.RoundIndex),
			RoundLabel: types.LabelPtrOf(types.LeaderTimeout50PreviousAppealBond),
			Role:       types.RolePtrOf(types.RoleLeader),
			Earned:     B / 2,
		}),
		ctx.emit(types.FeeEvent{
			Address:    ctx.Budget.SenderAddress,
			RoundIndex: types.RoundIndexPtr(ctx.RoundIndex),
			RoundLabel: types.LabelPtrOf(types.LeaderTimeout50PreviousAppealBond),
			Role:       types.RolePtrOf(types.RoleSender),
			Earned:     B / 2,
		}),
	}, nil
}

func leaderTimeout150PreviousNormalRound(ctx Context) ([]types.FeeEvent, error) {
	B, err := ctx.bondForFollowingRound()
	if err != nil {
		return nil, err
	}
	tail := ctx.tail()
	L := ctx.Budget.LeaderTimeout
	V := ctx.Budget.ValidatorsTimeout

	var events []types.FeeEvent
	events = append(events, ctx.emit(types.FeeEvent{
		Address:    tail.Leader(),
		RoundIndex: types.RoundIndexPtr(ctx.RoundIndex),
		RoundLabel: types.LabelPtrOf(types.LeaderTimeout150PreviousNormalRound),
		Role:       types.RolePtrOf(types.RoleLeader),
		Earned:     3 * L / 2,
	}))
	events = append(events, ctx.emit(types.FeeEvent{
		Address:    ctx.Budget.SenderAddress,
		RoundIndex: types.RoundIndexPtr(ctx.RoundIndex),
		RoundLabel: types.LabelPtrOf(types.LeaderTimeout150PreviousNormalRound),
		Role:       types.RolePtrOf(types.RoleSender),
		Earned:     L / 2,
	}))

	result := majority.VoteMajority(tail)
	if result == majority.Undetermined {
		for _, addr := range tail.Addresses() {
			events = append(events, ctx.emit(types.FeeEvent{
				Address:    addr,
				RoundIndex: types.RoundIndexPtr(ctx.RoundIndex),
				RoundLabel: types.LabelPtrOf(types.LeaderTimeout150PreviousNormalRound),
				Role:       types.RolePtrOf(types.RoleValidator),
				Earned:     V,
			}))
		}
		return events, nil
	}

	majAddrs, minAddrs := majority.WhoIsInVoteMajority(tail, result)
	bonus := types.ProportionalFloorDiv(B, uint64(len(majAddrs)))
	for _, addr := range majAddrs {
		events = append(events, ctx.emit(types.FeeEvent{
			Address:    addr,
			RoundIndex: types.RoundIndexPtr(ctx.RoundIndex),
			RoundLabel: types.LabelPtrOf(types.LeaderTimeout150PreviousNormalRound),
			Role:       types.RolePtrOf(types.RoleValidator),
			Earned:     V + bonus,
		}))
	}
	for _, addr := range minAddrs {
		events = append(events, ctx.emit(types.FeeEvent{
			Address:    addr,
			RoundIndex: types.RoundIndexPtr(ctx.RoundIndex),
			RoundLabel: types.LabelPtrOf(types.LeaderTimeout150PreviousNormalRound),
			Role:       types.RolePtrOf(types.RoleValidator),
			Burned:     k * V,
		}))
	}
	return events, nil
}

func appealLeaderSuccessful(ctx Context) ([]types.FeeEvent, error) {
	B, err := ctx.bondForAppealRound()
	if err != nil {
		return nil, err
	}
	return []types.FeeEvent{ctx.emit(types.FeeEvent{
		Address:    ctx.appellant(),
		RoundIndex: types.RoundIndexPtr(ctx.RoundIndex),
		RoundLabel: types.LabelPtrOf(types.AppealLeaderSuccessful),
		Role:       types.RolePtrOf(types.RoleAppealant),
		Earned:     B + ctx.Budget.LeaderTimeout,
	})}, nil
}

func appealLeaderTimeoutSuccessful(ctx Context) ([]types.FeeEvent, error) {
	B, err := ctx.bondForAppealRound()
	if err != nil {
		return nil, err
	}
	return []types.FeeEvent{ctx.emit(types.FeeEvent{
		Address:    ctx.appellant(),
		RoundIndex: types.RoundIndexPtr(ctx.RoundIndex),
		RoundLabel: types.LabelPtrOf(types.AppealLeaderTimeoutSuccessful),
		Role:       types.RolePtrOf(types.RoleAppealant),
		Earned:     B + ctx.Budget.LeaderTimeout/2,
	})}, nil
}

func appealValidatorSuccessful(ctx Context) ([]types.FeeEvent, error) {
	B, err := ctx.bondForAppealRound()
	if err != nil {
		return nil, err
	}
	V := ctx.Budget.ValidatorsTimeout

	var events []types.FeeEvent
	events = append(events, ctx.emit(types.FeeEvent{
		Address:    ctx.appellant(),
		RoundIndex: types.RoundIndexPtr(ctx.RoundIndex),
		RoundLabel: types.LabelPtrOf(types.AppealValidatorSuccessful),
		Role:       types.RolePtrOf(types.RoleAppealant),
		Earned:     B + ctx.Budget.LeaderTimeout,
	}))

	preceding := ctx.Results.Rounds[ctx.RoundIndex-1].Tail()
	merged := types.Rotation{Votes: append(append([]types.VoteEntry{}, preceding.Votes...), ctx.tail().Votes...)}
	result := majority.VoteMajority(merged)
	if result == majority.Undetermined {
		return events, nil
	}
	majAddrs, minAddrs := majority.WhoIsInVoteMajority(merged, result)
	for _, addr := range majAddrs {
		events = append(events, ctx.emit(types.FeeEvent{
			Address:    addr,
			RoundIndex: types.RoundIndexPtr(ctx.RoundIndex),
			RoundLabel: types.LabelPtrOf(types.AppealValidatorSuccessful),
			Role:       types.RolePtrOf(types.RoleValidator),
			Earned:     V,
		}))
	}
	for _, addr := range minAddrs {
		events = append(events, ctx.emit(types.FeeEvent{
			Address:    addr,
			RoundIndex: types.RoundIndexPtr(ctx.RoundIndex),
			RoundLabel: types.LabelPtrOf(types.AppealValidatorSuccessful),
			Role:       types.RolePtrOf(types.RoleValidator),
			Burned:     k * V,
		}))
	}
	return events, nil
}

func appealValidatorUnsuccessful(ctx Context) []types.FeeEvent {
	tail := ctx.tail()
	V := ctx.Budget.ValidatorsTimeout
	result := majority.VoteMajority(tail)

	var events []types.FeeEvent
	var earnedThisRound uint64
	if result != majority.Undetermined {
		majAddrs, minAddrs := majority.WhoIsInVoteMajority(tail, result)
		for _, addr := range majAddrs {
			earnedThisRound += V
			events = append(events, ctx.emit(types.FeeEvent{
				Address:    addr,
				RoundIndex: types.RoundIndexPtr(ctx.RoundIndex),
				RoundLabel: types.LabelPtrOf(types.AppealValidatorUnsuccessful),
				Role:       types.RolePtrOf(types.RoleValidator),
				Earned:     V,
			}))
		}
		for _, addr := range minAddrs {
			events = append(events, ctx.emit(types.FeeEvent{
				Address:    addr,
				RoundIndex: types.RoundIndexPtr(ctx.RoundIndex),
				RoundLabel: types.LabelPtrOf(types.AppealValidatorUnsuccessful),
				Role:       types.RolePtrOf(types.RoleValidator),
				Burned:     k * V,
			}))
		}
	}

	B, err := ctx.bondForAppealRound()
	if err != nil {
		return events
	}
	var burn uint64
	if B > earnedThisRound {
		burn = B - earnedThisRound
	}
	events = append(events, ctx.emit(types.FeeEvent{
		Address:    ctx.appellant(),
		RoundIndex: types.RoundIndexPtr(ctx.RoundIndex),
		RoundLabel: types.LabelPtrOf(types.AppealValidatorUnsuccessful),
		Role:       types.RolePtrOf(types.RoleAppealant),
		Burned:     burn,
	}))
	return events
}

func splitPreviousAppealBond(ctx Context) ([]types.FeeEvent, error) {
	B, err := ctx.bondForFollowingRound()
	if err != nil {
		return nil, err
	}
	tail := ctx.tail()
	L := ctx.Budget.LeaderTimeout
	S := uint64(0)
	if B > L {
		S = B - L
	}

	var events []types.FeeEvent
	events = append(events, ctx.emit(types.FeeEvent{
		Address:    tail.Leader(),
		RoundIndex: types.RoundIndexPtr(ctx.RoundIndex),
		RoundLabel: types.LabelPtrOf(types.SplitPreviousAppealBond),
		Role:       types.RolePtrOf(types.RoleLeader),
		Earned:     L,
	}))

	result := majority.VoteMajority(tail)
	if result == majority.Undetermined {
		share := types.ProportionalFloorDiv(S, uint64(tail.Len()))
		for _, addr := range tail.Addresses() {
			events = append(events, ctx.emit(types.FeeEvent{
				Address:    addr,
				RoundIndex: types.RoundIndexPtr(ctx.RoundIndex),
				RoundLabel: types.LabelPtrOf(types.SplitPreviousAppealBond),
				Role:       types.RolePtrOf(types.RoleValidator),
				Earned:     share,
			}))
		}
		return events, nil
	}

	majAddrs, minAddrs := majority.WhoIsInVoteMajority(tail, result)
	share := types.ProportionalFloorDiv(B, uint64(len(majAddrs)))
	for _, addr := range majAddrs {
		events = append(events, ctx.emit(types.FeeEvent{
			Address:    addr,
			RoundIndex: types.RoundIndexPtr(ctx.RoundIndex),
			RoundLabel: types.LabelPtrOf(types.SplitPreviousAppealBond),
			Role:       types.RolePtrOf(types.RoleValidator),
			Earned:     share,
		}))
	}
	for _, addr := range minAddrs {
		events = append(events, ctx.emit(types.FeeEvent{
			Address:    addr,
			RoundIndex: types.RoundIndexPtr(ctx.RoundIndex),
			RoundLabel: types.LabelPtrOf(types.SplitPreviousAppealBond),
			Role:       types.RolePtrOf(types.RoleValidator),
			Burned:     k * ctx.Budget.ValidatorsTimeout,
		}))
	}
	return events, nil
}
