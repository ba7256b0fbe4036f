// Package pipeline orchestrates the full fee/reward/penalty/slashing
// computation: it threads one EventSequence and one append-only event
// list through stake initialisation, idle replacement, deterministic-
// violation slashing, round labeling, per-label transformation, and
// finally the sender refund.
package pipeline

import (
	"github.com/genlayerlabs/fee-simulator/core/bond"
	"github.com/genlayerlabs/fee-simulator/core/feerules"
	"github.com/genlayerlabs/fee-simulator/core/idleness"
	"github.com/genlayerlabs/fee-simulator/core/labeling"
	"github.com/genlayerlabs/fee-simulator/core/refund"
	"github.com/genlayerlabs/fee-simulator/core/slashing"
	"github.com/genlayerlabs/fee-simulator/core/types"
)

// ProcessTransaction runs the complete pipeline over a finished
// transcript and returns the append-only event log and the per-round
// labels assigned to it.
func ProcessTransaction(addresses []types.Address, results types.TransactionRoundResults, budget types.TransactionBudget) ([]types.FeeEvent, []types.RoundLabel, error) {
	seq := types.NewEventSequence()
	var events []types.FeeEvent

	for _, addr := range addresses {
		events = append(events, seq.Emit(types.FeeEvent{
			Address: addr,
			Staked:  types.DefaultStake,
		}))
	}

	cost, err := TotalTransactionCost(budget)
	if err != nil {
		return nil, nil, err
	}
	events = append(events, seq.Emit(types.FeeEvent{
		Address: budget.SenderAddress,
		Role:    types.RolePtrOf(types.RoleSender),
		Cost:    cost,
	}))

	effectiveResults, idleEvents := replaceIdleParticipants(seq, events, results)
	events = append(events, idleEvents...)

	for i, round := range effectiveResults.Rounds {
		events = append(events, slashing.Apply(seq, events, i, round.Tail())...)
	}

	labels := labeling.Label(effectiveResults)

	for i := range effectiveResults.Rounds {
		if types.IsAppealRound(i) {
			bondAmount, err := bond.Amount(i-1, budget.LeaderTimeout, budget.ValidatorsTimeout)
			if err != nil {
				return nil, nil, err
			}
			events = append(events, seq.Emit(types.FeeEvent{
				Address:    appellantFor(budget, i),
				RoundIndex: types.RoundIndexPtr(i),
				Role:       types.RolePtrOf(types.RoleAppealant),
				Cost:       bondAmount,
			}))
		}

		ruleEvents, err := feerules.Apply(feerules.Context{
			Results:    effectiveResults,
			RoundIndex: i,
			Budget:     budget,
			Seq:        seq,
		}, labels[i])
		if err != nil {
			return nil, nil, err
		}
		events = append(events, ruleEvents...)
	}

	refundAmount, err := refund.Compute(events, budget.SenderAddress)
	if err != nil {
		return nil, nil, err
	}
	events = append(events, seq.Emit(types.FeeEvent{
		Address: budget.SenderAddress,
		Role:    types.RolePtrOf(types.RoleSender),
		Earned:  refundAmount,
	}))

	return events, labels, nil
}

// replaceIdleParticipants applies idleness.Replace to every round's tail
// rotation, leaving predecessor rotations untouched, and returns the
// transcript with every tail rotation replaced by its idle-substituted
// equivalent.
func replaceIdleParticipants(seq *types.EventSequence, priorEvents []types.FeeEvent, results types.TransactionRoundResults) (types.TransactionRoundResults, []types.FeeEvent) {
	var allEmitted []types.FeeEvent
	rounds := make([]types.Round, len(results.Rounds))
	for i, round := range results.Rounds {
		effective, emitted := idleness.Replace(seq, priorEvents, i, round.Tail())
		allEmitted = append(allEmitted, emitted...)
		priorEvents = append(priorEvents, emitted...)

		rotations := append([]types.Rotation{}, round.Rotations[:len(round.Rotations)-1]...)
		rotations = append(rotations, effective)
		rounds[i] = types.Round{Rotations: rotations}
	}
	return types.TransactionRoundResults{Rounds: rounds}, allEmitted
}

func appellantFor(budget types.TransactionBudget, roundIndex int) types.Address {
	slot := uint64((roundIndex - 1) / 2)
	if appeal := budget.AppealAt(slot); appeal != nil {
		return appeal.Appellant
	}
	return types.Address{}
}
