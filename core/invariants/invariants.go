// Package invariants checks the quantified properties a completed
// transaction computation must satisfy. Each check is a pure function
// over the event log (and, where relevant, the labels and round count)
// returning a descriptive error on violation.
package invariants

import (
	"fmt"

	"github.com/genlayerlabs/fee-simulator/core/aggregate"
	"github.com/genlayerlabs/fee-simulator/core/types"
)

// conservationTolerance accommodates floor-division artefacts in
// proportional splits.
const conservationTolerance = 5

// Conservation checks P1: total costs equal total earnings plus the
// burns charged to appellants, within conservationTolerance.
func Conservation(events []types.FeeEvent) error {
	costs := aggregate.AggCosts(events)
	earned := aggregate.AggEarnings(events)
	var appealantBurn uint64
	for _, ev := range events {
		if ev.Role != nil && *ev.Role == types.RoleAppealant {
			appealantBurn += ev.Burned
		}
	}
	diff := int64(costs) - int64(earned) - int64(appealantBurn)
	if diff < 0 {
		diff = -diff
	}
	if diff > conservationTolerance {
		return fmt.Errorf("invariants: conservation violated: costs=%d earned=%d appealant_burn=%d diff=%d", costs, earned, appealantBurn, diff)
	}
	return nil
}

// NoFreeBurn checks P2: total burned never reaches or exceeds total
// costs.
func NoFreeBurn(events []types.FeeEvent) error {
	burned := aggregate.AggBurnt(events)
	costs := aggregate.AggCosts(events)
	if burned >= costs {
		return fmt.Errorf("invariants: no-free-burn violated: burned=%d costs=%d", burned, costs)
	}
	return nil
}

// PartySafety checks P3 for a single honest-party address: its earnings
// never exceed its costs. Callers should invoke this for the sender and
// every appellant address; it is not meaningful for validator addresses,
// which are expected to be net-positive when they do work.
func PartySafety(events []types.FeeEvent, addr types.Address) error {
	costs := aggregate.TotalCosts(events, addr)
	earned := aggregate.TotalEarnings(events, addr)
	if earned > costs {
		return fmt.Errorf("invariants: party safety violated for %s: earned=%d costs=%d", addr, earned, costs)
	}
	return nil
}

// SequenceDensity checks P4: sequence ids form a contiguous range
// starting at 1.
func SequenceDensity(events []types.FeeEvent) error {
	seen := make(map[uint64]bool, len(events))
	for _, ev := range events {
		seen[ev.SequenceID] = true
	}
	for i := uint64(1); i <= uint64(len(events)); i++ {
		if !seen[i] {
			return fmt.Errorf("invariants: sequence density violated: missing id %d", i)
		}
	}
	return nil
}

// LabelTotality checks P5: one label per round, every label valid.
func LabelTotality(labels []types.RoundLabel, roundCount int) error {
	if len(labels) != roundCount {
		return fmt.Errorf("invariants: label totality violated: %d labels for %d rounds", len(labels), roundCount)
	}
	for i, l := range labels {
		if !l.IsValid() {
			return fmt.Errorf("invariants: label totality violated: round %d has invalid label %v", i, l)
		}
	}
	return nil
}

// StakeNonNegativity checks P6: for every address, every prefix of the
// event log leaves its current stake non-negative. Because current
// stake is computed as staked-minus-slashed floored at zero by
// construction, this check instead verifies no prefix ever required
// slashing beyond what had been staked.
func StakeNonNegativity(events []types.FeeEvent) error {
	staked := make(map[types.Address]uint64)
	slashed := make(map[types.Address]uint64)
	for i, ev := range events {
		staked[ev.Address] += ev.Staked
		slashed[ev.Address] += ev.Slashed
		if slashed[ev.Address] > staked[ev.Address] {
			return fmt.Errorf("invariants: stake non-negativity violated for %s at event %d (index %d)", ev.Address, ev.SequenceID, i)
		}
	}
	return nil
}

// LabelEmissionConsistency checks P7: every event carrying a non-nil
// round label matches the label the labeler assigned to that round.
func LabelEmissionConsistency(events []types.FeeEvent, labels []types.RoundLabel) error {
	for _, ev := range events {
		if ev.RoundLabel == nil || ev.RoundIndex == nil {
			continue
		}
		idx := *ev.RoundIndex
		if idx < 0 || idx >= len(labels) {
			return fmt.Errorf("invariants: label-emission consistency violated: event %d has out-of-range round_index %d", ev.SequenceID, idx)
		}
		if *ev.RoundLabel != labels[idx] {
			return fmt.Errorf("invariants: label-emission consistency violated: event %d carries %v but round %d is labeled %v", ev.SequenceID, *ev.RoundLabel, idx, labels[idx])
		}
	}
	return nil
}

// CheckAll runs every property check and returns the first violation
// encountered, or nil if the computation satisfies all of them.
func CheckAll(events []types.FeeEvent, labels []types.RoundLabel, roundCount int, honestParties []types.Address) error {
	checks := []func() error{
		func() error { return Conservation(events) },
		func() error { return NoFreeBurn(events) },
		func() error { return SequenceDensity(events) },
		func() error { return LabelTotality(labels, roundCount) },
		func() error { return StakeNonNegativity(events) },
		func() error { return LabelEmissionConsistency(events, labels) },
	}
	for _, addr := range honestParties {
		addr := addr
		checks = append(checks, func() error { return PartySafety(events, addr) })
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}
