// Package aggregate provides read-only views over a completed
// transaction's event log: per-address and whole-transaction sums
// consumed by tests, the HTTP API, and any presentation layer.
package aggregate

import "github.com/genlayerlabs/fee-simulator/core/types"

// CurrentStake returns addr's current stake: total staked minus total
// slashed, floored at zero.
func CurrentStake(events []types.FeeEvent, addr types.Address) uint64 {
	var staked, slashed uint64
	for _, ev := range events {
		if ev.Address != addr {
			continue
		}
		staked += ev.Staked
		slashed += ev.Slashed
	}
	if slashed >= staked {
		return 0
	}
	return staked - slashed
}

// TotalCosts sums every cost event charged to addr.
func TotalCosts(events []types.FeeEvent, addr types.Address) uint64 {
	return sumWhere(events, addr, func(ev types.FeeEvent) uint64 { return ev.Cost })
}

// TotalEarnings sums every earned event credited to addr.
func TotalEarnings(events []types.FeeEvent, addr types.Address) uint64 {
	return sumWhere(events, addr, func(ev types.FeeEvent) uint64 { return ev.Earned })
}

// TotalBurnt sums every burned event charged to addr.
func TotalBurnt(events []types.FeeEvent, addr types.Address) uint64 {
	return sumWhere(events, addr, func(ev types.FeeEvent) uint64 { return ev.Burned })
}

// TotalSlashed sums every slashed event charged to addr.
func TotalSlashed(events []types.FeeEvent, addr types.Address) uint64 {
	return sumWhere(events, addr, func(ev types.FeeEvent) uint64 { return ev.Slashed })
}

// TotalBalance is addr's net position: earnings minus costs. It is
// signed because an address (typically the sender) may be a strict net
// payer.
func TotalBalance(events []types.FeeEvent, addr types.Address) int64 {
	return int64(TotalEarnings(events, addr)) - int64(TotalCosts(events, addr))
}

// AllZeros reports whether addr never appears with a non-zero monetary
// field anywhere in events.
func AllZeros(events []types.FeeEvent, addr types.Address) bool {
	for _, ev := range events {
		if ev.Address != addr {
			continue
		}
		if ev.Cost != 0 || ev.Staked != 0 || ev.Earned != 0 || ev.Slashed != 0 || ev.Burned != 0 {
			return false
		}
	}
	return true
}

// AggCosts, AggEarnings, AggBurnt, AggSlashed and AggStaked sum a
// monetary field over every address in the log, irrespective of who
// paid or received it.
func AggCosts(events []types.FeeEvent) uint64   { return aggField(events, func(ev types.FeeEvent) uint64 { return ev.Cost }) }
func AggEarnings(events []types.FeeEvent) uint64 { return aggField(events, func(ev types.FeeEvent) uint64 { return ev.Earned }) }
func AggBurnt(events []types.FeeEvent) uint64   { return aggField(events, func(ev types.FeeEvent) uint64 { return ev.Burned }) }
func AggSlashed(events []types.FeeEvent) uint64 { return aggField(events, func(ev types.FeeEvent) uint64 { return ev.Slashed }) }
func AggStaked(events []types.FeeEvent) uint64  { return aggField(events, func(ev types.FeeEvent) uint64 { return ev.Staked }) }

func sumWhere(events []types.FeeEvent, addr types.Address, field func(types.FeeEvent) uint64) uint64 {
	var total uint64
	for _, ev := range events {
		if ev.Address == addr {
			total += field(ev)
		}
	}
	return total
}

func aggField(events []types.FeeEvent, field func(types.FeeEvent) uint64) uint64 {
	var total uint64
	for _, ev := range events {
		total += field(ev)
	}
	return total
}
