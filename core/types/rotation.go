package types

import "fmt"

// VoteEntry pairs an address with its cast vote inside a Rotation. Slices
// of VoteEntry preserve insertion order, which Go maps do not guarantee;
// order matters here because the first entry is the rotation's leader.
type VoteEntry struct {
	Address Address
	Vote    Vote
}

// Rotation is one attempt by a committee to finalise a round: an ordered
// list of votes (the first entry is the leader) plus a disjoint list of
// pre-committed reserve votes used to substitute idle participants.
type Rotation struct {
	Votes    []VoteEntry
	Reserves []VoteEntry
}

// NewRotation builds a Rotation from ordered votes and reserves. The
// caller supplies votes in leader-first order; NewRotation does not
// reorder them.
func NewRotation(votes []VoteEntry, reserves []VoteEntry) (Rotation, error) {
	if len(votes) == 0 {
		return Rotation{}, fmt.Errorf("types: rotation must have at least one voter")
	}
	seen := make(map[Address]struct{}, len(votes))
	for _, entry := range votes {
		if _, dup := seen[entry.Address]; dup {
			return Rotation{}, fmt.Errorf("types: duplicate voter %s in rotation", entry.Address)
		}
		seen[entry.Address] = struct{}{}
	}
	for _, entry := range reserves {
		if _, dup := seen[entry.Address]; dup {
			return Rotation{}, fmt.Errorf("types: reserve %s overlaps an original voter", entry.Address)
		}
	}
	return Rotation{Votes: votes, Reserves: reserves}, nil
}

// Leader returns the rotation's leader, i.e. the first keyed voter.
func (r Rotation) Leader() Address {
	if len(r.Votes) == 0 {
		return Address{}
	}
	return r.Votes[0].Address
}

// Len reports the number of cast votes (excluding unused reserves).
func (r Rotation) Len() int {
	return len(r.Votes)
}

// Get returns the vote cast by addr, if any.
func (r Rotation) Get(addr Address) (Vote, bool) {
	for _, entry := range r.Votes {
		if entry.Address == addr {
			return entry.Vote, true
		}
	}
	return Vote{}, false
}

// Addresses returns the addresses of every cast vote, leader first.
func (r Rotation) Addresses() []Address {
	out := make([]Address, len(r.Votes))
	for i, entry := range r.Votes {
		out[i] = entry.Address
	}
	return out
}

// Round is a non-empty sequence of rotations; the tail rotation is
// authoritative for labeling and fee effects, predecessors exist only to
// account for rotation cost.
type Round struct {
	Rotations []Rotation
}

// NewRound validates that a round carries at least one rotation.
func NewRound(rotations []Rotation) (Round, error) {
	if len(rotations) == 0 {
		return Round{}, fmt.Errorf("types: round must have at least one rotation")
	}
	return Round{Rotations: rotations}, nil
}

// Tail returns the authoritative, last rotation of the round.
func (r Round) Tail() Rotation {
	return r.Rotations[len(r.Rotations)-1]
}

// TransactionRoundResults is the ordered list of rounds produced by one
// transaction's execution. Index 0 is always a normal round; thereafter
// even indices are normal rounds and odd indices are appeal rounds.
type TransactionRoundResults struct {
	Rounds []Round
}

// NewTransactionRoundResults validates a non-empty round sequence.
func NewTransactionRoundResults(rounds []Round) (TransactionRoundResults, error) {
	if len(rounds) == 0 {
		return TransactionRoundResults{}, fmt.Errorf("types: transaction must have at least one round")
	}
	return TransactionRoundResults{Rounds: rounds}, nil
}

// Len reports the number of rounds.
func (t TransactionRoundResults) Len() int {
	return len(t.Rounds)
}

// IsAppealRound reports whether round index i is an (odd) appeal round.
func IsAppealRound(i int) bool {
	return i%2 == 1
}

// IsNormalRound reports whether round index i is an (even) normal round.
func IsNormalRound(i int) bool {
	return i%2 == 0
}

// Appeal carries the appellant address challenging the outcome of the
// preceding normal round. Its bond amount is derived (see core/bond), not
// stored on the appeal itself.
type Appeal struct {
	Appellant Address
}

// NewAppeal is the smart constructor validating the appellant address.
func NewAppeal(appellant string) (Appeal, error) {
	addr, err := ParseAddress(appellant)
	if err != nil {
		return Appeal{}, fmt.Errorf("types: invalid appeal: %w", err)
	}
	return Appeal{Appellant: addr}, nil
}
