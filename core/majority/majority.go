// Package majority computes vote-majority and hash-majority outcomes
// over a rotation, and partitions a rotation's addresses into majority
// and minority sets for either notion.
package majority

import "github.com/genlayerlabs/fee-simulator/core/types"

// Result is the outcome of a vote-majority computation over a rotation.
type Result uint8

const (
	Agree Result = iota
	Timeout
	Undetermined
)

func (r Result) String() string {
	switch r {
	case Agree:
		return "AGREE"
	case Timeout:
		return "TIMEOUT"
	default:
		return "UNDETERMINED"
	}
}

// threshold returns ⌊n/2⌋ + 1, the supermajority count required to
// decide a rotation of size n.
func threshold(n int) int {
	return n/2 + 1
}

// VoteMajority computes the vote-majority outcome of rotation r. A
// DISAGREE supermajority collapses to Undetermined: disagreement is, by
// construction, not a positive outcome.
func VoteMajority(r types.Rotation) Result {
	n := r.Len()
	if n == 0 {
		return Undetermined
	}
	tau := threshold(n)
	counts := map[types.VoteTag]int{}
	for _, entry := range r.Votes {
		counts[entry.Vote.Normalize()]++
	}
	if counts[types.TagAgree] >= tau {
		return Agree
	}
	if counts[types.TagTimeout] >= tau {
		return Timeout
	}
	return Undetermined
}

// HashMajority returns the hash carried by at least ⌊n/2⌋+1 non-default
// hashes in the rotation, and whether such a majority exists.
func HashMajority(r types.Rotation) (types.Hash, bool) {
	n := r.Len()
	if n == 0 {
		return types.DefaultHash, false
	}
	tau := threshold(n)
	counts := map[types.Hash]int{}
	for _, entry := range r.Votes {
		h := entry.Vote.HashOrDefault()
		if h.IsDefault() {
			continue
		}
		counts[h]++
	}
	for hash, count := range counts {
		if count >= tau {
			return hash, true
		}
	}
	return types.DefaultHash, false
}

// WhoIsInVoteMajority partitions the rotation's addresses into the vote
// majority and the vote minority, using normalised tags. An address is
// counted toward whichever result m matches its normalised tag; all
// others are minority.
func WhoIsInVoteMajority(r types.Rotation, m Result) (majorityAddrs, minorityAddrs []types.Address) {
	for _, entry := range r.Votes {
		tag := entry.Vote.Normalize()
		if resultMatchesTag(m, tag) {
			majorityAddrs = append(majorityAddrs, entry.Address)
		} else {
			minorityAddrs = append(minorityAddrs, entry.Address)
		}
	}
	return majorityAddrs, minorityAddrs
}

func resultMatchesTag(m Result, tag types.VoteTag) bool {
	switch m {
	case Agree:
		return tag == types.TagAgree
	case Timeout:
		return tag == types.TagTimeout
	default:
		return false
	}
}

// WhoIsInHashMajority partitions the rotation's non-idle addresses into
// those carrying hash h and those that do not.
func WhoIsInHashMajority(r types.Rotation, h types.Hash) (majorityAddrs, minorityAddrs []types.Address) {
	for _, entry := range r.Votes {
		if entry.Vote.IsIdle() {
			continue
		}
		if entry.Vote.HashOrDefault() == h && !h.IsDefault() {
			majorityAddrs = append(majorityAddrs, entry.Address)
		} else {
			minorityAddrs = append(minorityAddrs, entry.Address)
		}
	}
	return majorityAddrs, minorityAddrs
}
