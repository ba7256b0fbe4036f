package types

import "fmt"

// VoteTag is the plain tag carried by a vote once any wrapping shape has
// been normalised away.
type VoteTag uint8

const (
	TagAgree VoteTag = iota
	TagDisagree
	TagTimeout
	TagIdle
	TagNA
)

func (t VoteTag) String() string {
	switch t {
	case TagAgree:
		return "AGREE"
	case TagDisagree:
		return "DISAGREE"
	case TagTimeout:
		return "TIMEOUT"
	case TagIdle:
		return "IDLE"
	case TagNA:
		return "NA"
	default:
		return fmt.Sprintf("VoteTag(%d)", uint8(t))
	}
}

// VoteKind distinguishes the four variant shapes the source's dynamic
// vote values (plain string / two-element list / three-element list) can
// take. Replacing the isinstance branching with a closed Kind enum is the
// re-architecture called for when translating this vote model into Go.
type VoteKind uint8

const (
	// KindPlain is a bare tag vote: AGREE, DISAGREE, TIMEOUT, IDLE, or NA.
	KindPlain VoteKind = iota
	// KindValidatorWithHash pairs a tag with the validator's reported hash.
	KindValidatorWithHash
	// KindLeaderReceipt carries the leader's own vote tag plus an optional hash.
	KindLeaderReceipt
	// KindLeaderTimeout marks a leader that failed to produce a receipt.
	KindLeaderTimeout
)

// Vote is the tagged-variant representation of a rotation participant's
// ballot. Exactly one of the four Kind shapes applies at a time.
type Vote struct {
	Kind VoteKind
	Tag  VoteTag
	Hash Hash
}

// NewPlainVote constructs a bare-tag vote.
func NewPlainVote(tag VoteTag) Vote {
	return Vote{Kind: KindPlain, Tag: tag}
}

// NewValidatorWithHashVote constructs a validator vote carrying a hash.
func NewValidatorWithHashVote(tag VoteTag, hash Hash) Vote {
	return Vote{Kind: KindValidatorWithHash, Tag: tag, Hash: hash}
}

// NewLeaderReceiptVote constructs a leader's receipt: its own vote tag
// plus the hash it reports, if any.
func NewLeaderReceiptVote(tag VoteTag, hash Hash) Vote {
	return Vote{Kind: KindLeaderReceipt, Tag: tag, Hash: hash}
}

// NewLeaderTimeoutVote constructs the sentinel vote for a leader that
// never produced a receipt.
func NewLeaderTimeoutVote() Vote {
	return Vote{Kind: KindLeaderTimeout, Tag: TagNA}
}

// Normalize collapses any wrapping shape to the plain tag used by the
// majority engine: a leader receipt normalises to the leader's own tag, a
// leader timeout normalises to NA.
func (v Vote) Normalize() VoteTag {
	switch v.Kind {
	case KindLeaderTimeout:
		return TagNA
	default:
		return v.Tag
	}
}

// HashOrDefault returns the hash carried by the vote, or DefaultHash if
// the vote's shape does not carry one.
func (v Vote) HashOrDefault() Hash {
	switch v.Kind {
	case KindValidatorWithHash, KindLeaderReceipt:
		if v.Hash == "" {
			return DefaultHash
		}
		return v.Hash
	default:
		return DefaultHash
	}
}

// IsIdle reports whether the vote normalises to IDLE.
func (v Vote) IsIdle() bool {
	return v.Normalize() == TagIdle
}

// IsLeaderTimeout reports whether this is the ⟨LEADER_TIMEOUT, NA⟩ shape.
func (v Vote) IsLeaderTimeout() bool {
	return v.Kind == KindLeaderTimeout
}

// IsLeaderReceipt reports whether this is a leader-receipt shape.
func (v Vote) IsLeaderReceipt() bool {
	return v.Kind == KindLeaderReceipt
}
