package feeapi

import "github.com/genlayerlabs/fee-simulator/core/types"

// VoteDTO is the wire shape of one vote, discriminated by Kind.
type VoteDTO struct {
	Kind string `json:"kind"` // "plain", "validator_with_hash", "leader_receipt", "leader_timeout"
	Tag  string `json:"tag,omitempty"`
	Hash string `json:"hash,omitempty"`
}

func (v VoteDTO) toVote() (types.Vote, error) {
	var tag types.VoteTag
	switch v.Tag {
	case "AGREE":
		tag = types.TagAgree
	case "DISAGREE":
		tag = types.TagDisagree
	case "TIMEOUT":
		tag = types.TagTimeout
	case "IDLE":
		tag = types.TagIdle
	case "", "NA":
		tag = types.TagNA
	}

	hash, err := types.ParseHash(v.Hash)
	if err != nil {
		return types.Vote{}, err
	}

	switch v.Kind {
	case "leader_timeout":
		return types.NewLeaderTimeoutVote(), nil
	case "leader_receipt":
		return types.NewLeaderReceiptVote(tag, hash), nil
	case "validator_with_hash":
		return types.NewValidatorWithHashVote(tag, hash), nil
	default:
		return types.NewPlainVote(tag), nil
	}
}

// VoteEntryDTO pairs an address with its vote, preserving array order
// (the first entry is the rotation's leader).
type VoteEntryDTO struct {
	Address string  `json:"address"`
	Vote    VoteDTO `json:"vote"`
}

type RotationDTO struct {
	Votes    []VoteEntryDTO `json:"votes"`
	Reserves []VoteEntryDTO `json:"reserves,omitempty"`
}

func (r RotationDTO) toRotation() (types.Rotation, error) {
	votes, err := toVoteEntries(r.Votes)
	if err != nil {
		return types.Rotation{}, err
	}
	reserves, err := toVoteEntries(r.Reserves)
	if err != nil {
		return types.Rotation{}, err
	}
	return types.NewRotation(votes, reserves)
}

func toVoteEntries(in []VoteEntryDTO) ([]types.VoteEntry, error) {
	out := make([]types.VoteEntry, len(in))
	for i, entry := range in {
		addr, err := types.ParseAddress(entry.Address)
		if err != nil {
			return nil, err
		}
		vote, err := entry.Vote.toVote()
		if err != nil {
			return nil, err
		}
		out[i] = types.VoteEntry{Address: addr, Vote: vote}
	}
	return out, nil
}

type RoundDTO struct {
	Rotations []RotationDTO `json:"rotations"`
}

type AppealDTO struct {
	Appellant string `json:"appellant"`
}

type BudgetDTO struct {
	LeaderTimeout     uint64      `json:"leader_timeout"`
	ValidatorsTimeout uint64      `json:"validators_timeout"`
	AppealRounds      uint64      `json:"appeal_rounds"`
	Rotations         []uint64    `json:"rotations"`
	SenderAddress     string      `json:"sender_address"`
	Appeals           []*AppealDTO `json:"appeals,omitempty"`
}

func (b BudgetDTO) toBudget() (types.TransactionBudget, error) {
	sender, err := types.ParseAddress(b.SenderAddress)
	if err != nil {
		return types.TransactionBudget{}, err
	}
	var appeals []*types.Appeal
	if b.Appeals != nil {
		appeals = make([]*types.Appeal, len(b.Appeals))
		for i, a := range b.Appeals {
			if a == nil {
				continue
			}
			appeal, err := types.NewAppeal(a.Appellant)
			if err != nil {
				return types.TransactionBudget{}, err
			}
			appeals[i] = &appeal
		}
	}
	return types.NewTransactionBudget(
		b.LeaderTimeout, b.ValidatorsTimeout, b.AppealRounds,
		b.Rotations, sender, appeals,
		types.StakingConstant, nil, nil,
	)
}

// SubmitTransactionRequest is the POST /v1/transactions body.
type SubmitTransactionRequest struct {
	Addresses []string   `json:"addresses"`
	Rounds    []RoundDTO `json:"rounds"`
	Budget    BudgetDTO  `json:"budget"`
}

// FeeEventDTO is the wire projection of one types.FeeEvent.
type FeeEventDTO struct {
	SequenceID uint64 `json:"sequence_id"`
	Address    string `json:"address"`
	RoundIndex *int   `json:"round_index,omitempty"`
	RoundLabel string `json:"round_label,omitempty"`
	Role       string `json:"role,omitempty"`
	Cost       uint64 `json:"cost,omitempty"`
	Staked     uint64 `json:"staked,omitempty"`
	Earned     uint64 `json:"earned,omitempty"`
	Slashed    uint64 `json:"slashed,omitempty"`
	Burned     uint64 `json:"burned,omitempty"`
}

func toEventDTO(ev types.FeeEvent) FeeEventDTO {
	dto := FeeEventDTO{
		SequenceID: ev.SequenceID,
		Address:    ev.Address.String(),
		RoundIndex: ev.RoundIndex,
		Cost:       ev.Cost,
		Staked:     ev.Staked,
		Earned:     ev.Earned,
		Slashed:    ev.Slashed,
		Burned:     ev.Burned,
	}
	if ev.RoundLabel != nil {
		dto.RoundLabel = ev.RoundLabel.String()
	}
	if ev.Role != nil {
		dto.Role = ev.Role.String()
	}
	return dto
}

// SubmitTransactionResponse is the POST /v1/transactions response.
type SubmitTransactionResponse struct {
	RunID  string        `json:"run_id"`
	Events []FeeEventDTO `json:"events"`
	Labels []string      `json:"labels"`
}
