package types

import "fmt"

// RoundLabel is the total, closed enumeration of semantic outcomes the
// round labeler may assign to a round. Making this a closed enum (rather
// than a free-form string, as the source used) lets the per-label
// transformer dispatch switch over a known set; its default case
// (ErrLabelDispatchMiss in core/feerules) is reached only by a value
// outside this enumeration.
type RoundLabel uint8

const (
	NormalRound RoundLabel = iota
	EmptyRound
	LeaderTimeout
	LeaderTimeout50Percent
	LeaderTimeout50PreviousAppealBond
	LeaderTimeout150PreviousNormalRound
	SkipRound
	AppealLeaderSuccessful
	AppealLeaderUnsuccessful
	AppealLeaderTimeoutSuccessful
	AppealLeaderTimeoutUnsuccessful
	AppealValidatorSuccessful
	AppealValidatorUnsuccessful
	SplitPreviousAppealBond
)

var roundLabelNames = map[RoundLabel]string{
	NormalRound:                          "NORMAL_ROUND",
	EmptyRound:                           "EMPTY_ROUND",
	LeaderTimeout:                        "LEADER_TIMEOUT",
	LeaderTimeout50Percent:               "LEADER_TIMEOUT_50_PERCENT",
	LeaderTimeout50PreviousAppealBond:    "LEADER_TIMEOUT_50_PREVIOUS_APPEAL_BOND",
	LeaderTimeout150PreviousNormalRound:  "LEADER_TIMEOUT_150_PREVIOUS_NORMAL_ROUND",
	SkipRound:                            "SKIP_ROUND",
	AppealLeaderSuccessful:               "APPEAL_LEADER_SUCCESSFUL",
	AppealLeaderUnsuccessful:             "APPEAL_LEADER_UNSUCCESSFUL",
	AppealLeaderTimeoutSuccessful:        "APPEAL_LEADER_TIMEOUT_SUCCESSFUL",
	AppealLeaderTimeoutUnsuccessful:      "APPEAL_LEADER_TIMEOUT_UNSUCCESSFUL",
	AppealValidatorSuccessful:            "APPEAL_VALIDATOR_SUCCESSFUL",
	AppealValidatorUnsuccessful:          "APPEAL_VALIDATOR_UNSUCCESSFUL",
	SplitPreviousAppealBond:              "SPLIT_PREVIOUS_APPEAL_BOND",
}

func (l RoundLabel) String() string {
	if name, ok := roundLabelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("RoundLabel(%d)", uint8(l))
}

// IsValid reports whether l is a member of the enumerated label set.
func (l RoundLabel) IsValid() bool {
	_, ok := roundLabelNames[l]
	return ok
}

func (l RoundLabel) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}
