package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/ethereum/go-ethereum/common"
)

// addressPattern matches the canonical 20-byte hex address format used
// throughout the ledger: 0x followed by exactly 40 hex characters.
var addressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// hashPattern matches opaque vote/rotation hashes: 0x followed by one or
// more hex characters (no fixed length, unlike Address).
var hashPattern = regexp.MustCompile(`^0x[a-fA-F0-9]+$`)

// Address is an opaque 20-byte participant identifier. It is compared by
// value; insertion order of any containing map, not address ordering,
// carries meaning (e.g. a Rotation's leader is its first key).
type Address [20]byte

// ParseAddress is the smart constructor for Address: it enforces the
// canonical regex at construction time so every downstream consumer may
// assume well-formed input, per the source's Pydantic-validator pattern.
func ParseAddress(s string) (Address, error) {
	if !addressPattern.MatchString(s) {
		return Address{}, fmt.Errorf("types: malformed address %q: must match %s", s, addressPattern.String())
	}
	var addr Address
	copy(addr[:], common.HexToAddress(s).Bytes())
	return addr, nil
}

// MustParseAddress is ParseAddress for call sites (tests, fixtures) that
// can assume a hard-coded literal is well-formed.
func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

// String renders the canonical "0x" + 40 lowercase hex characters form.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// IsZero reports whether the address is the all-zero sentinel.
func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Hash is an opaque vote/round-transcript digest matching `0x[0-9a-fA-F]+`.
type Hash string

// DefaultHash is the sentinel standing for "no hash supplied" on a vote.
const DefaultHash Hash = ""

// ParseHash validates a non-empty hash literal against the hash regex.
// An empty string is accepted and normalised to DefaultHash.
func ParseHash(s string) (Hash, error) {
	if s == "" {
		return DefaultHash, nil
	}
	if !hashPattern.MatchString(s) {
		return "", fmt.Errorf("types: malformed hash %q: must match %s", s, hashPattern.String())
	}
	return Hash(s), nil
}

// IsDefault reports whether h is the "no hash supplied" sentinel.
func (h Hash) IsDefault() bool {
	return h == DefaultHash
}
