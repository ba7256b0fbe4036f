package types

import "github.com/holiman/uint256"

// ProportionalFloorDiv computes floor(numerator / denominator) by
// replicating the source's `* 10**18 // denominator // 10**18` scheme:
// scale up by FixedPointScale, floor-divide by the denominator, then
// floor-divide the scale back out. uint256 avoids any overflow risk when
// numerator is scaled by 1e18 before the division.
//
// Returns 0 when denominator is 0.
func ProportionalFloorDiv(numerator, denominator uint64) uint64 {
	if denominator == 0 {
		return 0
	}
	scale := uint256.NewInt(FixedPointScale)
	num := uint256.NewInt(numerator)
	den := uint256.NewInt(denominator)

	scaled := new(uint256.Int).Mul(num, scale)
	perUnit := new(uint256.Int).Div(scaled, den)
	result := new(uint256.Int).Div(perUnit, scale)
	return result.Uint64()
}
