package fem

import "github.com/ahasztag/hal-nordic/pkg/hal"

// TxPowerSplit divides a requested over-the-air power between the radio
// stage output and the FEM gain contribution. Both are hardware
// representable values that can be applied directly.
type TxPowerSplit struct {
	RadioTxPower int8 // dBm applied to the radio peripheral
	FEMGain      int8 // dB contributed by the front-end module
}

// Total returns the resulting over-the-air power in dBm.
func (s TxPowerSplit) Total() int8 {
	return s.RadioTxPower + s.FEMGain
}

// SplitPower selects the achievable (radio power, FEM gain) combination for
// the given profile whose sum is closest to the requested power without
// exceeding it. Pure and deterministic, no hardware side effects.
//
// When the request is above the maximum achievable sum the maximum split is
// returned, below the minimum the minimum split, both with ErrOutOfRange;
// the split is valid either way and callers may apply it directly.
func SplitPower(fe hal.FrontEnd, requested int8) (TxPowerSplit, error) {
	radio := fe.RadioPowers()
	if len(radio) == 0 {
		radio = []int8{0}
	}
	gains := fe.GainModes()
	if len(gains) == 0 {
		gains = []int8{0}
	}

	var (
		best, min, max TxPowerSplit
		haveBest       bool
	)
	min = TxPowerSplit{RadioTxPower: radio[0], FEMGain: gains[0]}
	max = min

	for _, g := range gains {
		for _, r := range radio {
			s := TxPowerSplit{RadioTxPower: r, FEMGain: g}
			total := int(r) + int(g)
			if total < int(min.Total()) {
				min = s
			}
			if total > int(max.Total()) {
				max = s
			}
			if total > int(requested) {
				continue
			}
			// Ties prefer the higher radio stage, which keeps the result
			// deterministic regardless of table ordering.
			if !haveBest || total > int(best.Total()) ||
				(total == int(best.Total()) && r > best.RadioTxPower) {
				best = s
				haveBest = true
			}
		}
	}

	if !haveBest {
		// Requested power below anything achievable.
		return min, ErrOutOfRange
	}
	if int(requested) > int(max.Total()) {
		return max, ErrOutOfRange
	}
	return best, nil
}
