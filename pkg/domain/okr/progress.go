package okr

import (
	"fmt"
	"math"
)

// RoundProgress rounds a progress percentage to two decimal places.
func RoundProgress(v float64) float64 {
	return math.Round(v*100) / 100
}

// ValidateProgress checks that a progress value lies inside 0-100.
func ValidateProgress(v float64) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("%w: %v", ErrInvalidProgressRange, v)
	}
	return nil
}

// Rollup derives a parent's progress as the arithmetic mean of its direct
// children's progress, rounded to two decimals. The second return value is
// false when there are no children, in which case the parent keeps its last
// derived value rather than being forced to zero.
//
// Rollup never inspects child statuses: a blocked child still contributes
// its last numeric progress.
func Rollup(children []float64) (float64, bool) {
	if len(children) == 0 {
		return 0, false
	}
	var sum float64
	for _, p := range children {
		sum += p
	}
	return RoundProgress(sum / float64(len(children))), true
}
