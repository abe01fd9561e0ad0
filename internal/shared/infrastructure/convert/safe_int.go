// Package convert provides safe integer conversions.
package convert

import (
	"fmt"
	"math"
)

// Int64ToInt converts v to int, returning an error if it does not fit.
func Int64ToInt(v int64) (int, error) {
	if v > math.MaxInt || v < math.MinInt {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int", v)
	}
	return int(v), nil
}

// IntToUint32Clamped converts v to uint32, clamping to [0, MaxUint32].
func IntToUint32Clamped(v int) uint32 {
	if v < 0 {
		return 0
	}
	if uint64(v) > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
