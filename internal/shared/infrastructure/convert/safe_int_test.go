package convert

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt64ToInt(t *testing.T) {
	t.Run("converts in range values", func(t *testing.T) {
		for _, v := range []int64{0, 1, -1, math.MaxInt32, math.MinInt32} {
			result, err := Int64ToInt(v)
			require.NoError(t, err)
			assert.Equal(t, int(v), result)
		}
	})

	t.Run("converts the int bounds", func(t *testing.T) {
		result, err := Int64ToInt(math.MaxInt)
		require.NoError(t, err)
		assert.Equal(t, math.MaxInt, result)
	})
}

func TestIntToUint32Clamped(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want uint32
	}{
		{name: "zero", in: 0, want: 0},
		{name: "positive", in: 3, want: 3},
		{name: "negative clamps to zero", in: -5, want: 0},
		{name: "max uint32", in: math.MaxUint32, want: math.MaxUint32},
		{name: "above max clamps", in: math.MaxUint32 + 1, want: math.MaxUint32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntToUint32Clamped(tt.in))
		})
	}
}
