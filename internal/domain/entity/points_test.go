package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
)

func score(v int64) *int64 { return &v }

func TestComputeAwardedPoints(t *testing.T) {
	testCases := []struct {
		name     string
		base     int64
		score    *int64
		expected int64
	}{
		{"no score awards base", 10, nil, 10},
		{"zero score awards base", 10, score(0), 10},
		{"score 50 on base 10", 10, score(50), 15},
		{"score 100 doubles", 10, score(100), 20},
		{"score above 100 is clamped", 10, score(250), 20},
		{"fractional result is floored", 7, score(50), 10},
		{"small score floors to base", 10, score(5), 10},
		{"score 99 just under the cap", 10, score(99), 19},
		{"zero base", 0, score(80), 0},
		{"large base", 1_000_000, score(33), 1_330_000},
		{"maximum base near the cap", MaxPointsValue, score(99), 91_772_551_766_705_019},
		{"maximum base doubles", MaxPointsValue, score(100), 2 * MaxPointsValue},
		{"1e17 base with score 90", 100_000_000_000_000_000, score(90), 190_000_000_000_000_000},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			awarded, err := ComputeAwardedPoints(tc.base, tc.score)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, awarded)
		})
	}
}

func TestComputeAwardedPointsBounds(t *testing.T) {
	for base := int64(0); base <= 50; base++ {
		for s := int64(0); s <= 150; s++ {
			awarded, err := ComputeAwardedPoints(base, score(s))
			require.NoError(t, err)
			assert.GreaterOrEqual(t, awarded, base)
			assert.LessOrEqual(t, awarded, 2*base)
		}
	}
}

func TestComputeAwardedPointsRejectsInvalidInput(t *testing.T) {
	_, err := ComputeAwardedPoints(10, score(-1))
	assert.ErrorIs(t, err, errs.ErrInvalidGameScore)

	_, err = ComputeAwardedPoints(-10, nil)
	assert.ErrorIs(t, err, errs.ErrInvalidPointsValue)

	_, err = ComputeAwardedPoints(MaxPointsValue+1, nil)
	assert.ErrorIs(t, err, errs.ErrInvalidPointsValue)

	_, err = ComputeAwardedPoints(5_000_000_000_000_000_000, score(100))
	assert.ErrorIs(t, err, errs.ErrInvalidPointsValue)
}

func TestValidatePointsValue(t *testing.T) {
	assert.NoError(t, ValidatePointsValue(0))
	assert.NoError(t, ValidatePointsValue(MaxPointsValue))
	assert.ErrorIs(t, ValidatePointsValue(-1), errs.ErrInvalidPointsValue)
	assert.ErrorIs(t, ValidatePointsValue(MaxPointsValue+1), errs.ErrInvalidPointsValue)
}
