package maturity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForPercentageBands(t *testing.T) {
	cases := []struct {
		pct  float64
		want Level
	}{
		{100, L4},
		{85, L4},
		{84.9, L3},
		{70, L3},
		{69.9, L2},
		{50, L2},
		{49.9, L1},
		{25, L1},
		{24.9, L0},
		{0, L0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ForPercentage(tc.pct), "pct=%v", tc.pct)
	}
}

func TestForPercentageMonotonic(t *testing.T) {
	prev := L0
	for pct := 0.0; pct <= 100; pct += 0.5 {
		l := ForPercentage(pct)
		assert.GreaterOrEqual(t, l, prev, "level decreased at %v", pct)
		prev = l
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, L0, Level(-3).Clamp())
	assert.Equal(t, L4, Level(9).Clamp())
	assert.Equal(t, L2, L2.Clamp())
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, L0.Percentage())
	assert.Equal(t, 50.0, L2.Percentage())
	assert.Equal(t, 100.0, L4.Percentage())
}

func TestAtLeast(t *testing.T) {
	assert.True(t, L3.AtLeast(L2))
	assert.True(t, L2.AtLeast(L2))
	assert.False(t, L1.AtLeast(L2))
}
