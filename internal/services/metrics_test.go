package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 3.14, Round2(3.14159))
	assert.Equal(t, 2.68, Round2(2.676))
	// Half away from zero, both signs.
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, -0.13, Round2(-0.125))
	assert.Equal(t, -1.01, Round2(-1.006))
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 33.33, Percentage(1, 3))
	assert.Equal(t, 50.0, Percentage(1, 2))
	assert.Equal(t, 100.0, Percentage(5, 5))
	assert.Equal(t, 66.67, Percentage(2, 3))
}

func TestPercentageZeroWhole(t *testing.T) {
	for _, part := range []int64{0, 1, 100, -5} {
		got := Percentage(part, 0)
		assert.Equal(t, 0.0, got)
		assert.False(t, math.IsNaN(got))
		assert.False(t, math.IsInf(got, 0))
	}
}

func TestEngagementScore(t *testing.T) {
	// 0.4*5 + 0.3*100 + 0.3*20 = 38.0
	assert.Equal(t, 38.0, EngagementScore(5, 100, 20))
	assert.Equal(t, 0.0, EngagementScore(0, 0, 0))
	assert.Equal(t, 0.4, EngagementScore(1, 0, 0))
}
