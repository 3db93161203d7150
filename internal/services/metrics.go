package services

import "math"

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Percentage computes part/whole as a percentage rounded to 2 decimals.
// A zero whole yields 0, never NaN or Inf.
func Percentage(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*10000) / 100
}

// EngagementScore is the fixed-weight ranking formula for top creators:
// 40% entity count, 30% reach (participants or members), 30% likes.
func EngagementScore(count, reach, likes int64) float64 {
	return Round2(0.4*float64(count) + 0.3*float64(reach) + 0.3*float64(likes))
}
