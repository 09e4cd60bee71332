package analytics

import "math"

// roundHalfUp rounds to the nearest integer, halves toward +Inf.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// round1 rounds to one decimal place, halves toward +Inf.
func round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

// percent returns round(part/whole*100), or 0 when whole is not positive.
func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return roundHalfUp(float64(part) / float64(whole) * 100)
}
