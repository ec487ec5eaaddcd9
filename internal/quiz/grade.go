package quiz

import "math"

// MaxGrade is the top of the platform's grading scale.
const MaxGrade = 5.0

// Grade converts a correct count over a total into the 0–5 scale,
// rounded to two decimals, half away from zero.
func Grade(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return Round2(float64(correct) / float64(total) * MaxGrade)
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
