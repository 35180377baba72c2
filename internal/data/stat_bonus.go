package data

import "math"

// Stat bonus curve. Fixed bands, each one linear and rounded half away
// from zero:
//
//	score <= 10    score/2 - 10
//	11..30         (score - 33) / 5
//	31..69         0
//	70..89         (score - 67.5) / 5
//	90..100        (score - 95) * 2
//	> 100          (score - 95) * 2
//
// Breakpoints gate development point math downstream; don't tune them.

// StatBonus returns the bonus for a raw attribute score.
func StatBonus(score int) int {
	v := float64(score)
	switch {
	case score <= 10:
		return int(math.Round(v/2 - 10))
	case score <= 30:
		return int(math.Round((v - 33) / 5))
	case score <= 69:
		return 0
	case score <= 89:
		return int(math.Round((v - 67.5) / 5))
	default:
		// 90..100 and the open band above 100 share one line.
		return int(math.Round((v - 95) * 2))
	}
}
