package data

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Progression: бонус за ранг по диапазонам: [0], [1-10], [11-20], [21-30], [31+].
type Progression [5]float64

// Default progressions used when the rule tables don't override them.
var (
	DefaultSkillProgression    = Progression{-15, 3, 2, 1, 0.5}
	DefaultCategoryProgression = Progression{-15, 2, 1, 0.5, 0}
)

// NewProgression builds a progression from its five digits.
func NewProgression(d0, d1, d2, d3, d4 float64) Progression {
	return Progression{d0, d1, d2, d3, d4}
}

// Bonus returns the rank bonus for the given number of ranks.
// Zero ranks yield the d0 digit; otherwise each band contributes its digit
// per rank inside the band. The result is rounded half-up.
func (p Progression) Bonus(ranks float64) int {
	if ranks <= 0 {
		return roundHalfUp(p[0])
	}
	total := p[1]*math.Min(ranks, 10) +
		p[2]*math.Max(0, math.Min(ranks, 20)-10) +
		p[3]*math.Max(0, math.Min(ranks, 30)-20) +
		p[4]*math.Max(0, ranks-30)
	return roundHalfUp(total)
}

// Sum returns the sum of all five digits.
func (p Progression) Sum() float64 {
	return p[0] + p[1] + p[2] + p[3] + p[4]
}

// Compare orders progressions by digit sum. Equal sums fall back to
// comparing digits left to right so the order is total.
func (p Progression) Compare(o Progression) int {
	if ps, os := p.Sum(), o.Sum(); ps != os {
		if ps < os {
			return -1
		}
		return 1
	}
	for i := range p {
		switch {
		case p[i] < o[i]:
			return -1
		case p[i] > o[i]:
			return 1
		}
	}
	return 0
}

// Modify returns the element-wise sum of p and o.
func (p Progression) Modify(o Progression) Progression {
	var out Progression
	for i := range p {
		out[i] = p[i] + o[i]
	}
	return out
}

// IsZero reports whether every digit is zero.
func (p Progression) IsZero() bool {
	return p == Progression{}
}

func (p Progression) String() string {
	parts := make([]string, len(p))
	for i, d := range p {
		parts[i] = strconv.FormatFloat(d, 'f', -1, 64)
	}
	return strings.Join(parts, "/")
}

// ParseProgression parses "-15/3/2/1/0.5".
func ParseProgression(s string) (Progression, error) {
	var p Progression
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != len(p) {
		return p, fmt.Errorf("progression %q: want %d digits, got %d", s, len(p), len(parts))
	}
	for i, part := range parts {
		d, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return p, fmt.Errorf("progression %q digit %d: %w", s, i, err)
		}
		p[i] = d
	}
	return p, nil
}

// roundHalfUp rounds .5 towards +Inf.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
