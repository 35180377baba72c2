package data

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Skillcost is the development-point cost of each purchasable step within one
// level. Size is the number of steps that may be bought.
type Skillcost struct {
	costs []int
}

// NewSkillcost builds a cost table. The slice is copied.
func NewSkillcost(costs ...int) Skillcost {
	return Skillcost{costs: slices.Clone(costs)}
}

// Cost returns the cost of the given 0-based step. Callers must check
// step < Size(); an out-of-range step panics.
func (c Skillcost) Cost(step int) int {
	return c.costs[step]
}

// Size returns the number of purchasable steps.
func (c Skillcost) Size() int {
	return len(c.costs)
}

// Total returns the cost of buying every step.
func (c Skillcost) Total() int {
	total := 0
	for _, v := range c.costs {
		total += v
	}
	return total
}

// Compare orders cost tables step by step; a shorter prefix sorts first.
func (c Skillcost) Compare(o Skillcost) int {
	return slices.Compare(c.costs, o.costs)
}

// Costs returns a copy of the per-step costs.
func (c Skillcost) Costs() []int {
	return slices.Clone(c.costs)
}

func (c Skillcost) String() string {
	parts := make([]string, len(c.costs))
	for i, v := range c.costs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, "/")
}

// ParseSkillcost parses "2/5" style cost strings. An empty string is a
// table of size 0 (nothing can be bought).
func ParseSkillcost(s string) (Skillcost, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Skillcost{}, nil
	}
	parts := strings.Split(s, "/")
	costs := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Skillcost{}, fmt.Errorf("skill cost %q step %d: %w", s, i, err)
		}
		if v < 0 {
			return Skillcost{}, fmt.Errorf("skill cost %q step %d: negative cost %d", s, i, v)
		}
		costs[i] = v
	}
	return Skillcost{costs: costs}, nil
}
