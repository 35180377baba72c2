package data

import (
	"fmt"
	"strings"
)

// SkillType defines how many ranks one purchased step grants.
type SkillType int

const (
	SkillTypeStandard SkillType = iota
	SkillTypeRestricted
	SkillTypeEveryman
	SkillTypeOccupational
)

// Step returns the rank increment of one purchase.
func (t SkillType) Step() float64 {
	switch t {
	case SkillTypeRestricted:
		return 0.5
	case SkillTypeEveryman:
		return 2
	case SkillTypeOccupational:
		return 3
	default:
		return 1
	}
}

func (t SkillType) String() string {
	switch t {
	case SkillTypeStandard:
		return "standard"
	case SkillTypeRestricted:
		return "restricted"
	case SkillTypeEveryman:
		return "everyman"
	case SkillTypeOccupational:
		return "occupational"
	default:
		return fmt.Sprintf("SkillType(%d)", int(t))
	}
}

// ParseSkillType parses the lower-case name of a skill type.
func ParseSkillType(s string) (SkillType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return SkillTypeStandard, nil
	case "restricted":
		return SkillTypeRestricted, nil
	case "everyman":
		return SkillTypeEveryman, nil
	case "occupational":
		return SkillTypeOccupational, nil
	}
	return 0, fmt.Errorf("unknown skill type %q", s)
}

// DominantSkillType merges two skill types from different sources.
// Restricted always wins; otherwise the larger step wins.
func DominantSkillType(a, b SkillType) SkillType {
	if a == SkillTypeRestricted || b == SkillTypeRestricted {
		return SkillTypeRestricted
	}
	if b.Step() > a.Step() {
		return b
	}
	return a
}
