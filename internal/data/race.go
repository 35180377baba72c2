package data

import (
	"fmt"
	"maps"
	"strings"
)

// Resistance identifies a resistance roll type.
type Resistance int

const (
	ResistChanneling Resistance = iota
	ResistEssence
	ResistMentalism
	ResistArcane
	ResistPoison
	ResistDisease
	ResistFear
)

// Resistances lists all resistance types in sheet order.
var Resistances = []Resistance{
	ResistChanneling, ResistEssence, ResistMentalism, ResistArcane,
	ResistPoison, ResistDisease, ResistFear,
}

var resistanceNames = map[Resistance]string{
	ResistChanneling: "channeling",
	ResistEssence:    "essence",
	ResistMentalism:  "mentalism",
	ResistArcane:     "arcane",
	ResistPoison:     "poison",
	ResistDisease:    "disease",
	ResistFear:       "fear",
}

func (r Resistance) String() string {
	if n, ok := resistanceNames[r]; ok {
		return n
	}
	return fmt.Sprintf("Resistance(%d)", int(r))
}

// ParseResistance parses a resistance name.
func ParseResistance(s string) (Resistance, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for r, n := range resistanceNames {
		if n == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown resistance %q", s)
}

// StatWeights returns the attributes feeding a resistance bonus, each
// weighted by its multiplier.
func (r Resistance) StatWeights() map[Attribute]int {
	switch r {
	case ResistChanneling:
		return map[Attribute]int{Intuition: 3}
	case ResistEssence:
		return map[Attribute]int{Empathy: 3}
	case ResistMentalism:
		return map[Attribute]int{Presence: 3}
	case ResistArcane:
		return map[Attribute]int{Empathy: 1, Intuition: 1, Presence: 1}
	case ResistPoison, ResistDisease:
		return map[Attribute]int{Constitution: 3}
	case ResistFear:
		return map[Attribute]int{SelfDiscipline: 3}
	}
	return nil
}

// Race is a read-only race definition.
type Race struct {
	id          int
	name        string
	source      string
	statBonuses [AttributeCount]int
	resistances map[Resistance]int
	bodyDev     Progression
	powerPoints map[Attribute]Progression
	stride      int
	recovery    float64
	skillTypes  map[int]SkillType
}

func (r *Race) ID() int        { return r.id }
func (r *Race) Name() string   { return r.name }
func (r *Race) Source() string { return r.source }

// StatBonus returns the racial modifier for an attribute.
func (r *Race) StatBonus(a Attribute) int {
	if !a.Valid() {
		return 0
	}
	return r.statBonuses[a]
}

// ResistanceBonus returns the racial resistance modifier.
func (r *Race) ResistanceBonus(res Resistance) int { return r.resistances[res] }

// BodyDevelopment returns the race's body development progression.
func (r *Race) BodyDevelopment() Progression { return r.bodyDev }

// PowerPoints returns the power point progression for a realm attribute.
func (r *Race) PowerPoints(a Attribute) (Progression, bool) {
	p, ok := r.powerPoints[a]
	return p, ok
}

// Stride returns the base movement modifier in feet per round.
func (r *Race) Stride() int { return r.stride }

// RecoveryMultiplier returns the hit recovery multiplier (1 when unset).
func (r *Race) RecoveryMultiplier() float64 {
	if r.recovery == 0 {
		return 1
	}
	return r.recovery
}

// SkillType returns the racial skill type of a skill, if any.
func (r *Race) SkillType(skillID int) (SkillType, bool) {
	t, ok := r.skillTypes[skillID]
	return t, ok
}

// SkillTypes returns a copy of all racial skill types.
func (r *Race) SkillTypes() map[int]SkillType { return maps.Clone(r.skillTypes) }

// Culture is a read-only culture definition: adolescence ranks granted
// when character creation is finished.
type Culture struct {
	id            int
	name          string
	source        string
	skillRanks    map[int]float64
	categoryRanks map[int]float64
}

func (c *Culture) ID() int        { return c.id }
func (c *Culture) Name() string   { return c.name }
func (c *Culture) Source() string { return c.source }

// SkillRanks returns adolescence skill ranks keyed by skill id.
func (c *Culture) SkillRanks() map[int]float64 { return maps.Clone(c.skillRanks) }

// CategoryRanks returns adolescence category ranks keyed by category id.
func (c *Culture) CategoryRanks() map[int]float64 { return maps.Clone(c.categoryRanks) }
