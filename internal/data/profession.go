package data

import (
	"fmt"
	"slices"
	"strings"
)

// SpellUserType selects the spell cost column of a profession.
type SpellUserType int

const (
	SpellUserNon SpellUserType = iota
	SpellUserSemi
	SpellUserHybrid
	SpellUserPure
)

var spellUserNames = map[SpellUserType]string{
	SpellUserNon:    "non",
	SpellUserSemi:   "semi",
	SpellUserHybrid: "hybrid",
	SpellUserPure:   "pure",
}

func (t SpellUserType) String() string {
	if n, ok := spellUserNames[t]; ok {
		return n
	}
	return fmt.Sprintf("SpellUserType(%d)", int(t))
}

// ParseSpellUserType parses a spell user type; empty means non.
func ParseSpellUserType(s string) (SpellUserType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SpellUserNon, nil
	}
	for t, n := range spellUserNames {
		if n == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown spell user type %q", s)
}

// Profession is a read-only profession definition.
type Profession struct {
	id                 int
	name               string
	source             string
	spellUser          SpellUserType
	realm              AttributeSet
	categoryBonuses    map[int]int
	categoryCosts      map[int]Skillcost
	weaponCosts        []Skillcost
	skillTypes         map[int]SkillType
	categorySkillTypes map[int]SkillType
}

func (p *Profession) ID() int                      { return p.id }
func (p *Profession) Name() string                 { return p.name }
func (p *Profession) Source() string               { return p.source }
func (p *Profession) SpellUserType() SpellUserType { return p.spellUser }

// Realm returns the fixed magic realm; empty when the player chooses.
func (p *Profession) Realm() AttributeSet { return p.realm }

// RealmEditable reports whether the player picks the magic realm.
func (p *Profession) RealmEditable() bool { return p.realm.IsEmpty() }

// CategoryBonus returns the profession bonus for a category.
func (p *Profession) CategoryBonus(categoryID int) int { return p.categoryBonuses[categoryID] }

// CategoryCost returns the cost table for a non-weapon category.
func (p *Profession) CategoryCost(categoryID int) (Skillcost, bool) {
	c, ok := p.categoryCosts[categoryID]
	return c, ok
}

// WeaponCosts returns the weapon cost list, cheapest first.
func (p *Profession) WeaponCosts() []Skillcost { return slices.Clone(p.weaponCosts) }

// SkillType returns the profession skill type of a skill, if any.
func (p *Profession) SkillType(skillID int) (SkillType, bool) {
	t, ok := p.skillTypes[skillID]
	return t, ok
}

// CategorySkillType returns the skill type applied to all skills of a category.
func (p *Profession) CategorySkillType(categoryID int) (SkillType, bool) {
	t, ok := p.categorySkillTypes[categoryID]
	return t, ok
}
