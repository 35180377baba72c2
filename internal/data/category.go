package data

import (
	"fmt"
	"slices"
	"strings"
)

// RankType describes how a skill category is developed.
type RankType int

const (
	// RankTypeStandard: category ranks can be bought, standard progression.
	RankTypeStandard RankType = iota
	// RankTypeLimited: no category ranks.
	RankTypeLimited
	// RankTypeWeapon: weapon category, cost taken from the profession's
	// weapon cost list in the order chosen by the player.
	RankTypeWeapon
	// RankTypeBodyDevelopment: skills progress with the race body development curve.
	RankTypeBodyDevelopment
	// RankTypePowerPoint: skills progress with the race power point curve.
	RankTypePowerPoint
	// RankTypeMagicOwnRealm: spell lists of the character's own realm.
	RankTypeMagicOwnRealm
	// RankTypeMagicOtherRealm: spell lists outside the character's realm.
	RankTypeMagicOtherRealm
)

var rankTypeNames = map[RankType]string{
	RankTypeStandard:        "standard",
	RankTypeLimited:         "limited",
	RankTypeWeapon:          "weapon",
	RankTypeBodyDevelopment: "body_development",
	RankTypePowerPoint:      "power_point",
	RankTypeMagicOwnRealm:   "magic_own_realm",
	RankTypeMagicOtherRealm: "magic_other_realm",
}

func (t RankType) String() string {
	if n, ok := rankTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("RankType(%d)", int(t))
}

// ParseRankType parses a rank type name.
func ParseRankType(s string) (RankType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RankTypeStandard, nil
	}
	for t, n := range rankTypeNames {
		if n == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown rank type %q", s)
}

// IsEditable reports whether category ranks can be bought.
func (t RankType) IsEditable() bool {
	return t == RankTypeStandard || t == RankTypeWeapon
}

// IsWeapon reports whether this is a weapon category.
func (t RankType) IsWeapon() bool { return t == RankTypeWeapon }

// IsMagical reports whether the category holds spell lists.
func (t RankType) IsMagical() bool {
	return t == RankTypeMagicOwnRealm || t == RankTypeMagicOtherRealm
}

// IsBodyDevelopment reports whether skills use the body development curve.
func (t RankType) IsBodyDevelopment() bool { return t == RankTypeBodyDevelopment }

// IsPowerPoint reports whether skills use the power point curve.
func (t RankType) IsPowerPoint() bool { return t == RankTypePowerPoint }

// IsCostSwitchable reports whether the cost depends on the player's weapon order.
func (t RankType) IsCostSwitchable() bool { return t == RankTypeWeapon }

// IsOwnRealm reports whether the category covers the character's own realm.
func (t RankType) IsOwnRealm() bool { return t == RankTypeMagicOwnRealm }

// RankSubtype classifies magical categories by the lists they hold.
type RankSubtype int

const (
	SubtypeNone RankSubtype = iota
	SubtypeOpen
	SubtypeClosed
	// SubtypeBase: base lists of the character's own profession.
	SubtypeBase
	// SubtypeProfession: base lists of other professions.
	SubtypeProfession
)

var subtypeNames = map[RankSubtype]string{
	SubtypeNone:       "",
	SubtypeOpen:       "open",
	SubtypeClosed:     "closed",
	SubtypeBase:       "base",
	SubtypeProfession: "profession",
}

func (s RankSubtype) String() string {
	if n, ok := subtypeNames[s]; ok {
		if n == "" {
			return "none"
		}
		return n
	}
	return fmt.Sprintf("RankSubtype(%d)", int(s))
}

// ParseRankSubtype parses a subtype name; empty means none.
func ParseRankSubtype(s string) (RankSubtype, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "none" {
		return SubtypeNone, nil
	}
	for t, n := range subtypeNames {
		if n == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown rank subtype %q", s)
}

// SkillCategory is a read-only skill category definition.
type SkillCategory struct {
	id         int
	name       string
	source     string
	rankType   RankType
	subtype    RankSubtype
	attributes []Attribute
}

func (c *SkillCategory) ID() int               { return c.id }
func (c *SkillCategory) Name() string          { return c.name }
func (c *SkillCategory) Source() string        { return c.source }
func (c *SkillCategory) RankType() RankType    { return c.rankType }
func (c *SkillCategory) Subtype() RankSubtype  { return c.subtype }
func (c *SkillCategory) AttributeCount() int   { return len(c.attributes) }

// Attributes returns the governing attributes; duplicates are meaningful
// (CO/CO/SD counts Constitution twice).
func (c *SkillCategory) Attributes() []Attribute {
	return slices.Clone(c.attributes)
}

// AttributeSet returns the distinct governing attributes.
func (c *SkillCategory) AttributeSet() AttributeSet {
	return NewAttributeSet(c.attributes...)
}
