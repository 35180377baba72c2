package data

import (
	"fmt"
	"slices"
	"strings"
)

// SkillKind tags the variant held by a Skill.
type SkillKind int

const (
	SkillKindPlain SkillKind = iota
	SkillKindSpellList
	SkillKindCustom
)

func (k SkillKind) String() string {
	switch k {
	case SkillKindPlain:
		return "skill"
	case SkillKindSpellList:
		return "spell_list"
	case SkillKindCustom:
		return "custom"
	default:
		return fmt.Sprintf("SkillKind(%d)", int(k))
	}
}

// SpellListType classifies a spell list.
type SpellListType int

const (
	SpellListOpen SpellListType = iota
	SpellListClosed
	// SpellListProfession: base list bound to a set of professions.
	SpellListProfession
	// SpellListTrainingPackage: list granted by a training package.
	SpellListTrainingPackage
)

var spellListTypeNames = map[SpellListType]string{
	SpellListOpen:            "open",
	SpellListClosed:          "closed",
	SpellListProfession:      "profession",
	SpellListTrainingPackage: "training_package",
}

func (t SpellListType) String() string {
	if n, ok := spellListTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("SpellListType(%d)", int(t))
}

// ParseSpellListType parses a spell list classification.
func ParseSpellListType(s string) (SpellListType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, n := range spellListTypeNames {
		if n == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown spell list type %q", s)
}

// SpellList is the payload of SkillKindSpellList skills.
type SpellList struct {
	attributes  AttributeSet
	listType    SpellListType
	evil        bool
	professions []int
}

func (l *SpellList) Attributes() AttributeSet { return l.attributes }
func (l *SpellList) Type() SpellListType      { return l.listType }
func (l *SpellList) Evil() bool               { return l.evil }
func (l *SpellList) Professions() []int       { return slices.Clone(l.professions) }

// AllowsProfession reports whether the list is a base list of professionID.
func (l *SpellList) AllowsProfession(professionID int) bool {
	return slices.Contains(l.professions, professionID)
}

// Skill is a read-only skill definition. Exactly one of the variant
// payloads is set according to Kind.
type Skill struct {
	kind       SkillKind
	id         int
	name       string
	source     string
	races      []int
	categoryID int        // SkillKindPlain
	spell      *SpellList // SkillKindSpellList
	baseID     int        // SkillKindCustom
	skillType  *SkillType // SkillKindCustom, optional override
}

func (s *Skill) ID() int         { return s.id }
func (s *Skill) Name() string    { return s.name }
func (s *Skill) Source() string  { return s.source }
func (s *Skill) Kind() SkillKind { return s.kind }

// CategoryID returns the static category of a plain skill, 0 otherwise.
func (s *Skill) CategoryID() int { return s.categoryID }

// SpellList returns the spell list payload, nil for other variants.
func (s *Skill) SpellList() *SpellList { return s.spell }

// IsSpellList reports whether the skill is a spell list.
func (s *Skill) IsSpellList() bool { return s.kind == SkillKindSpellList }

// BaseSkillID returns the wrapped skill of a custom skill, 0 otherwise.
func (s *Skill) BaseSkillID() int { return s.baseID }

// SkillTypeOverride returns the custom skill's skill type, if set.
func (s *Skill) SkillTypeOverride() (SkillType, bool) {
	if s.skillType == nil {
		return SkillTypeStandard, false
	}
	return *s.skillType, true
}

// RaceScope returns the races allowed to learn the skill; empty means all.
func (s *Skill) RaceScope() []int { return slices.Clone(s.races) }

// AvailableTo reports whether a character of raceID may learn the skill.
func (s *Skill) AvailableTo(raceID int) bool {
	return len(s.races) == 0 || slices.Contains(s.races, raceID)
}

// NewCustomSkill creates a player-defined skill wrapping baseID.
// Custom skills belong to a sheet, not to the rule tables.
func NewCustomSkill(id, baseID int, name string, skillType *SkillType) *Skill {
	var st *SkillType
	if skillType != nil {
		v := *skillType
		st = &v
	}
	return &Skill{
		kind:      SkillKindCustom,
		id:        id,
		name:      name,
		source:    "custom",
		baseID:    baseID,
		skillType: st,
	}
}
