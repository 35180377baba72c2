package data

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// SpellRankTiers is the number of spell list rank tiers (1-5, 6-10, 11-15, 16-20, 21+).
const SpellRankTiers = 5

// SpellRankTier returns the cost tier for buying the next rank of a spell
// list currently at the given rank.
func SpellRankTier(rank float64) int {
	if rank < 0 {
		return 0
	}
	return min(int(rank)/5, SpellRankTiers-1)
}

// SpellCostKey addresses one spell list cost table.
type SpellCostKey struct {
	CategoryID int
	Tier       int
	SpellUser  SpellUserType
}

// MetaData is the frozen set of rule tables. It is built once (Builder or
// Load) and only read afterwards, so it is safe to share between sheets
// and goroutines.
type MetaData struct {
	races         []*Race
	racesByID     map[int]*Race
	cultures      []*Culture
	culturesByID  map[int]*Culture
	professions   []*Profession
	profsByID     map[int]*Profession
	categories    []*SkillCategory
	categoryByID  map[int]*SkillCategory
	skills        []*Skill
	skillsByID    map[int]*Skill
	shields       []*Shield
	shieldsByID   map[int]*Shield
	armor         map[int]*ArmorModifier
	packs         []*TrainingPack
	packsByID     map[int]*TrainingPack
	talents       []*TalentFlaw
	talentsByID   map[int]*TalentFlaw
	spellCosts    map[SpellCostKey]Skillcost
	skillProg     Progression
	categoryProg  Progression
}

func (m *MetaData) Race(id int) *Race                 { return m.racesByID[id] }
func (m *MetaData) Races() []*Race                    { return slices.Clone(m.races) }
func (m *MetaData) Culture(id int) *Culture           { return m.culturesByID[id] }
func (m *MetaData) Cultures() []*Culture              { return slices.Clone(m.cultures) }
func (m *MetaData) Profession(id int) *Profession     { return m.profsByID[id] }
func (m *MetaData) Professions() []*Profession        { return slices.Clone(m.professions) }
func (m *MetaData) Category(id int) *SkillCategory    { return m.categoryByID[id] }
func (m *MetaData) Skill(id int) *Skill               { return m.skillsByID[id] }
func (m *MetaData) Shield(id int) *Shield             { return m.shieldsByID[id] }
func (m *MetaData) Shields() []*Shield                { return slices.Clone(m.shields) }
func (m *MetaData) TrainingPack(id int) *TrainingPack { return m.packsByID[id] }
func (m *MetaData) TrainingPacks() []*TrainingPack    { return slices.Clone(m.packs) }
func (m *MetaData) TalentFlaw(id int) *TalentFlaw     { return m.talentsByID[id] }
func (m *MetaData) TalentFlaws() []*TalentFlaw        { return slices.Clone(m.talents) }

// Categories returns all skill categories in table order.
// Spell list category resolution depends on this order.
func (m *MetaData) Categories() []*SkillCategory { return slices.Clone(m.categories) }

// Skills returns all skills and spell lists in table order.
func (m *MetaData) Skills() []*Skill { return slices.Clone(m.skills) }

// ArmorModifier returns the modifier of an armor class, nil if unknown.
func (m *MetaData) ArmorModifier(armorClass int) *ArmorModifier { return m.armor[armorClass] }

// ArmorClasses returns the known armor classes in ascending order.
func (m *MetaData) ArmorClasses() []int {
	return slices.Sorted(maps.Keys(m.armor))
}

// SpellCost returns the spell list cost table for a category, rank tier
// and spell user type.
func (m *MetaData) SpellCost(categoryID, tier int, user SpellUserType) (Skillcost, bool) {
	c, ok := m.spellCosts[SpellCostKey{CategoryID: categoryID, Tier: tier, SpellUser: user}]
	return c, ok
}

// SkillProgression returns the rank progression of ordinary skills.
func (m *MetaData) SkillProgression() Progression { return m.skillProg }

// CategoryProgression returns the rank progression of editable categories.
func (m *MetaData) CategoryProgression() Progression { return m.categoryProg }

// Builder params. Maps and slices are copied by the builder.

type CategoryParams struct {
	ID         int
	Name       string
	Source     string
	RankType   RankType
	Subtype    RankSubtype
	Attributes []Attribute
}

type SkillParams struct {
	ID         int
	Name       string
	Source     string
	CategoryID int
	Races      []int
}

type SpellListParams struct {
	ID          int
	Name        string
	Source      string
	Realm       AttributeSet
	Type        SpellListType
	Evil        bool
	Professions []int
	Races       []int
}

type RaceParams struct {
	ID              int
	Name            string
	Source          string
	StatBonuses     map[Attribute]int
	Resistances     map[Resistance]int
	BodyDevelopment Progression
	PowerPoints     map[Attribute]Progression
	Stride          int
	Recovery        float64
	SkillTypes      map[int]SkillType
}

type CultureParams struct {
	ID            int
	Name          string
	Source        string
	SkillRanks    map[int]float64
	CategoryRanks map[int]float64
}

type ProfessionParams struct {
	ID                 int
	Name               string
	Source             string
	SpellUser          SpellUserType
	Realm              AttributeSet
	CategoryBonuses    map[int]int
	CategoryCosts      map[int]Skillcost
	WeaponCosts        []Skillcost
	SkillTypes         map[int]SkillType
	CategorySkillTypes map[int]SkillType
}

type ShieldParams struct {
	ID      int
	Name    string
	Source  string
	Melee   int
	Missile int
}

type ArmorParams struct {
	ArmorClass  int
	MinManeuver int
	MaxManeuver int
	Missile     int
	Quickness   int
	SkillID     int
}

type TrainingPackParams struct {
	ID                 int
	Name               string
	Source             string
	Costs              map[int]int
	SkillRanks         map[int]float64
	CategoryRanks      map[int]float64
	SkillTypes         map[int]SkillType
	CategorySkillTypes map[int]SkillType
}

type TalentFlawParams struct {
	ID                 int
	Name               string
	Source             string
	Flaw               bool
	Cost               int
	StatBonuses        map[Attribute]int
	SkillBonuses       map[int]int
	CategoryBonuses    map[int]int
	Resistances        map[Resistance]int
	SkillTypes         map[int]SkillType
	CategorySkillTypes map[int]SkillType
	Hits               int
	DefensiveBonus     int
	Exhaustion         float64
	Recovery           float64
	Movement           float64
	WeightPenalty      float64
	Tolerance          float64
	BodyDevelopment    Progression
	PowerPoints        Progression
}

// Builder assembles a MetaData. Errors are collected and reported by Build.
type Builder struct {
	md   *MetaData
	errs []error
}

// NewBuilder returns an empty builder with default progressions.
func NewBuilder() *Builder {
	return &Builder{md: &MetaData{
		racesByID:    make(map[int]*Race),
		culturesByID: make(map[int]*Culture),
		profsByID:    make(map[int]*Profession),
		categoryByID: make(map[int]*SkillCategory),
		skillsByID:   make(map[int]*Skill),
		shieldsByID:  make(map[int]*Shield),
		armor:        make(map[int]*ArmorModifier),
		packsByID:    make(map[int]*TrainingPack),
		talentsByID:  make(map[int]*TalentFlaw),
		spellCosts:   make(map[SpellCostKey]Skillcost),
		skillProg:    DefaultSkillProgression,
		categoryProg: DefaultCategoryProgression,
	}}
}

func (b *Builder) fail(format string, args ...any) {
	b.errs = append(b.errs, fmt.Errorf(format, args...))
}

// SetSkillProgression overrides the default skill progression.
func (b *Builder) SetSkillProgression(p Progression) *Builder {
	b.md.skillProg = p
	return b
}

// SetCategoryProgression overrides the default category progression.
func (b *Builder) SetCategoryProgression(p Progression) *Builder {
	b.md.categoryProg = p
	return b
}

func (b *Builder) AddCategory(p CategoryParams) *Builder {
	if _, dup := b.md.categoryByID[p.ID]; dup {
		b.fail("category %d: duplicate id", p.ID)
		return b
	}
	if len(p.Attributes) > 3 {
		b.fail("category %d: %d governing attributes, max 3", p.ID, len(p.Attributes))
	}
	for _, a := range p.Attributes {
		if !a.Valid() {
			b.fail("category %d: invalid attribute %d", p.ID, int(a))
		}
	}
	if p.Subtype != SubtypeNone && !p.RankType.IsMagical() {
		b.fail("category %d: subtype %s on non-magical category", p.ID, p.Subtype)
	}
	c := &SkillCategory{
		id:         p.ID,
		name:       p.Name,
		source:     p.Source,
		rankType:   p.RankType,
		subtype:    p.Subtype,
		attributes: slices.Clone(p.Attributes),
	}
	b.md.categories = append(b.md.categories, c)
	b.md.categoryByID[c.id] = c
	return b
}

func (b *Builder) addSkill(s *Skill) {
	if _, dup := b.md.skillsByID[s.id]; dup {
		b.fail("skill %d: duplicate id", s.id)
		return
	}
	b.md.skills = append(b.md.skills, s)
	b.md.skillsByID[s.id] = s
}

func (b *Builder) AddSkill(p SkillParams) *Builder {
	b.addSkill(&Skill{
		kind:       SkillKindPlain,
		id:         p.ID,
		name:       p.Name,
		source:     p.Source,
		races:      slices.Clone(p.Races),
		categoryID: p.CategoryID,
	})
	return b
}

func (b *Builder) AddSpellList(p SpellListParams) *Builder {
	if p.Realm.IsEmpty() {
		b.fail("spell list %d: empty realm", p.ID)
	}
	b.addSkill(&Skill{
		kind:   SkillKindSpellList,
		id:     p.ID,
		name:   p.Name,
		source: p.Source,
		races:  slices.Clone(p.Races),
		spell: &SpellList{
			attributes:  p.Realm,
			listType:    p.Type,
			evil:        p.Evil,
			professions: slices.Clone(p.Professions),
		},
	})
	return b
}

func (b *Builder) AddRace(p RaceParams) *Builder {
	if _, dup := b.md.racesByID[p.ID]; dup {
		b.fail("race %d: duplicate id", p.ID)
		return b
	}
	r := &Race{
		id:          p.ID,
		name:        p.Name,
		source:      p.Source,
		resistances: maps.Clone(p.Resistances),
		bodyDev:     p.BodyDevelopment,
		powerPoints: maps.Clone(p.PowerPoints),
		stride:      p.Stride,
		recovery:    p.Recovery,
		skillTypes:  maps.Clone(p.SkillTypes),
	}
	for a, v := range p.StatBonuses {
		if !a.Valid() {
			b.fail("race %d: invalid attribute %d", p.ID, int(a))
			continue
		}
		r.statBonuses[a] = v
	}
	b.md.races = append(b.md.races, r)
	b.md.racesByID[r.id] = r
	return b
}

func (b *Builder) AddCulture(p CultureParams) *Builder {
	if _, dup := b.md.culturesByID[p.ID]; dup {
		b.fail("culture %d: duplicate id", p.ID)
		return b
	}
	c := &Culture{
		id:            p.ID,
		name:          p.Name,
		source:        p.Source,
		skillRanks:    maps.Clone(p.SkillRanks),
		categoryRanks: maps.Clone(p.CategoryRanks),
	}
	b.md.cultures = append(b.md.cultures, c)
	b.md.culturesByID[c.id] = c
	return b
}

func (b *Builder) AddProfession(p ProfessionParams) *Builder {
	if _, dup := b.md.profsByID[p.ID]; dup {
		b.fail("profession %d: duplicate id", p.ID)
		return b
	}
	for _, a := range p.Realm.Slice() {
		if !a.IsRealm() {
			b.fail("profession %d: %s is not a realm attribute", p.ID, a.Code())
		}
	}
	pr := &Profession{
		id:                 p.ID,
		name:               p.Name,
		source:             p.Source,
		spellUser:          p.SpellUser,
		realm:              p.Realm,
		categoryBonuses:    maps.Clone(p.CategoryBonuses),
		categoryCosts:      maps.Clone(p.CategoryCosts),
		weaponCosts:        slices.Clone(p.WeaponCosts),
		skillTypes:         maps.Clone(p.SkillTypes),
		categorySkillTypes: maps.Clone(p.CategorySkillTypes),
	}
	b.md.professions = append(b.md.professions, pr)
	b.md.profsByID[pr.id] = pr
	return b
}

func (b *Builder) AddShield(p ShieldParams) *Builder {
	if _, dup := b.md.shieldsByID[p.ID]; dup {
		b.fail("shield %d: duplicate id", p.ID)
		return b
	}
	s := &Shield{id: p.ID, name: p.Name, source: p.Source, melee: p.Melee, missile: p.Missile}
	b.md.shields = append(b.md.shields, s)
	b.md.shieldsByID[s.id] = s
	return b
}

func (b *Builder) AddArmor(p ArmorParams) *Builder {
	if _, dup := b.md.armor[p.ArmorClass]; dup {
		b.fail("armor class %d: duplicate", p.ArmorClass)
		return b
	}
	b.md.armor[p.ArmorClass] = &ArmorModifier{
		armorClass:  p.ArmorClass,
		minManeuver: p.MinManeuver,
		maxManeuver: p.MaxManeuver,
		missile:     p.Missile,
		quickness:   p.Quickness,
		skillID:     p.SkillID,
	}
	return b
}

func (b *Builder) AddTrainingPack(p TrainingPackParams) *Builder {
	if _, dup := b.md.packsByID[p.ID]; dup {
		b.fail("training pack %d: duplicate id", p.ID)
		return b
	}
	t := &TrainingPack{
		id:                 p.ID,
		name:               p.Name,
		source:             p.Source,
		costs:              maps.Clone(p.Costs),
		skillRanks:         maps.Clone(p.SkillRanks),
		categoryRanks:      maps.Clone(p.CategoryRanks),
		skillTypes:         maps.Clone(p.SkillTypes),
		categorySkillTypes: maps.Clone(p.CategorySkillTypes),
	}
	b.md.packs = append(b.md.packs, t)
	b.md.packsByID[t.id] = t
	return b
}

func (b *Builder) AddTalentFlaw(p TalentFlawParams) *Builder {
	if _, dup := b.md.talentsByID[p.ID]; dup {
		b.fail("talent %d: duplicate id", p.ID)
		return b
	}
	t := &TalentFlaw{
		id:                 p.ID,
		name:               p.Name,
		source:             p.Source,
		flaw:               p.Flaw,
		cost:               p.Cost,
		statBonuses:        maps.Clone(p.StatBonuses),
		skillBonuses:       maps.Clone(p.SkillBonuses),
		categoryBonuses:    maps.Clone(p.CategoryBonuses),
		resistances:        maps.Clone(p.Resistances),
		skillTypes:         maps.Clone(p.SkillTypes),
		categorySkillTypes: maps.Clone(p.CategorySkillTypes),
		hits:               p.Hits,
		defensiveBonus:     p.DefensiveBonus,
		exhaustion:         p.Exhaustion,
		recovery:           p.Recovery,
		movement:           p.Movement,
		weightPenalty:      p.WeightPenalty,
		tolerance:          p.Tolerance,
		bodyDev:            p.BodyDevelopment,
		powerPoints:        p.PowerPoints,
	}
	b.md.talents = append(b.md.talents, t)
	b.md.talentsByID[t.id] = t
	return b
}

// AddSpellCost registers the cost table of one (category, tier, user) cell.
func (b *Builder) AddSpellCost(key SpellCostKey, cost Skillcost) *Builder {
	if key.Tier < 0 || key.Tier >= SpellRankTiers {
		b.fail("spell cost %+v: tier out of range", key)
		return b
	}
	b.md.spellCosts[key] = cost
	return b
}

// Build validates cross references and returns the frozen MetaData.
// The builder must not be used afterwards.
func (b *Builder) Build() (*MetaData, error) {
	md := b.md
	for _, s := range md.skills {
		if s.kind == SkillKindPlain && md.categoryByID[s.categoryID] == nil {
			b.fail("skill %d (%s): unknown category %d", s.id, s.name, s.categoryID)
		}
	}
	for _, c := range md.cultures {
		for id := range c.skillRanks {
			if md.skillsByID[id] == nil {
				b.fail("culture %d: unknown skill %d", c.id, id)
			}
		}
		for id := range c.categoryRanks {
			if md.categoryByID[id] == nil {
				b.fail("culture %d: unknown category %d", c.id, id)
			}
		}
	}
	for _, p := range md.packs {
		for id := range p.skillRanks {
			if md.skillsByID[id] == nil {
				b.fail("training pack %d: unknown skill %d", p.id, id)
			}
		}
		for id := range p.categoryRanks {
			if md.categoryByID[id] == nil {
				b.fail("training pack %d: unknown category %d", p.id, id)
			}
		}
	}
	for ac, a := range md.armor {
		if a.skillID != 0 && md.skillsByID[a.skillID] == nil {
			b.fail("armor class %d: unknown skill %d", ac, a.skillID)
		}
	}
	for key := range md.spellCosts {
		if c := md.categoryByID[key.CategoryID]; c == nil || !c.rankType.IsMagical() {
			b.fail("spell cost %+v: category is not magical", key)
		}
	}
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("building rule tables: %w", errors.Join(b.errs...))
	}
	b.md = nil
	return md, nil
}
