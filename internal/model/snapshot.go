package model

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/udisondev/rmsheet/internal/config"
	"github.com/udisondev/rmsheet/internal/data"
)

// CustomSkill is the persistent form of a player-defined skill.
type CustomSkill struct {
	ID        int             `json:"id"`
	BaseID    int             `json:"base_id"`
	Name      string          `json:"name"`
	SkillType *data.SkillType `json:"skill_type,omitempty"`
}

// Snapshot is the persistent state of a sheet. The level-up session is
// transient and not part of it.
type Snapshot struct {
	ID           uuid.UUID
	Name         string
	Creation     bool
	RaceID       int
	CultureID    int
	ProfessionID int
	MagicRealm   data.AttributeSet
	Level        int
	GracePoints  int
	Stats        [data.AttributeCount]Stat

	SkillRanks    []Rank // sorted by id
	CategoryRanks []Rank // sorted by id

	CustomSkills          []CustomSkill
	NextCustomID          int
	SkillTypeOverrides    map[int]data.SkillType
	CategoryTypeOverrides map[int]data.SkillType
	TrainingPacks         []int
	WeaponCostOrder       []int
	Talents               []int
	Items                 []MagicalItem

	ArmorClass    int
	ShieldID      int
	BodyWeight    float64
	CarriedWeight float64
}

func sortRanks(r []Rank) []Rank {
	slices.SortFunc(r, func(a, b Rank) int { return cmp.Compare(a.ID, b.ID) })
	return r
}

// Snapshot copies the persistent state.
func (s *Sheet) Snapshot() Snapshot {
	snap := Snapshot{
		ID:                    s.id,
		Name:                  s.name,
		Creation:              s.creation,
		RaceID:                s.race.ID(),
		CultureID:             s.culture.ID(),
		ProfessionID:          s.profession.ID(),
		MagicRealm:            s.magicRealm,
		Level:                 s.level,
		GracePoints:           s.gracePoints,
		Stats:                 s.stats,
		SkillRanks:            sortRanks(s.skills.snapshot()),
		CategoryRanks:         sortRanks(s.categories.snapshot()),
		NextCustomID:          s.nextCustomID,
		SkillTypeOverrides:    cloneTypes(s.skillTypeOverrides),
		CategoryTypeOverrides: cloneTypes(s.categoryTypeOverrides),
		TrainingPacks:         slices.Clone(s.trainingPacks),
		WeaponCostOrder:       slices.Clone(s.weaponOrder),
		ArmorClass:            s.armorClass,
		ShieldID:              s.shieldID(),
		BodyWeight:            s.bodyWeight,
		CarriedWeight:         s.carriedWeight,
	}
	for _, sk := range s.CustomSkills() {
		cs := CustomSkill{ID: sk.ID(), BaseID: sk.BaseSkillID(), Name: sk.Name()}
		if t, ok := sk.SkillTypeOverride(); ok {
			cs.SkillType = &t
		}
		snap.CustomSkills = append(snap.CustomSkills, cs)
	}
	for _, t := range s.talents {
		snap.Talents = append(snap.Talents, t.ID())
	}
	for _, it := range s.items {
		snap.Items = append(snap.Items, it.clone())
	}
	return snap
}

// cloneTypes copies a skill type map; empty maps become nil so a stored
// and a live snapshot compare equal.
func cloneTypes(m map[int]data.SkillType) map[int]data.SkillType {
	if len(m) == 0 {
		return nil
	}
	return maps.Clone(m)
}

// Restore rebuilds a sheet from a snapshot. Rule set exclusions are not
// applied to stored sheets; ids missing from the rule tables are.
func Restore(md *data.MetaData, rules config.RuleSet, snap Snapshot) (*Sheet, error) {
	missing := func(kind string, id int) error {
		return fmt.Errorf("restoring sheet %s: %w", snap.ID,
			newError(CodeDataInconsistency, fmt.Sprintf("unknown %s %d", kind, id), idMeta(kind+"ID", id)))
	}

	s := newSheet(md, rules, snap.ID)
	if s.race = md.Race(snap.RaceID); s.race == nil {
		return nil, missing("race", snap.RaceID)
	}
	if s.culture = md.Culture(snap.CultureID); s.culture == nil {
		return nil, missing("culture", snap.CultureID)
	}
	if s.profession = md.Profession(snap.ProfessionID); s.profession == nil {
		return nil, missing("profession", snap.ProfessionID)
	}
	if snap.ShieldID != 0 {
		if s.shield = md.Shield(snap.ShieldID); s.shield == nil {
			return nil, missing("shield", snap.ShieldID)
		}
	}
	for _, id := range snap.Talents {
		t := md.TalentFlaw(id)
		if t == nil {
			return nil, missing("talent", id)
		}
		s.talents = append(s.talents, t)
	}
	s.overlay = NewTalentOverlay(s.talents)

	s.name = snap.Name
	s.creation = snap.Creation
	s.magicRealm = snap.MagicRealm
	s.level = snap.Level
	s.gracePoints = snap.GracePoints
	s.stats = snap.Stats
	for _, r := range snap.SkillRanks {
		s.skills[r.ID] = &Rank{ID: r.ID, Value: r.Value, Special: r.Special, Favorite: r.Favorite}
	}
	for _, r := range snap.CategoryRanks {
		s.categories[r.ID] = &Rank{ID: r.ID, Value: r.Value, Special: r.Special, Favorite: r.Favorite}
	}
	for _, cs := range snap.CustomSkills {
		s.customSkills[cs.ID] = data.NewCustomSkill(cs.ID, cs.BaseID, cs.Name, cs.SkillType)
	}
	s.nextCustomID = max(snap.NextCustomID, CustomSkillIDBase)
	for id := range s.customSkills {
		s.nextCustomID = max(s.nextCustomID, id+1)
	}
	if snap.SkillTypeOverrides != nil {
		s.skillTypeOverrides = maps.Clone(snap.SkillTypeOverrides)
	}
	if snap.CategoryTypeOverrides != nil {
		s.categoryTypeOverrides = maps.Clone(snap.CategoryTypeOverrides)
	}
	s.trainingPacks = slices.Clone(snap.TrainingPacks)
	s.weaponOrder = slices.Clone(snap.WeaponCostOrder)
	if len(s.weaponOrder) == 0 {
		s.weaponOrder = defaultWeaponOrder(md)
	}
	for _, it := range snap.Items {
		s.items = append(s.items, it.clone())
	}
	s.armorClass = snap.ArmorClass
	s.bodyWeight = snap.BodyWeight
	if s.bodyWeight <= 0 {
		s.bodyWeight = DefaultBodyWeight
	}
	s.carriedWeight = snap.CarriedWeight
	return s, nil
}
