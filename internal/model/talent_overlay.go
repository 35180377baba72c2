package model

import "github.com/udisondev/rmsheet/internal/data"

// TalentOverlay: суммарные модификаторы всех выбранных талантов и недостатков.
// Rebuilt whenever the talent set changes, read by every derived query.
type TalentOverlay struct {
	stats      map[data.Attribute]int
	skills     map[int]int
	categories map[int]int
	resist     map[data.Resistance]int

	skillTypes    map[int]data.SkillType
	categoryTypes map[int]data.SkillType

	hits           int
	defensiveBonus int

	exhaustion    float64
	recovery      float64
	movement      float64
	weightPenalty float64
	tolerance     float64

	bodyDev     data.Progression
	powerPoints data.Progression
}

// NewTalentOverlay aggregates the given talents. Bonuses and progression
// modifiers add up, multipliers multiply, restricted skill types win.
func NewTalentOverlay(talents []*data.TalentFlaw) *TalentOverlay {
	o := &TalentOverlay{
		stats:         make(map[data.Attribute]int),
		skills:        make(map[int]int),
		categories:    make(map[int]int),
		resist:        make(map[data.Resistance]int),
		skillTypes:    make(map[int]data.SkillType),
		categoryTypes: make(map[int]data.SkillType),
		exhaustion:    1,
		recovery:      1,
		movement:      1,
		weightPenalty: 1,
		tolerance:     1,
	}
	for _, t := range talents {
		if t == nil {
			continue
		}
		for a, v := range t.StatBonuses() {
			o.stats[a] += v
		}
		for id, v := range t.SkillBonuses() {
			o.skills[id] += v
		}
		for id, v := range t.CategoryBonuses() {
			o.categories[id] += v
		}
		for r, v := range t.ResistanceBonuses() {
			o.resist[r] += v
		}
		mergeSkillTypes(o.skillTypes, t.SkillTypes())
		mergeSkillTypes(o.categoryTypes, t.CategorySkillTypes())

		o.hits += t.Hits()
		o.defensiveBonus += t.DefensiveBonus()

		o.exhaustion *= t.Exhaustion()
		o.recovery *= t.Recovery()
		o.movement *= t.Movement()
		o.weightPenalty *= t.WeightPenalty()
		o.tolerance *= t.Tolerance()

		o.bodyDev = o.bodyDev.Modify(t.BodyDevelopment())
		o.powerPoints = o.powerPoints.Modify(t.PowerPoints())
	}
	return o
}

func mergeSkillTypes(dst, src map[int]data.SkillType) {
	for id, st := range src {
		if cur, ok := dst[id]; ok {
			dst[id] = data.DominantSkillType(cur, st)
			continue
		}
		dst[id] = st
	}
}

func (o *TalentOverlay) StatBonus(a data.Attribute) int             { return o.stats[a] }
func (o *TalentOverlay) SkillBonus(skillID int) int                 { return o.skills[skillID] }
func (o *TalentOverlay) CategoryBonus(categoryID int) int           { return o.categories[categoryID] }
func (o *TalentOverlay) ResistanceBonus(r data.Resistance) int      { return o.resist[r] }
func (o *TalentOverlay) Hits() int                                  { return o.hits }
func (o *TalentOverlay) DefensiveBonus() int                        { return o.defensiveBonus }
func (o *TalentOverlay) ExhaustionMultiplier() float64              { return o.exhaustion }
func (o *TalentOverlay) RecoveryMultiplier() float64                { return o.recovery }
func (o *TalentOverlay) MovementMultiplier() float64                { return o.movement }
func (o *TalentOverlay) WeightPenaltyMultiplier() float64           { return o.weightPenalty }
func (o *TalentOverlay) ToleranceMultiplier() float64               { return o.tolerance }
func (o *TalentOverlay) BodyDevelopmentModifier() data.Progression { return o.bodyDev }
func (o *TalentOverlay) PowerPointModifier() data.Progression      { return o.powerPoints }

// SkillType returns the talent skill type of a skill, if any.
func (o *TalentOverlay) SkillType(skillID int) (data.SkillType, bool) {
	st, ok := o.skillTypes[skillID]
	return st, ok
}

// CategorySkillType returns the talent skill type of a category, if any.
func (o *TalentOverlay) CategorySkillType(categoryID int) (data.SkillType, bool) {
	st, ok := o.categoryTypes[categoryID]
	return st, ok
}
