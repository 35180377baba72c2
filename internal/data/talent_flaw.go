package data

import "maps"

// TalentFlaw is a read-only talent or flaw definition. Flaws carry negative
// bonuses or multipliers below 1.
type TalentFlaw struct {
	id     int
	name   string
	source string
	flaw   bool
	cost   int

	statBonuses        map[Attribute]int
	skillBonuses       map[int]int
	categoryBonuses    map[int]int
	resistances        map[Resistance]int
	skillTypes         map[int]SkillType
	categorySkillTypes map[int]SkillType

	hits           int
	defensiveBonus int

	exhaustion    float64
	recovery      float64
	movement      float64
	weightPenalty float64
	tolerance     float64

	bodyDev     Progression
	powerPoints Progression
}

func (t *TalentFlaw) ID() int        { return t.id }
func (t *TalentFlaw) Name() string   { return t.name }
func (t *TalentFlaw) Source() string { return t.source }
func (t *TalentFlaw) IsFlaw() bool   { return t.flaw }

// Cost returns the background option cost (negative for flaws).
func (t *TalentFlaw) Cost() int { return t.cost }

func (t *TalentFlaw) StatBonuses() map[Attribute]int      { return maps.Clone(t.statBonuses) }
func (t *TalentFlaw) SkillBonuses() map[int]int           { return maps.Clone(t.skillBonuses) }
func (t *TalentFlaw) CategoryBonuses() map[int]int        { return maps.Clone(t.categoryBonuses) }
func (t *TalentFlaw) ResistanceBonuses() map[Resistance]int { return maps.Clone(t.resistances) }
func (t *TalentFlaw) SkillTypes() map[int]SkillType       { return maps.Clone(t.skillTypes) }
func (t *TalentFlaw) CategorySkillTypes() map[int]SkillType {
	return maps.Clone(t.categorySkillTypes)
}

func (t *TalentFlaw) Hits() int           { return t.hits }
func (t *TalentFlaw) DefensiveBonus() int { return t.defensiveBonus }

// Multipliers default to 1 when unset.

func (t *TalentFlaw) Exhaustion() float64    { return orOne(t.exhaustion) }
func (t *TalentFlaw) Recovery() float64      { return orOne(t.recovery) }
func (t *TalentFlaw) Movement() float64      { return orOne(t.movement) }
func (t *TalentFlaw) WeightPenalty() float64 { return orOne(t.weightPenalty) }
func (t *TalentFlaw) Tolerance() float64     { return orOne(t.tolerance) }

// BodyDevelopment returns the modifier added to the race progression.
func (t *TalentFlaw) BodyDevelopment() Progression { return t.bodyDev }

// PowerPoints returns the modifier added to the race power point progression.
func (t *TalentFlaw) PowerPoints() Progression { return t.powerPoints }

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
