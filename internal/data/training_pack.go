package data

import "maps"

// TrainingPack is a read-only training package: a bundle of ranks and
// skill types bought as one unit.
type TrainingPack struct {
	id                 int
	name               string
	source             string
	costs              map[int]int
	skillRanks         map[int]float64
	categoryRanks      map[int]float64
	skillTypes         map[int]SkillType
	categorySkillTypes map[int]SkillType
}

func (t *TrainingPack) ID() int        { return t.id }
func (t *TrainingPack) Name() string   { return t.name }
func (t *TrainingPack) Source() string { return t.source }

// Cost returns the development point cost for a profession.
// Missing means the profession can't buy the pack.
func (t *TrainingPack) Cost(professionID int) (int, bool) {
	c, ok := t.costs[professionID]
	return c, ok
}

// SkillRanks returns granted skill ranks keyed by skill id.
func (t *TrainingPack) SkillRanks() map[int]float64 { return maps.Clone(t.skillRanks) }

// CategoryRanks returns granted category ranks keyed by category id.
func (t *TrainingPack) CategoryRanks() map[int]float64 { return maps.Clone(t.categoryRanks) }

// SkillTypes returns skill type overrides keyed by skill id.
func (t *TrainingPack) SkillTypes() map[int]SkillType { return maps.Clone(t.skillTypes) }

// CategorySkillTypes returns skill type overrides keyed by category id.
func (t *TrainingPack) CategorySkillTypes() map[int]SkillType {
	return maps.Clone(t.categorySkillTypes)
}
