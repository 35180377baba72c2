package model

import (
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/udisondev/rmsheet/internal/data"
)

// MagicalItem is an item carried by the character. Only favorite items
// contribute bonuses.
type MagicalItem struct {
	ID           uuid.UUID
	Name         string
	Favorite     bool
	StatBonuses  map[data.Attribute]int
	SkillBonuses map[int]int // skill id → bonus
}

func (it MagicalItem) clone() MagicalItem {
	it.StatBonuses = maps.Clone(it.StatBonuses)
	it.SkillBonuses = maps.Clone(it.SkillBonuses)
	return it
}

// Talents returns the chosen talents and flaws in the order added.
func (s *Sheet) Talents() []*data.TalentFlaw { return slices.Clone(s.talents) }

// TalentOverlay returns the aggregated talent modifiers.
func (s *Sheet) TalentOverlay() *TalentOverlay { return s.overlay }

// HasTalent reports whether the talent is chosen.
func (s *Sheet) HasTalent(talentID int) bool {
	return slices.ContainsFunc(s.talents, func(t *data.TalentFlaw) bool { return t.ID() == talentID })
}

// AddTalent adds a talent or flaw.
func (s *Sheet) AddTalent(talentID int) error {
	t := s.md.TalentFlaw(talentID)
	if t == nil {
		return invalid("unknown talent %d", talentID)
	}
	if !s.rules.SourceAllowed(t.Source()) {
		return invalid("talent %s is excluded by the rule set", t.Name())
	}
	if s.HasTalent(talentID) {
		return invalid("talent %s already chosen", t.Name())
	}
	s.apply(func() {
		s.talents = append(s.talents, t)
		s.overlay = NewTalentOverlay(s.talents)
	}, PropTalents, PropSkills, PropSkillCategories)
	return nil
}

// RemoveTalent removes a talent or flaw; false if it wasn't chosen.
func (s *Sheet) RemoveTalent(talentID int) bool {
	i := slices.IndexFunc(s.talents, func(t *data.TalentFlaw) bool { return t.ID() == talentID })
	if i < 0 {
		return false
	}
	s.apply(func() {
		s.talents = slices.Delete(s.talents, i, i+1)
		s.overlay = NewTalentOverlay(s.talents)
	}, PropTalents, PropSkills, PropSkillCategories)
	return true
}

// TalentPoints returns the background option cost of all talents and flaws.
func (s *Sheet) TalentPoints() int {
	total := 0
	for _, t := range s.talents {
		total += t.Cost()
	}
	return total
}

// Items returns copies of the carried items.
func (s *Sheet) Items() []MagicalItem {
	out := make([]MagicalItem, len(s.items))
	for i, it := range s.items {
		out[i] = it.clone()
	}
	return out
}

// AddItem adds an item and returns its id. A zero ID is replaced with a
// new one.
func (s *Sheet) AddItem(item MagicalItem) uuid.UUID {
	item = item.clone()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	s.apply(func() { s.items = append(s.items, item) }, PropItems, PropSkills, PropSkillCategories)
	return item.ID
}

// RemoveItem removes an item; false if unknown.
func (s *Sheet) RemoveItem(id uuid.UUID) bool {
	i := s.itemIndex(id)
	if i < 0 {
		return false
	}
	s.apply(func() { s.items = slices.Delete(s.items, i, i+1) }, PropItems, PropSkills, PropSkillCategories)
	return true
}

// SetItemFavorite switches an item's bonuses on or off.
func (s *Sheet) SetItemFavorite(id uuid.UUID, favorite bool) error {
	i := s.itemIndex(id)
	if i < 0 {
		return invalid("unknown item %s", id)
	}
	s.apply(func() { s.items[i].Favorite = favorite }, PropItems, PropSkills, PropSkillCategories)
	return nil
}

func (s *Sheet) itemIndex(id uuid.UUID) int {
	return slices.IndexFunc(s.items, func(it MagicalItem) bool { return it.ID == id })
}
