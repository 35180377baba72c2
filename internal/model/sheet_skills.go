package model

import (
	"log/slog"
	"maps"
	"math"
	"slices"

	"github.com/udisondev/rmsheet/internal/data"
)

// maxCustomDepth bounds custom skills wrapping custom skills.
const maxCustomDepth = 8

// Skill returns a rule table or custom skill by id, nil if unknown.
func (s *Sheet) Skill(id int) *data.Skill {
	if sk, ok := s.customSkills[id]; ok {
		return sk
	}
	return s.md.Skill(id)
}

// AvailableSkills returns the skills the character can learn: rule table
// skills allowed for the race and rule set, then custom skills by id.
func (s *Sheet) AvailableSkills() []*data.Skill {
	out := slices.DeleteFunc(s.md.Skills(), func(sk *data.Skill) bool {
		return !sk.AvailableTo(s.race.ID()) || !s.rules.SourceAllowed(sk.Source())
	})
	for _, id := range slices.Sorted(maps.Keys(s.customSkills)) {
		out = append(out, s.customSkills[id])
	}
	return out
}

// baseSkill follows custom skills down to the rule table skill they wrap.
func (s *Sheet) baseSkill(sk *data.Skill) *data.Skill {
	for depth := 0; sk != nil && sk.Kind() == data.SkillKindCustom; depth++ {
		if depth == maxCustomDepth {
			slog.Error("custom skill chain too deep", "skillID", sk.ID())
			return nil
		}
		base := s.Skill(sk.BaseSkillID())
		if base == nil {
			slog.Error("custom skill wraps unknown skill", "skillID", sk.ID(), "baseID", sk.BaseSkillID())
		}
		sk = base
	}
	return sk
}

// IsSpellList reports whether the skill, or the skill a custom skill
// wraps, is a spell list.
func (s *Sheet) IsSpellList(skillID int) bool {
	base := s.baseSkill(s.Skill(skillID))
	return base != nil && base.IsSpellList()
}

// SkillCategory resolves the governing category of a skill. Spell lists
// resolve against the magic realm and profession; nil means the rule
// tables have no matching category (logged).
func (s *Sheet) SkillCategory(skillID int) *data.SkillCategory {
	sk := s.Skill(skillID)
	if sk == nil {
		slog.Error("unknown skill", "skillID", skillID)
		return nil
	}
	return s.resolveCategory(sk)
}

func (s *Sheet) resolveCategory(sk *data.Skill) *data.SkillCategory {
	base := s.baseSkill(sk)
	if base == nil {
		return nil
	}
	switch base.Kind() {
	case data.SkillKindSpellList:
		return s.resolveSpellListCategory(base)
	default:
		cat := s.md.Category(base.CategoryID())
		if cat == nil {
			slog.Error("skill category not found", "skillID", base.ID(), "categoryID", base.CategoryID())
		}
		return cat
	}
}

// resolveSpellListCategory returns the first magical category in table
// order matching the list's realm, its classification and its attributes.
func (s *Sheet) resolveSpellListCategory(sk *data.Skill) *data.SkillCategory {
	list := sk.SpellList()
	attrs := list.Attributes()
	inRealm := !s.magicRealm.IsEmpty() && attrs.SubsetOf(s.magicRealm)
	arcane := s.magicRealm.Len() == 3

	var want data.RankSubtype
	switch list.Type() {
	case data.SpellListOpen:
		want = data.SubtypeOpen
	case data.SpellListClosed, data.SpellListTrainingPackage:
		want = data.SubtypeClosed
	case data.SpellListProfession:
		if list.AllowsProfession(s.profession.ID()) {
			want = data.SubtypeBase
		} else {
			want = data.SubtypeProfession
		}
	}

	for _, cat := range s.md.Categories() {
		rt := cat.RankType()
		if !rt.IsMagical() || cat.Subtype() == data.SubtypeNone {
			continue
		}
		realmOK := (rt.IsOwnRealm() && inRealm) ||
			(!rt.IsOwnRealm() && !inRealm) ||
			(arcane && cat.AttributeCount() == 3)
		if !realmOK || cat.Subtype() != want {
			continue
		}
		if catAttrs := cat.AttributeSet(); !catAttrs.IsEmpty() && !attrs.SubsetOf(catAttrs) {
			continue
		}
		return cat
	}

	slog.Error("no skill category for spell list",
		"skillID", sk.ID(),
		"realm", s.magicRealm.Key(),
		"listRealm", attrs.Key(),
		"type", list.Type(),
		"professionID", s.profession.ID())
	return nil
}

// SkillType returns the effective skill type of a skill. Talents, training
// packs, profession, race and custom overrides all contribute; restricted
// dominates, otherwise the largest step wins.
func (s *Sheet) SkillType(skillID int) data.SkillType {
	st := data.SkillTypeStandard
	merge := func(t data.SkillType, ok bool) {
		if ok {
			st = data.DominantSkillType(st, t)
		}
	}

	sk := s.Skill(skillID)
	if sk == nil {
		return st
	}
	if t, ok := sk.SkillTypeOverride(); ok && sk.Kind() == data.SkillKindCustom {
		merge(t, true)
	}
	ids := []int{skillID}
	if base := s.baseSkill(sk); base != nil && base.ID() != skillID {
		ids = append(ids, base.ID())
	}
	for _, id := range ids {
		merge(s.overlay.SkillType(id))
		t, ok := s.skillTypeOverrides[id]
		merge(t, ok)
		merge(s.profession.SkillType(id))
		merge(s.race.SkillType(id))
	}
	if cat := s.resolveCategory(sk); cat != nil {
		merge(s.overlay.CategorySkillType(cat.ID()))
		t, ok := s.categoryTypeOverrides[cat.ID()]
		merge(t, ok)
		merge(s.profession.CategorySkillType(cat.ID()))
	}
	return st
}

// SkillRank returns a copy of the skill's rank.
func (s *Sheet) SkillRank(skillID int) Rank {
	if r, ok := s.skills[skillID]; ok {
		return *r
	}
	return Rank{ID: skillID}
}

// CategoryRank returns a copy of the category's rank.
func (s *Sheet) CategoryRank(categoryID int) Rank {
	if r, ok := s.categories[categoryID]; ok {
		return *r
	}
	return Rank{ID: categoryID}
}

// skillProgression picks the rank progression of a skill in cat.
func (s *Sheet) skillProgression(cat *data.SkillCategory) data.Progression {
	switch {
	case cat != nil && cat.RankType().IsBodyDevelopment():
		return s.race.BodyDevelopment().Modify(s.overlay.BodyDevelopmentModifier())
	case cat != nil && cat.RankType().IsPowerPoint():
		var lowest data.Progression
		found := false
		for _, a := range s.magicRealm.Slice() {
			p, ok := s.race.PowerPoints(a)
			if !ok {
				continue
			}
			if !found || p.Compare(lowest) < 0 {
				lowest, found = p, true
			}
		}
		if !found {
			return data.Progression{}
		}
		return lowest.Modify(s.overlay.PowerPointModifier())
	default:
		return s.md.SkillProgression()
	}
}

// SkillRankBonus returns the progression bonus of the skill's ranks.
func (s *Sheet) SkillRankBonus(skillID int) int {
	cat := s.SkillCategory(skillID)
	return s.skillProgression(cat).Bonus(s.skills.value(skillID))
}

// SkillTotalBonus = rank bonus + category total + special + talents.
// Item bonuses are not part of it, see ItemBonus.
func (s *Sheet) SkillTotalBonus(skillID int) int {
	cat := s.SkillCategory(skillID)
	total := s.skillProgression(cat).Bonus(s.skills.value(skillID))
	if cat != nil {
		total += s.CategoryTotalBonus(cat.ID())
	}
	return total + s.skills.special(skillID) + s.overlay.SkillBonus(skillID)
}

// ItemBonus returns the best bonus a favorite item gives the skill.
// Bonuses of several items never stack.
func (s *Sheet) ItemBonus(skillID int) int {
	best, found := 0, false
	for _, it := range s.items {
		if !it.Favorite {
			continue
		}
		if b, ok := it.SkillBonuses[skillID]; ok && (!found || b > best) {
			best, found = b, true
		}
	}
	return best
}

// CategoryRankBonus returns the progression bonus of a category's ranks;
// only categories with buyable ranks have one.
func (s *Sheet) CategoryRankBonus(categoryID int) int {
	cat := s.md.Category(categoryID)
	if cat == nil || !cat.RankType().IsEditable() {
		return 0
	}
	return s.md.CategoryProgression().Bonus(s.categories.value(categoryID))
}

// CategoryStatBonus returns the attribute part of a category total.
// Magical categories average their attributes (rounded up), the rest add
// them up. Own realm categories without attributes use the magic realm.
func (s *Sheet) CategoryStatBonus(categoryID int) int {
	cat := s.md.Category(categoryID)
	if cat == nil {
		return 0
	}
	attrs := cat.Attributes()
	if len(attrs) == 0 && cat.RankType().IsOwnRealm() {
		attrs = s.magicRealm.Slice()
	}
	if len(attrs) == 0 {
		return 0
	}
	sum := 0
	for _, a := range attrs {
		sum += s.StatBonusTotal(a)
	}
	if cat.RankType().IsMagical() {
		return int(math.Ceil(float64(sum) / float64(len(attrs))))
	}
	return sum
}

// CategorySpecialBonus = user special + 10 for body development + talents.
func (s *Sheet) CategorySpecialBonus(categoryID int) int {
	bonus := s.categories.special(categoryID) + s.overlay.CategoryBonus(categoryID)
	if cat := s.md.Category(categoryID); cat != nil && cat.RankType().IsBodyDevelopment() {
		bonus += 10
	}
	return bonus
}

// CategoryTotalBonus = rank bonus + stat bonus + profession bonus + special.
func (s *Sheet) CategoryTotalBonus(categoryID int) int {
	return s.CategoryRankBonus(categoryID) +
		s.CategoryStatBonus(categoryID) +
		s.profession.CategoryBonus(categoryID) +
		s.CategorySpecialBonus(categoryID)
}

// SkillCost returns the cost table for the next rank of a skill: spell
// lists by rank tier and spell user type, other skills by their category.
func (s *Sheet) SkillCost(skillID int) (data.Skillcost, bool) {
	cat := s.SkillCategory(skillID)
	if cat == nil {
		return data.Skillcost{}, false
	}
	if s.IsSpellList(skillID) {
		tier := data.SpellRankTier(s.skills.value(skillID))
		cost, ok := s.md.SpellCost(cat.ID(), tier, s.profession.SpellUserType())
		if !ok {
			slog.Error("no spell cost",
				"skillID", skillID,
				"categoryID", cat.ID(),
				"tier", tier,
				"spellUser", s.profession.SpellUserType())
		}
		return cost, ok
	}
	return s.CategoryCost(cat.ID())
}

// CategoryCost returns the profession cost table of a category. Weapon
// categories take the weapon cost at their place in the weapon order.
func (s *Sheet) CategoryCost(categoryID int) (data.Skillcost, bool) {
	cat := s.md.Category(categoryID)
	if cat == nil {
		return data.Skillcost{}, false
	}
	if cat.RankType().IsCostSwitchable() {
		costs := s.profession.WeaponCosts()
		i := slices.Index(s.weaponOrder, categoryID)
		if i < 0 || i >= len(costs) {
			slog.Error("no weapon cost",
				"categoryID", categoryID,
				"professionID", s.profession.ID(),
				"position", i)
			return data.Skillcost{}, false
		}
		return costs[i], true
	}
	cost, ok := s.profession.CategoryCost(categoryID)
	if !ok {
		slog.Error("no category cost", "categoryID", categoryID, "professionID", s.profession.ID())
	}
	return cost, ok
}

// SpellListThreshold returns the spell list increase threshold of the
// character's realm.
func (s *Sheet) SpellListThreshold() int {
	return s.rules.SpellListThreshold.For(s.magicRealm.Key())
}

// SetSkillRank moves the skill one step towards requested. The step size
// comes from the skill type; requested only gives the direction. During
// a level-up session the change is paid for first and rejected as a whole
// when it can't be, and a decrease takes back exactly the rank the last
// bought step added. Skills hidden from AvailableSkills can't be raised.
func (s *Sheet) SetSkillRank(skillID int, requested float64) error {
	sk := s.Skill(skillID)
	if sk == nil {
		return invalid("unknown skill %d", skillID)
	}
	cur := s.skills.value(skillID)
	if requested == cur || (requested < cur && cur <= 0) {
		return nil
	}
	if requested > cur {
		if err := s.checkSkillAvailable(sk); err != nil {
			return err
		}
	}

	step := s.SkillType(skillID).Step()
	target := cur + step
	if requested < cur {
		target = cur - step
	}
	decision, err := s.levelUp.ValidateSkillRankChange(skillID, cur, target)
	if err != nil {
		return err
	}

	var mutate func()
	switch decision {
	case DecisionIncrease:
		mutate = func() { s.skills.get(skillID).Value = target }
	case DecisionDecrease:
		if s.levelUp.Active() {
			step, _ = s.levelUp.LastSkillStep(skillID)
		}
		mutate = func() {
			s.skills.get(skillID).Value = math.Max(0, cur-step)
			if s.levelUp.Active() {
				s.levelUp.CommitDecrease(skillID)
			}
		}
	default:
		return nil
	}
	s.apply(mutate, PropSkills)
	return nil
}

// checkSkillAvailable rejects skills outside the race scope or excluded by
// the rule set, including custom skills wrapping them.
func (s *Sheet) checkSkillAvailable(sk *data.Skill) error {
	for _, c := range []*data.Skill{sk, s.baseSkill(sk)} {
		if c == nil {
			continue
		}
		if !c.AvailableTo(s.race.ID()) {
			return invalid("skill %s is not available to %s", c.Name(), s.race.Name())
		}
		if !s.rules.SourceAllowed(c.Source()) {
			return invalid("skill %s is excluded by the rule set", c.Name())
		}
	}
	return nil
}

// SetCategoryRank moves the category one rank towards requested.
func (s *Sheet) SetCategoryRank(categoryID int, requested float64) error {
	cat := s.md.Category(categoryID)
	if cat == nil {
		return invalid("unknown skill category %d", categoryID)
	}
	if !cat.RankType().IsEditable() {
		return invalid("category %s has no ranks to buy", cat.Name())
	}
	cur := s.categories.value(categoryID)
	if requested == cur || (requested < cur && cur <= 0) {
		return nil
	}

	decision, err := s.levelUp.ValidateCategoryRankChange(categoryID, cur, requested)
	if err != nil {
		return err
	}
	switch decision {
	case DecisionIncrease:
		s.apply(func() { s.categories.get(categoryID).Value = cur + 1 }, PropSkillCategories, PropSkills)
	case DecisionDecrease:
		s.apply(func() { s.categories.get(categoryID).Value = math.Max(0, cur-1) }, PropSkillCategories, PropSkills)
	}
	return nil
}

// SetSkillSpecialBonus sets the user special bonus of a skill.
func (s *Sheet) SetSkillSpecialBonus(skillID, bonus int) error {
	if s.Skill(skillID) == nil {
		return invalid("unknown skill %d", skillID)
	}
	s.apply(func() { s.skills.get(skillID).Special = bonus }, PropSkills)
	return nil
}

// SetCategorySpecialBonus sets the user special bonus of a category.
func (s *Sheet) SetCategorySpecialBonus(categoryID, bonus int) error {
	if s.md.Category(categoryID) == nil {
		return invalid("unknown skill category %d", categoryID)
	}
	s.apply(func() { s.categories.get(categoryID).Special = bonus }, PropSkillCategories, PropSkills)
	return nil
}

// SetSkillFavorite marks a skill as favorite.
func (s *Sheet) SetSkillFavorite(skillID int, favorite bool) error {
	if s.Skill(skillID) == nil {
		return invalid("unknown skill %d", skillID)
	}
	s.skills.get(skillID).Favorite = favorite
	s.bus.Emit(PropSkills, nil, nil)
	return nil
}

// FavoriteSkills returns the ids of favorite skills in ascending order.
func (s *Sheet) FavoriteSkills() []int {
	var ids []int
	for id, r := range s.skills {
		if r.Favorite {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// RevertSkill refunds every step of the skill bought in the current
// session and removes those ranks. Returns the number of steps reverted.
func (s *Sheet) RevertSkill(skillID int) int {
	if !s.levelUp.Active() {
		return 0
	}
	bought := s.levelUp.BoughtSkillRanks(skillID)
	var n int
	s.apply(func() {
		n = s.levelUp.RemoveSkill(skillID)
		if n > 0 {
			r := s.skills.get(skillID)
			r.Value = math.Max(0, r.Value-bought)
		}
	}, PropSkills)
	return n
}

// RevertCategory refunds every rank of the category bought in the current
// session. Returns the number of ranks reverted.
func (s *Sheet) RevertCategory(categoryID int) int {
	if !s.levelUp.Active() {
		return 0
	}
	var n int
	s.apply(func() {
		n = s.levelUp.RemoveCategory(categoryID)
		if n > 0 {
			r := s.categories.get(categoryID)
			r.Value = math.Max(0, r.Value-float64(n))
		}
	}, PropSkillCategories, PropSkills)
	return n
}

// AddCustomSkill creates a player-defined skill wrapping baseID and
// returns its id.
func (s *Sheet) AddCustomSkill(baseID int, name string, skillType *data.SkillType) (int, error) {
	if s.Skill(baseID) == nil {
		return 0, invalid("unknown base skill %d", baseID)
	}
	if name == "" {
		return 0, invalid("custom skill needs a name")
	}
	id := s.nextCustomID
	s.nextCustomID++
	s.customSkills[id] = data.NewCustomSkill(id, baseID, name, skillType)
	s.bus.Emit(PropSkills, nil, nil)
	return id, nil
}

// RemoveCustomSkill deletes a custom skill with its ranks, refunding what
// the current session paid for it.
func (s *Sheet) RemoveCustomSkill(id int) error {
	if _, ok := s.customSkills[id]; !ok {
		return invalid("skill %d is not a custom skill", id)
	}
	s.apply(func() {
		if s.levelUp.Active() {
			s.levelUp.RemoveSkill(id)
		}
		delete(s.skills, id)
		delete(s.customSkills, id)
	}, PropSkills)
	return nil
}

// CustomSkills returns the custom skills ordered by id.
func (s *Sheet) CustomSkills() []*data.Skill {
	out := make([]*data.Skill, 0, len(s.customSkills))
	for _, id := range slices.Sorted(maps.Keys(s.customSkills)) {
		out = append(out, s.customSkills[id])
	}
	return out
}

// TrainingPacks returns the training packs bought, in order.
func (s *Sheet) TrainingPacks() []int { return slices.Clone(s.trainingPacks) }

// AddTrainingPack applies a training package: its ranks and skill types
// as one unit. During a level-up session the pack cost is charged first;
// if it can't be paid nothing is applied.
func (s *Sheet) AddTrainingPack(packID int) error {
	pack := s.md.TrainingPack(packID)
	if pack == nil {
		return invalid("unknown training pack %d", packID)
	}
	if !s.rules.SourceAllowed(pack.Source()) {
		return invalid("training pack %s is excluded by the rule set", pack.Name())
	}
	cost, ok := pack.Cost(s.profession.ID())
	if !ok {
		return invalid("training pack %s is not available to %s", pack.Name(), s.profession.Name())
	}
	if err := s.levelUp.BuyTrainingPack(packID, cost); err != nil {
		return err
	}

	s.apply(func() {
		for id, v := range pack.SkillRanks() {
			s.skills.get(id).Value += v
		}
		for id, v := range pack.CategoryRanks() {
			s.categories.get(id).Value += v
		}
		for id, t := range pack.SkillTypes() {
			s.skillTypeOverrides[id] = mergeOverride(s.skillTypeOverrides, id, t)
		}
		for id, t := range pack.CategorySkillTypes() {
			s.categoryTypeOverrides[id] = mergeOverride(s.categoryTypeOverrides, id, t)
		}
		s.trainingPacks = append(s.trainingPacks, packID)
	}, PropTrainingPacks, PropSkills, PropSkillCategories)

	slog.Debug("training pack applied", "sheet", s.id, "pack", pack.Name(), "cost", cost)
	return nil
}

func mergeOverride(m map[int]data.SkillType, id int, t data.SkillType) data.SkillType {
	if cur, ok := m[id]; ok {
		return data.DominantSkillType(cur, t)
	}
	return t
}
