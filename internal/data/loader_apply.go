package data

import "fmt"

// apply converts decoded documents into builder calls. Parse errors are
// collected by the builder and reported from Build.
func (d *ruleDocs) apply(b *Builder) {
	if d.progressions.Skill != "" {
		if p, err := ParseProgression(d.progressions.Skill); err != nil {
			b.fail("%s skill: %w", FileProgressions, err)
		} else {
			b.SetSkillProgression(p)
		}
	}
	if d.progressions.Category != "" {
		if p, err := ParseProgression(d.progressions.Category); err != nil {
			b.fail("%s category: %w", FileProgressions, err)
		} else {
			b.SetCategoryProgression(p)
		}
	}

	for _, c := range d.categories {
		rt, err := ParseRankType(c.RankType)
		if err != nil {
			b.fail("category %d: %w", c.ID, err)
		}
		st, err := ParseRankSubtype(c.Subtype)
		if err != nil {
			b.fail("category %d: %w", c.ID, err)
		}
		attrs := make([]Attribute, 0, len(c.Attributes))
		for _, code := range c.Attributes {
			a, err := ParseAttribute(code)
			if err != nil {
				b.fail("category %d: %w", c.ID, err)
				continue
			}
			attrs = append(attrs, a)
		}
		b.AddCategory(CategoryParams{
			ID: c.ID, Name: c.Name, Source: c.Source,
			RankType: rt, Subtype: st, Attributes: attrs,
		})
	}

	for _, s := range d.skills {
		b.AddSkill(SkillParams{ID: s.ID, Name: s.Name, Source: s.Source, CategoryID: s.Category, Races: s.Races})
	}

	for _, l := range d.spellLists {
		realm, err := ParseAttributeSet(l.Realm)
		if err != nil {
			b.fail("spell list %d: %w", l.ID, err)
		}
		lt, err := ParseSpellListType(l.Type)
		if err != nil {
			b.fail("spell list %d: %w", l.ID, err)
		}
		b.AddSpellList(SpellListParams{
			ID: l.ID, Name: l.Name, Source: l.Source,
			Realm: realm, Type: lt, Evil: l.Evil,
			Professions: l.Professions, Races: l.Races,
		})
	}

	for _, r := range d.races {
		label := fmt.Sprintf("race %d", r.ID)
		p := RaceParams{
			ID: r.ID, Name: r.Name, Source: r.Source,
			StatBonuses: parseAttributeMap(b, label, r.Stats),
			Resistances: parseResistanceMap(b, label, r.Resistances),
			Stride:      r.Stride,
			Recovery:    r.Recovery,
			SkillTypes:  parseSkillTypeMap(b, label, r.SkillTypes),
		}
		p.BodyDevelopment = parseProgressionField(b, label, r.BodyDevelopment)
		if len(r.PowerPoints) > 0 {
			p.PowerPoints = make(map[Attribute]Progression, len(r.PowerPoints))
			for code, s := range r.PowerPoints {
				a, err := ParseAttribute(code)
				if err != nil {
					b.fail("%s power points: %w", label, err)
					continue
				}
				p.PowerPoints[a] = parseProgressionField(b, label, s)
			}
		}
		b.AddRace(p)
	}

	for _, c := range d.cultures {
		b.AddCulture(CultureParams{
			ID: c.ID, Name: c.Name, Source: c.Source,
			SkillRanks: c.SkillRanks, CategoryRanks: c.CategoryRanks,
		})
	}

	for _, pr := range d.professions {
		label := fmt.Sprintf("profession %d", pr.ID)
		su, err := ParseSpellUserType(pr.SpellUser)
		if err != nil {
			b.fail("%s: %w", label, err)
		}
		realm, err := ParseAttributeSet(pr.Realm)
		if err != nil {
			b.fail("%s: %w", label, err)
		}
		costs := make(map[int]Skillcost, len(pr.CategoryCosts))
		for id, s := range pr.CategoryCosts {
			costs[id] = parseSkillcostField(b, label, s)
		}
		weapons := make([]Skillcost, 0, len(pr.WeaponCosts))
		for _, s := range pr.WeaponCosts {
			weapons = append(weapons, parseSkillcostField(b, label, s))
		}
		b.AddProfession(ProfessionParams{
			ID: pr.ID, Name: pr.Name, Source: pr.Source,
			SpellUser:          su,
			Realm:              realm,
			CategoryBonuses:    pr.CategoryBonuses,
			CategoryCosts:      costs,
			WeaponCosts:        weapons,
			SkillTypes:         parseSkillTypeMap(b, label, pr.SkillTypes),
			CategorySkillTypes: parseSkillTypeMap(b, label, pr.CategorySkillTypes),
		})
	}

	for _, s := range d.equipment.Shields {
		b.AddShield(ShieldParams{ID: s.ID, Name: s.Name, Source: s.Source, Melee: s.Melee, Missile: s.Missile})
	}
	for _, a := range d.equipment.Armor {
		b.AddArmor(ArmorParams{
			ArmorClass: a.ArmorClass, MinManeuver: a.MinManeuver, MaxManeuver: a.MaxManeuver,
			Missile: a.Missile, Quickness: a.Quickness, SkillID: a.Skill,
		})
	}

	for _, t := range d.trainingPacks {
		label := fmt.Sprintf("training pack %d", t.ID)
		b.AddTrainingPack(TrainingPackParams{
			ID: t.ID, Name: t.Name, Source: t.Source,
			Costs:              t.Costs,
			SkillRanks:         t.SkillRanks,
			CategoryRanks:      t.CategoryRanks,
			SkillTypes:         parseSkillTypeMap(b, label, t.SkillTypes),
			CategorySkillTypes: parseSkillTypeMap(b, label, t.CategorySkillTypes),
		})
	}

	for _, t := range d.talents {
		label := fmt.Sprintf("talent %d", t.ID)
		b.AddTalentFlaw(TalentFlawParams{
			ID: t.ID, Name: t.Name, Source: t.Source,
			Flaw:               t.Flaw,
			Cost:               t.Cost,
			StatBonuses:        parseAttributeMap(b, label, t.Stats),
			SkillBonuses:       t.SkillBonuses,
			CategoryBonuses:    t.CategoryBonuses,
			Resistances:        parseResistanceMap(b, label, t.Resistances),
			SkillTypes:         parseSkillTypeMap(b, label, t.SkillTypes),
			CategorySkillTypes: parseSkillTypeMap(b, label, t.CategorySkillTypes),
			Hits:               t.Hits,
			DefensiveBonus:     t.DefensiveBonus,
			Exhaustion:         t.Exhaustion,
			Recovery:           t.Recovery,
			Movement:           t.Movement,
			WeightPenalty:      t.WeightPenalty,
			Tolerance:          t.Tolerance,
			BodyDevelopment:    parseProgressionField(b, label, t.BodyDevelopment),
			PowerPoints:        parseProgressionField(b, label, t.PowerPoints),
		})
	}

	for _, sc := range d.spellCosts {
		su, err := ParseSpellUserType(sc.SpellUser)
		if err != nil {
			b.fail("spell cost category %d: %w", sc.Category, err)
			continue
		}
		if len(sc.Tiers) != SpellRankTiers {
			b.fail("spell cost category %d/%s: want %d tiers, got %d", sc.Category, su, SpellRankTiers, len(sc.Tiers))
			continue
		}
		for tier, s := range sc.Tiers {
			key := SpellCostKey{CategoryID: sc.Category, Tier: tier, SpellUser: su}
			b.AddSpellCost(key, parseSkillcostField(b, "spell cost", s))
		}
	}
}

func parseAttributeMap(b *Builder, label string, in map[string]int) map[Attribute]int {
	if len(in) == 0 {
		return nil
	}
	out := make(map[Attribute]int, len(in))
	for code, v := range in {
		a, err := ParseAttribute(code)
		if err != nil {
			b.fail("%s: %w", label, err)
			continue
		}
		out[a] = v
	}
	return out
}

func parseResistanceMap(b *Builder, label string, in map[string]int) map[Resistance]int {
	if len(in) == 0 {
		return nil
	}
	out := make(map[Resistance]int, len(in))
	for name, v := range in {
		r, err := ParseResistance(name)
		if err != nil {
			b.fail("%s: %w", label, err)
			continue
		}
		out[r] = v
	}
	return out
}

func parseSkillTypeMap(b *Builder, label string, in map[int]string) map[int]SkillType {
	if len(in) == 0 {
		return nil
	}
	out := make(map[int]SkillType, len(in))
	for id, s := range in {
		t, err := ParseSkillType(s)
		if err != nil {
			b.fail("%s skill type of %d: %w", label, id, err)
			continue
		}
		out[id] = t
	}
	return out
}

func parseProgressionField(b *Builder, label, s string) Progression {
	if s == "" {
		return Progression{}
	}
	p, err := ParseProgression(s)
	if err != nil {
		b.fail("%s: %w", label, err)
	}
	return p
}

func parseSkillcostField(b *Builder, label, s string) Skillcost {
	c, err := ParseSkillcost(s)
	if err != nil {
		b.fail("%s: %w", label, err)
	}
	return c
}
