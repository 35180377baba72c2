package model

import "github.com/udisondev/rmsheet/internal/data"

// Stat returns the scores of an attribute.
func (s *Sheet) Stat(a data.Attribute) Stat {
	if !a.Valid() {
		return Stat{}
	}
	return s.stats[a]
}

func checkScore(a data.Attribute, v int) error {
	if !a.Valid() {
		return invalid("unknown attribute %d", int(a))
	}
	if v < MinStatScore || v > MaxStatScore {
		return invalid("%s score %d out of range %d..%d", a.Code(), v, MinStatScore, MaxStatScore)
	}
	return nil
}

// SetStatTemp sets the temporary score. A temporary score above the
// potential raises the potential with it.
func (s *Sheet) SetStatTemp(a data.Attribute, v int) error {
	if err := checkScore(a, v); err != nil {
		return err
	}
	old := s.stats[a]
	s.apply(func() {
		s.stats[a].Temp = v
		if v > s.stats[a].Potential {
			s.stats[a].Potential = v
		}
	}, PropSkills, PropSkillCategories)
	s.bus.Emit(StatProperty(PropStatTemp, a), old.Temp, v)
	s.bus.Emit(StatProperty(PropStatPotential, a), old.Potential, s.stats[a].Potential)
	return nil
}

// SetStatPotential sets the potential score; it can't drop below the
// temporary score.
func (s *Sheet) SetStatPotential(a data.Attribute, v int) error {
	if err := checkScore(a, v); err != nil {
		return err
	}
	if v < s.stats[a].Temp {
		return invalid("%s potential %d below temporary %d", a.Code(), v, s.stats[a].Temp)
	}
	old := s.stats[a].Potential
	s.stats[a].Potential = v
	s.bus.Emit(StatProperty(PropStatPotential, a), old, v)
	return nil
}

// SetStatMisc sets the user misc bonus of an attribute.
func (s *Sheet) SetStatMisc(a data.Attribute, v int) error {
	if !a.Valid() {
		return invalid("unknown attribute %d", int(a))
	}
	old := s.stats[a].Misc
	s.apply(func() { s.stats[a].Misc = v }, PropSkills, PropSkillCategories)
	s.bus.Emit(StatProperty(PropStatMisc, a), old, v)
	return nil
}

// StatBonus returns the curve bonus of the temporary score alone.
func (s *Sheet) StatBonus(a data.Attribute) int {
	if !a.Valid() {
		return 0
	}
	return data.StatBonus(s.stats[a].Temp)
}

// StatMiscComputed returns the bonus from favorite items, talents and, for
// Intuition, the divine status.
func (s *Sheet) StatMiscComputed(a data.Attribute) int {
	total := s.overlay.StatBonus(a)
	for _, it := range s.items {
		if it.Favorite {
			total += it.StatBonuses[a]
		}
	}
	if a == data.Intuition {
		total += s.DivineStatus().IntuitionBonus
	}
	return total
}

// StatBonusTotal = curve(temp) + race + misc + computed misc.
func (s *Sheet) StatBonusTotal(a data.Attribute) int {
	if !a.Valid() {
		return 0
	}
	return s.StatBonus(a) + s.race.StatBonus(a) + s.stats[a].Misc + s.StatMiscComputed(a)
}

// DevPoints returns the development points of one level: the average of
// the temporary scores of AG, CO, ME, RE and SD, rounded down.
func (s *Sheet) DevPoints() int {
	sum, n := 0, 0
	for _, a := range data.Attributes {
		if a.UsedForDevPoints() {
			sum += s.stats[a].Temp
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / n
}
