package model

import (
	"math"

	"github.com/udisondev/rmsheet/internal/data"
)

// ArmorClass returns the worn armor class.
func (s *Sheet) ArmorClass() int { return s.armorClass }

// SetArmorClass changes the worn armor class.
func (s *Sheet) SetArmorClass(ac int) error {
	if s.md.ArmorModifier(ac) == nil {
		return invalid("unknown armor class %d", ac)
	}
	old := s.armorClass
	s.apply(func() { s.armorClass = ac })
	s.bus.Emit(PropArmor, old, ac)
	return nil
}

// Shield returns the carried shield, nil for none.
func (s *Sheet) Shield() *data.Shield { return s.shield }

// SetShield changes the shield; 0 removes it.
func (s *Sheet) SetShield(shieldID int) error {
	var sh *data.Shield
	if shieldID != 0 {
		if sh = s.md.Shield(shieldID); sh == nil {
			return invalid("unknown shield %d", shieldID)
		}
	}
	old := s.shieldID()
	s.apply(func() { s.shield = sh })
	s.bus.Emit(PropShield, old, shieldID)
	return nil
}

func (s *Sheet) shieldID() int {
	if s.shield == nil {
		return 0
	}
	return s.shield.ID()
}

func (s *Sheet) BodyWeight() float64    { return s.bodyWeight }
func (s *Sheet) CarriedWeight() float64 { return s.carriedWeight }

// SetBodyWeight sets the body weight (> 0).
func (s *Sheet) SetBodyWeight(w float64) error {
	if w <= 0 {
		return invalid("body weight %v must be positive", w)
	}
	old := s.bodyWeight
	s.apply(func() { s.bodyWeight = w })
	s.bus.Emit(PropWeight, old, w)
	return nil
}

// SetCarriedWeight sets the weight of the carried gear (>= 0).
func (s *Sheet) SetCarriedWeight(w float64) error {
	if w < 0 {
		return invalid("carried weight %v must not be negative", w)
	}
	old := s.carriedWeight
	s.apply(func() { s.carriedWeight = w })
	s.bus.Emit(PropWeight, old, w)
	return nil
}

// HitPoints returns the body development total plus talent hits.
func (s *Sheet) HitPoints() int {
	hits := s.overlay.Hits()
	if s.bodyDevSkill != nil {
		hits += s.SkillTotalBonus(s.bodyDevSkill.ID())
	}
	return max(0, hits)
}

// PowerPoints returns the power point development total; characters
// without a realm have none.
func (s *Sheet) PowerPoints() int {
	if s.magicRealm.IsEmpty() || s.powerPointSkill == nil {
		return 0
	}
	return max(0, s.SkillTotalBonus(s.powerPointSkill.ID()))
}

// ExhaustionPoints = (40 + 3×CO bonus) × talent multiplier.
func (s *Sheet) ExhaustionPoints() int {
	base := 40 + 3*s.StatBonusTotal(data.Constitution)
	return int(math.Round(float64(base) * s.overlay.ExhaustionMultiplier()))
}

// BaseMovementRate = (50 + race stride) × talent multiplier, feet per round.
func (s *Sheet) BaseMovementRate() int {
	return int(math.Round(float64(50+s.race.Stride()) * s.overlay.MovementMultiplier()))
}

// WeightAllowance returns the weight carried without penalty, 10% of the
// body weight.
func (s *Sheet) WeightAllowance() float64 {
	return s.bodyWeight / 10
}

// EncumbrancePenalty returns -8 per 10% of body weight carried over the
// allowance, scaled by the talent weight penalty multiplier.
func (s *Sheet) EncumbrancePenalty() int {
	allowance := s.WeightAllowance()
	excess := s.carriedWeight - allowance
	if excess <= 0 || allowance <= 0 {
		return 0
	}
	return -int(math.Round(8 * excess / allowance * s.overlay.WeightPenaltyMultiplier()))
}

// ManeuverPenalty returns the armor maneuver penalty, offset by the armor
// skill but never better than the armor's minimum penalty.
func (s *Sheet) ManeuverPenalty() int {
	am := s.md.ArmorModifier(s.armorClass)
	if am == nil {
		return 0
	}
	penalty := am.MaxManeuverPenalty()
	if am.SkillID() != 0 {
		penalty += max(0, s.SkillTotalBonus(am.SkillID()))
	}
	return min(am.MinManeuverPenalty(), penalty)
}

// MissilePenalty returns the armor missile penalty.
func (s *Sheet) MissilePenalty() int {
	if am := s.md.ArmorModifier(s.armorClass); am != nil {
		return am.MissilePenalty()
	}
	return 0
}

func (s *Sheet) quicknessDefense() int {
	db := 3*s.StatBonusTotal(data.Quickness) + s.overlay.DefensiveBonus()
	if am := s.md.ArmorModifier(s.armorClass); am != nil {
		db += am.QuicknessPenalty()
	}
	return db
}

// DefensiveBonus = 3×QU bonus + armor quickness penalty + shield + talents.
func (s *Sheet) DefensiveBonus() int {
	db := s.quicknessDefense()
	if s.shield != nil {
		db += s.shield.MeleeBonus()
	}
	return db
}

// MissileDefensiveBonus is DefensiveBonus with the shield's missile value.
func (s *Sheet) MissileDefensiveBonus() int {
	db := s.quicknessDefense()
	if s.shield != nil {
		db += s.shield.MissileBonus()
	}
	return db
}

// ResistanceBonus returns the resistance roll bonus: weighted stat totals
// plus race and talent modifiers.
func (s *Sheet) ResistanceBonus(r data.Resistance) int {
	total := s.race.ResistanceBonus(r) + s.overlay.ResistanceBonus(r)
	for a, w := range r.StatWeights() {
		total += w * s.StatBonusTotal(a)
	}
	return total
}

// HitRecoveryPerHour returns hits recovered per hour of rest.
func (s *Sheet) HitRecoveryPerHour() int {
	base := max(1, int(math.Round(float64(s.StatBonusTotal(data.Constitution))/2)))
	return int(math.Round(float64(base) * s.race.RecoveryMultiplier() * s.overlay.RecoveryMultiplier()))
}

// PowerPointRecoveryPerHour returns power points recovered per hour of
// rest; a full recovery takes eight hours at divine factor 1.
func (s *Sheet) PowerPointRecoveryPerHour() int {
	pp := float64(s.PowerPoints())
	return int(math.Round(pp * s.DivineStatus().PowerPointRegen / 8 * s.overlay.RecoveryMultiplier()))
}

// Tolerance returns the minutes the character can go without air, from
// the CO temporary score.
func (s *Sheet) Tolerance() int {
	return int(math.Round(float64(s.stats[data.Constitution].Temp) * s.overlay.ToleranceMultiplier()))
}
