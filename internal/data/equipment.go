package data

// Shield is a read-only shield definition.
type Shield struct {
	id      int
	name    string
	source  string
	melee   int
	missile int
}

func (s *Shield) ID() int        { return s.id }
func (s *Shield) Name() string   { return s.name }
func (s *Shield) Source() string { return s.source }

// MeleeBonus returns the defensive bonus against melee attacks.
func (s *Shield) MeleeBonus() int { return s.melee }

// MissileBonus returns the defensive bonus against missile attacks.
func (s *Shield) MissileBonus() int { return s.missile }

// ArmorModifier holds the penalties of one armor class.
// Penalties are zero or negative.
type ArmorModifier struct {
	armorClass  int
	minManeuver int
	maxManeuver int
	missile     int
	quickness   int
	skillID     int
}

func (a *ArmorModifier) ArmorClass() int { return a.armorClass }

// MinManeuverPenalty is the best penalty reachable with skill.
func (a *ArmorModifier) MinManeuverPenalty() int { return a.minManeuver }

// MaxManeuverPenalty is the penalty of an untrained wearer.
func (a *ArmorModifier) MaxManeuverPenalty() int { return a.maxManeuver }

func (a *ArmorModifier) MissilePenalty() int   { return a.missile }
func (a *ArmorModifier) QuicknessPenalty() int { return a.quickness }

// SkillID returns the maneuvering-in-armor skill offsetting the maneuver
// penalty; 0 when the armor class needs none.
func (a *ArmorModifier) SkillID() int { return a.skillID }
