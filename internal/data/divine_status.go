package data

// DivineStatus is one tier of the grace point ladder.
type DivineStatus struct {
	MinGrace             int     // lowest grace point total of the tier
	Name                 string  // tier label
	IntuitionBonus       int     // added to the Intuition bonus
	PowerPointRegen      float64 // power point recovery factor
	StaticSpellModifier  int     // static spell casting modifier
	ProtectionAgainstEvil int     // bonus against evil spells and creatures
}

// DivineStatusTable holds 11 tiers from -50 to +5000, ascending.
var DivineStatusTable = [11]DivineStatus{
	{MinGrace: -50, Name: "Forsaken", IntuitionBonus: -10, PowerPointRegen: 0.5, StaticSpellModifier: -20, ProtectionAgainstEvil: -10},
	{MinGrace: 0, Name: "Mundane", IntuitionBonus: 0, PowerPointRegen: 1, StaticSpellModifier: 0, ProtectionAgainstEvil: 0},
	{MinGrace: 10, Name: "Noticed", IntuitionBonus: 1, PowerPointRegen: 1, StaticSpellModifier: 0, ProtectionAgainstEvil: 0},
	{MinGrace: 50, Name: "Favored", IntuitionBonus: 2, PowerPointRegen: 1.1, StaticSpellModifier: 5, ProtectionAgainstEvil: 5},
	{MinGrace: 100, Name: "Blessed", IntuitionBonus: 3, PowerPointRegen: 1.2, StaticSpellModifier: 5, ProtectionAgainstEvil: 5},
	{MinGrace: 250, Name: "Devout", IntuitionBonus: 5, PowerPointRegen: 1.25, StaticSpellModifier: 10, ProtectionAgainstEvil: 10},
	{MinGrace: 500, Name: "Anointed", IntuitionBonus: 7, PowerPointRegen: 1.5, StaticSpellModifier: 10, ProtectionAgainstEvil: 10},
	{MinGrace: 1000, Name: "Chosen", IntuitionBonus: 10, PowerPointRegen: 1.75, StaticSpellModifier: 15, ProtectionAgainstEvil: 15},
	{MinGrace: 2000, Name: "Exalted", IntuitionBonus: 12, PowerPointRegen: 2, StaticSpellModifier: 20, ProtectionAgainstEvil: 20},
	{MinGrace: 3500, Name: "Saintly", IntuitionBonus: 15, PowerPointRegen: 2.5, StaticSpellModifier: 25, ProtectionAgainstEvil: 25},
	{MinGrace: 5000, Name: "Avatar", IntuitionBonus: 20, PowerPointRegen: 3, StaticSpellModifier: 30, ProtectionAgainstEvil: 30},
}

// GetDivineStatus returns the highest tier whose threshold is <= grace.
// Totals below the first threshold get the first tier.
func GetDivineStatus(grace int) DivineStatus {
	for i := len(DivineStatusTable) - 1; i > 0; i-- {
		if grace >= DivineStatusTable[i].MinGrace {
			return DivineStatusTable[i]
		}
	}
	return DivineStatusTable[0]
}
