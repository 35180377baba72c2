package config

import "slices"

// RuleSet holds the optional-rule switches every sheet is built with.
type RuleSet struct {
	// Content filters. Excluded entries can't be picked for new sheets.
	ExcludedSources     []string `yaml:"excluded_sources" env:"EXCLUDED_SOURCES"`
	ExcludedRaces       []int    `yaml:"excluded_races" env:"EXCLUDED_RACES"`
	ExcludedProfessions []int    `yaml:"excluded_professions" env:"EXCLUDED_PROFESSIONS"`

	// Spell list cost increase during level-up.
	SpellListThreshold SpellListThreshold `yaml:"spell_list_threshold"`
}

// SpellListThreshold is the number of spell lists that can be trained in
// one level before their cost goes up by another multiple. 0 disables the
// increase.
type SpellListThreshold struct {
	Default int `yaml:"default" env:"SPELL_LIST_THRESHOLD"`
	// Per-realm overrides keyed by realm key ("em", "em+in", "em+in+pr").
	Realms map[string]int `yaml:"realms"`
}

// DefaultRuleSet returns a rule set with nothing excluded and the spell
// list increase disabled.
func DefaultRuleSet() RuleSet {
	return RuleSet{}
}

// For returns the threshold for a realm key.
func (t SpellListThreshold) For(realmKey string) int {
	if n, ok := t.Realms[realmKey]; ok {
		return max(n, 0)
	}
	return max(t.Default, 0)
}

// SourceAllowed reports whether content from source may be used.
func (r RuleSet) SourceAllowed(source string) bool {
	return !slices.Contains(r.ExcludedSources, source)
}

// RaceAllowed reports whether raceID may be picked.
func (r RuleSet) RaceAllowed(raceID int) bool {
	return !slices.Contains(r.ExcludedRaces, raceID)
}

// ProfessionAllowed reports whether professionID may be picked.
func (r RuleSet) ProfessionAllowed(professionID int) bool {
	return !slices.Contains(r.ExcludedProfessions, professionID)
}
