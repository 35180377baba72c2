package model

import (
	"slices"
	"strings"

	"github.com/udisondev/rmsheet/internal/data"
)

// Property names published by Sheet.
const (
	PropRace                 = "race"
	PropCulture              = "culture"
	PropProfession           = "profession"
	PropName                 = "name"
	PropLevel                = "level"
	PropDevPoints            = "devPoints"
	PropLevelUp              = "levelUp"
	PropLevelUpPoints        = "levelUpPoints"
	PropMagicRealm           = "magicRealmChanged"
	PropSkills               = "skillsChanged"
	PropSkillCategories      = "skillCategoryChanged"
	PropArmor                = "armor"
	PropShield               = "shield"
	PropHitPoints            = "hitPoints"
	PropPowerPoints          = "powerPoints"
	PropExhaustion           = "exhaustionPoints"
	PropMovement             = "baseMovementRate"
	PropManeuverPenalty      = "maneuverPenalty"
	PropDefensiveBonus       = "defensiveBonus"
	PropMissileDefenseBonus  = "missileDefensiveBonus"
	PropTalents              = "talentsChanged"
	PropItems                = "itemsChanged"
	PropDivineStatus         = "divineStatus"
	PropWeight               = "weight"
	PropCreation             = "creation"
	PropTrainingPacks        = "trainingPacksChanged"
	PropWeaponCostOrder      = "weaponCostOrder"

	// Per-attribute properties carry the attribute code as suffix
	// (statTempAG, statBonusIN, ...).
	PropStatTemp      = "statTemp"
	PropStatPotential = "statPotential"
	PropStatMisc      = "statMisc"
	PropStatBonus     = "statBonus"
)

// StatProperty returns the per-attribute property name, e.g. statBonusCO.
func StatProperty(prefix string, a data.Attribute) string {
	return prefix + a.Code()
}

// Event is one property change. Old and New are nil for collection
// properties (skillsChanged, talentsChanged, ...).
type Event struct {
	Name string
	Old  any
	New  any
}

// Listener receives events synchronously on the mutating goroutine.
type Listener func(Event)

type subscription struct {
	id     int
	match  func(string) bool
	listen Listener
}

// PropertyBus dispatches property changes to subscribers in
// subscription order. Not safe for concurrent use; the sheet owning it
// is single-writer.
type PropertyBus struct {
	nextID int
	subs   []subscription
}

// Subscribe registers fn for one property. Call the returned func to
// unsubscribe.
func (b *PropertyBus) Subscribe(name string, fn Listener) func() {
	return b.add(func(n string) bool { return n == name }, fn)
}

// SubscribePrefix registers fn for every property starting with prefix
// (e.g. "statBonus" for all ten attributes).
func (b *PropertyBus) SubscribePrefix(prefix string, fn Listener) func() {
	return b.add(func(n string) bool { return strings.HasPrefix(n, prefix) }, fn)
}

// SubscribeAll registers fn for every property.
func (b *PropertyBus) SubscribeAll(fn Listener) func() {
	return b.add(func(string) bool { return true }, fn)
}

func (b *PropertyBus) add(match func(string) bool, fn Listener) func() {
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, match: match, listen: fn})
	return func() {
		b.subs = slices.DeleteFunc(b.subs, func(s subscription) bool { return s.id == id })
	}
}

// Emit publishes a change. Equal non-nil old and new values are dropped.
// Values must be comparable.
func (b *PropertyBus) Emit(name string, old, new any) {
	if old != nil && old == new {
		return
	}
	ev := Event{Name: name, Old: old, New: new}
	// Listeners may unsubscribe while being called.
	for _, s := range slices.Clone(b.subs) {
		if s.match(name) {
			s.listen(ev)
		}
	}
}
