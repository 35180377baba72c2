package model

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/google/uuid"

	"github.com/udisondev/rmsheet/internal/config"
	"github.com/udisondev/rmsheet/internal/data"
)

// CustomSkillIDBase is the first id handed out to player-defined skills, above
// every rule table id.
const CustomSkillIDBase = 1_000_000

// Defaults of a new sheet.
const (
	DefaultStatScore  = 50
	DefaultLevel      = 1
	DefaultBodyWeight = 150
	MinStatScore      = 1
	MaxStatScore      = 102
)

// Stat holds the player-entered scores of one attribute.
type Stat struct {
	Temp      int
	Potential int
	Misc      int
}

// Selection is the race, culture and profession a sheet is created with.
type Selection struct {
	RaceID       int
	CultureID    int
	ProfessionID int
}

// Sheet is a character sheet: player choices plus everything derived from
// them and the rule tables.
//
// Sheet is single-writer. Callers serialize mutations; every mutation runs
// to completion and publishes its events before returning.
type Sheet struct {
	id    uuid.UUID
	md    *data.MetaData
	rules config.RuleSet
	bus   PropertyBus

	levelUp *LevelUp

	name       string
	creation   bool
	race       *data.Race
	culture    *data.Culture
	profession *data.Profession
	magicRealm data.AttributeSet

	level       int
	gracePoints int
	stats       [data.AttributeCount]Stat

	skills     rankTable
	categories rankTable

	customSkills map[int]*data.Skill
	nextCustomID int

	// Skill types granted by training packs.
	skillTypeOverrides    map[int]data.SkillType
	categoryTypeOverrides map[int]data.SkillType
	trainingPacks         []int

	// Weapon categories in the order the profession's weapon costs apply.
	weaponOrder []int

	talents []*data.TalentFlaw
	overlay *TalentOverlay
	items   []MagicalItem

	armorClass    int
	shield        *data.Shield
	bodyWeight    float64
	carriedWeight float64

	// Skills resolved once from the rule tables.
	bodyDevSkill    *data.Skill
	powerPointSkill *data.Skill
}

// NewSheet creates a sheet in the creation phase.
func NewSheet(md *data.MetaData, rules config.RuleSet, sel Selection) (*Sheet, error) {
	race, err := pickRace(md, rules, sel.RaceID)
	if err != nil {
		return nil, err
	}
	culture, err := pickCulture(md, rules, sel.CultureID)
	if err != nil {
		return nil, err
	}
	prof, err := pickProfession(md, rules, sel.ProfessionID)
	if err != nil {
		return nil, err
	}

	s := newSheet(md, rules, uuid.New())
	s.creation = true
	s.race = race
	s.culture = culture
	s.profession = prof
	s.magicRealm = prof.Realm()
	s.level = DefaultLevel
	s.bodyWeight = DefaultBodyWeight
	s.weaponOrder = defaultWeaponOrder(md)
	if ac := md.ArmorClasses(); len(ac) > 0 {
		s.armorClass = ac[0]
	}
	for i := range s.stats {
		s.stats[i] = Stat{Temp: DefaultStatScore, Potential: DefaultStatScore}
	}

	slog.Debug("sheet created",
		"id", s.id,
		"race", race.Name(),
		"culture", culture.Name(),
		"profession", prof.Name())
	return s, nil
}

// newSheet allocates an empty sheet; callers fill in the selection.
func newSheet(md *data.MetaData, rules config.RuleSet, id uuid.UUID) *Sheet {
	s := &Sheet{
		id:                    id,
		md:                    md,
		rules:                 rules,
		skills:                make(rankTable),
		categories:            make(rankTable),
		customSkills:          make(map[int]*data.Skill),
		nextCustomID:          CustomSkillIDBase,
		skillTypeOverrides:    make(map[int]data.SkillType),
		categoryTypeOverrides: make(map[int]data.SkillType),
		overlay:               NewTalentOverlay(nil),
	}
	s.levelUp = NewLevelUp(s)
	s.bodyDevSkill, s.powerPointSkill = findProgressionSkills(md)
	return s
}

func findProgressionSkills(md *data.MetaData) (bodyDev, powerPoints *data.Skill) {
	for _, sk := range md.Skills() {
		if sk.Kind() != data.SkillKindPlain {
			continue
		}
		cat := md.Category(sk.CategoryID())
		if cat == nil {
			continue
		}
		switch {
		case bodyDev == nil && cat.RankType().IsBodyDevelopment():
			bodyDev = sk
		case powerPoints == nil && cat.RankType().IsPowerPoint():
			powerPoints = sk
		}
	}
	return bodyDev, powerPoints
}

func defaultWeaponOrder(md *data.MetaData) []int {
	var order []int
	for _, c := range md.Categories() {
		if c.RankType().IsCostSwitchable() {
			order = append(order, c.ID())
		}
	}
	return order
}

func invalid(format string, args ...any) *Error {
	return newError(CodeInvalidValue, fmt.Sprintf(format, args...), nil)
}

func pickRace(md *data.MetaData, rules config.RuleSet, id int) (*data.Race, error) {
	r := md.Race(id)
	if r == nil {
		return nil, invalid("unknown race %d", id)
	}
	if !rules.RaceAllowed(id) || !rules.SourceAllowed(r.Source()) {
		return nil, invalid("race %s is excluded by the rule set", r.Name())
	}
	return r, nil
}

func pickCulture(md *data.MetaData, rules config.RuleSet, id int) (*data.Culture, error) {
	c := md.Culture(id)
	if c == nil {
		return nil, invalid("unknown culture %d", id)
	}
	if !rules.SourceAllowed(c.Source()) {
		return nil, invalid("culture %s is excluded by the rule set", c.Name())
	}
	return c, nil
}

func pickProfession(md *data.MetaData, rules config.RuleSet, id int) (*data.Profession, error) {
	p := md.Profession(id)
	if p == nil {
		return nil, invalid("unknown profession %d", id)
	}
	if !rules.ProfessionAllowed(id) || !rules.SourceAllowed(p.Source()) {
		return nil, invalid("profession %s is excluded by the rule set", p.Name())
	}
	return p, nil
}

// AvailableRaces returns the races the rule set allows, in table order.
func AvailableRaces(md *data.MetaData, rules config.RuleSet) []*data.Race {
	return slices.DeleteFunc(md.Races(), func(r *data.Race) bool {
		return !rules.RaceAllowed(r.ID()) || !rules.SourceAllowed(r.Source())
	})
}

// AvailableCultures returns the cultures the rule set allows, in table order.
func AvailableCultures(md *data.MetaData, rules config.RuleSet) []*data.Culture {
	return slices.DeleteFunc(md.Cultures(), func(c *data.Culture) bool {
		return !rules.SourceAllowed(c.Source())
	})
}

// AvailableProfessions returns the professions the rule set allows, in table order.
func AvailableProfessions(md *data.MetaData, rules config.RuleSet) []*data.Profession {
	return slices.DeleteFunc(md.Professions(), func(p *data.Profession) bool {
		return !rules.ProfessionAllowed(p.ID()) || !rules.SourceAllowed(p.Source())
	})
}

func (s *Sheet) ID() uuid.UUID            { return s.id }
func (s *Sheet) MetaData() *data.MetaData { return s.md }
func (s *Sheet) Rules() config.RuleSet    { return s.rules }
func (s *Sheet) Name() string             { return s.name }

func (s *Sheet) Race() *data.Race             { return s.race }
func (s *Sheet) Culture() *data.Culture       { return s.culture }
func (s *Sheet) Profession() *data.Profession { return s.profession }

// InCreation reports whether race, culture and profession can still change.
func (s *Sheet) InCreation() bool { return s.creation }

// Subscribe registers fn for one property; see PropertyBus.
func (s *Sheet) Subscribe(name string, fn Listener) func() { return s.bus.Subscribe(name, fn) }

// SubscribePrefix registers fn for every property starting with prefix.
func (s *Sheet) SubscribePrefix(prefix string, fn Listener) func() {
	return s.bus.SubscribePrefix(prefix, fn)
}

// SubscribeAll registers fn for every property.
func (s *Sheet) SubscribeAll(fn Listener) func() { return s.bus.SubscribeAll(fn) }

// SetName renames the character.
func (s *Sheet) SetName(name string) {
	old := s.name
	s.name = name
	s.bus.Emit(PropName, old, name)
}

func (s *Sheet) mustCreate(op string) {
	if !s.creation {
		panic(fmt.Sprintf("sheet: %s outside the creation phase", op))
	}
}

// SetRace changes the race. Panics outside the creation phase.
func (s *Sheet) SetRace(raceID int) error {
	s.mustCreate("SetRace")
	race, err := pickRace(s.md, s.rules, raceID)
	if err != nil {
		return err
	}
	old := s.race.ID()
	s.apply(func() { s.race = race }, PropSkills, PropSkillCategories)
	s.bus.Emit(PropRace, old, raceID)
	return nil
}

// SetCulture changes the culture. Panics outside the creation phase.
func (s *Sheet) SetCulture(cultureID int) error {
	s.mustCreate("SetCulture")
	culture, err := pickCulture(s.md, s.rules, cultureID)
	if err != nil {
		return err
	}
	old := s.culture.ID()
	s.culture = culture
	s.bus.Emit(PropCulture, old, cultureID)
	return nil
}

// SetProfession changes the profession. A fixed profession realm replaces
// the magic realm; the weapon cost order goes back to the default.
// Panics outside the creation phase.
func (s *Sheet) SetProfession(professionID int) error {
	s.mustCreate("SetProfession")
	prof, err := pickProfession(s.md, s.rules, professionID)
	if err != nil {
		return err
	}
	old := s.profession.ID()
	oldRealm := s.magicRealm
	s.apply(func() {
		s.profession = prof
		if !prof.RealmEditable() {
			s.magicRealm = prof.Realm()
		}
		s.weaponOrder = defaultWeaponOrder(s.md)
	}, PropSkills, PropSkillCategories)
	s.bus.Emit(PropProfession, old, professionID)
	s.bus.Emit(PropMagicRealm, oldRealm, s.magicRealm)
	return nil
}

// WeaponCostOrder returns the weapon categories in cost order.
func (s *Sheet) WeaponCostOrder() []int { return slices.Clone(s.weaponOrder) }

// SetWeaponCostOrder assigns the profession's weapon costs to weapon
// categories: order[i] gets the i-th cost. The order must be a
// permutation of the weapon categories. Panics outside the creation phase.
func (s *Sheet) SetWeaponCostOrder(order []int) error {
	s.mustCreate("SetWeaponCostOrder")
	want := slices.Sorted(slices.Values(defaultWeaponOrder(s.md)))
	got := slices.Sorted(slices.Values(order))
	if !slices.Equal(want, got) {
		return invalid("weapon cost order %v is not a permutation of %v", order, want)
	}
	s.weaponOrder = slices.Clone(order)
	s.bus.Emit(PropWeaponCostOrder, nil, nil)
	return nil
}

// FinishCreation grants the culture's adolescence ranks and locks race,
// culture and profession. Panics outside the creation phase.
func (s *Sheet) FinishCreation() {
	s.mustCreate("FinishCreation")
	s.apply(func() {
		for id, v := range s.culture.SkillRanks() {
			s.skills.get(id).Value += v
		}
		for id, v := range s.culture.CategoryRanks() {
			s.categories.get(id).Value += v
		}
		s.creation = false
	}, PropSkills, PropSkillCategories)
	s.bus.Emit(PropCreation, true, false)
}

// Level returns the character level.
func (s *Sheet) Level() int { return s.level }

// SetLevel sets the character level (>= 1).
func (s *Sheet) SetLevel(level int) error {
	if level < 1 {
		return invalid("level %d, must be at least 1", level)
	}
	old := s.level
	s.level = level
	s.bus.Emit(PropLevel, old, level)
	return nil
}

// GracePoints returns the divine grace point total.
func (s *Sheet) GracePoints() int { return s.gracePoints }

// SetGracePoints sets the grace points; the divine status follows.
func (s *Sheet) SetGracePoints(points int) {
	s.apply(func() { s.gracePoints = points }, PropSkills, PropSkillCategories)
}

// DivineStatus returns the tier matching the grace points.
func (s *Sheet) DivineStatus() data.DivineStatus {
	return data.GetDivineStatus(s.gracePoints)
}

// MagicRealm returns the realm attributes of the character.
func (s *Sheet) MagicRealm() data.AttributeSet { return s.magicRealm }

// MagicRealmEditable reports whether the profession lets the player pick
// the realm.
func (s *Sheet) MagicRealmEditable() bool { return s.profession.RealmEditable() }

// SetMagicRealm sets the realm. Only realm attributes are accepted.
// Panics when the profession fixes the realm.
func (s *Sheet) SetMagicRealm(realm data.AttributeSet) error {
	if !s.profession.RealmEditable() {
		panic(fmt.Sprintf("sheet: magic realm of %s is fixed", s.profession.Name()))
	}
	if realm.IsEmpty() {
		return invalid("empty magic realm")
	}
	for _, a := range realm.Slice() {
		if !a.IsRealm() {
			return invalid("%s can't be a magic realm", a.Code())
		}
	}
	old := s.magicRealm
	s.apply(func() { s.magicRealm = realm }, PropSkills, PropSkillCategories)
	s.bus.Emit(PropMagicRealm, old, realm)
	return nil
}

// LevelUp returns the level-up session.
func (s *Sheet) LevelUp() *LevelUp { return s.levelUp }

// StartLevelUp opens a level-up session with the current development
// points. Panics during the creation phase: race, culture and profession
// must be final before points are spent.
func (s *Sheet) StartLevelUp() {
	if s.creation {
		panic("sheet: level-up during the creation phase")
	}
	s.apply(s.levelUp.Start)
}

// EndLevelUp closes the session; unspent points are dropped.
func (s *Sheet) EndLevelUp() {
	s.apply(s.levelUp.End)
}

// RemainingDevPoints returns the unspent points of the session, 0 when
// no session is active.
func (s *Sheet) RemainingDevPoints() int { return s.levelUp.Remaining() }

// derived holds every published scalar that depends on other state.
type derived struct {
	devPoints      int
	levelUp        bool
	levelUpPoints  int
	hitPoints      int
	powerPoints    int
	exhaustion     int
	movement       int
	maneuver       int
	defensiveBonus int
	missileDB      int
	divineStatus   string
	statBonus      [data.AttributeCount]int
}

func (s *Sheet) derive() derived {
	d := derived{
		devPoints:      s.DevPoints(),
		levelUp:        s.levelUp.Active(),
		levelUpPoints:  s.levelUp.Remaining(),
		hitPoints:      s.HitPoints(),
		powerPoints:    s.PowerPoints(),
		exhaustion:     s.ExhaustionPoints(),
		movement:       s.BaseMovementRate(),
		maneuver:       s.ManeuverPenalty(),
		defensiveBonus: s.DefensiveBonus(),
		missileDB:      s.MissileDefensiveBonus(),
		divineStatus:   s.DivineStatus().Name,
	}
	for _, a := range data.Attributes {
		d.statBonus[a] = s.StatBonusTotal(a)
	}
	return d
}

// apply runs a mutation, then publishes the given collection properties
// and every derived value that changed.
func (s *Sheet) apply(mutate func(), collections ...string) {
	before := s.derive()
	mutate()
	after := s.derive()

	for _, name := range collections {
		s.bus.Emit(name, nil, nil)
	}
	for _, a := range data.Attributes {
		s.bus.Emit(StatProperty(PropStatBonus, a), before.statBonus[a], after.statBonus[a])
	}
	s.bus.Emit(PropDevPoints, before.devPoints, after.devPoints)
	s.bus.Emit(PropLevelUp, before.levelUp, after.levelUp)
	s.bus.Emit(PropLevelUpPoints, before.levelUpPoints, after.levelUpPoints)
	s.bus.Emit(PropHitPoints, before.hitPoints, after.hitPoints)
	s.bus.Emit(PropPowerPoints, before.powerPoints, after.powerPoints)
	s.bus.Emit(PropExhaustion, before.exhaustion, after.exhaustion)
	s.bus.Emit(PropMovement, before.movement, after.movement)
	s.bus.Emit(PropManeuverPenalty, before.maneuver, after.maneuver)
	s.bus.Emit(PropDefensiveBonus, before.defensiveBonus, after.defensiveBonus)
	s.bus.Emit(PropMissileDefenseBonus, before.missileDB, after.missileDB)
	s.bus.Emit(PropDivineStatus, before.divineStatus, after.divineStatus)
}

func idMeta(key string, id int) map[string]string {
	return map[string]string{key: strconv.Itoa(id)}
}
