package testutil

import (
	"testing"

	"github.com/udisondev/rmsheet/internal/data"
)

// Ids of the fixture rule tables.
const (
	CatAthletic        = 1
	CatBodyDev         = 2
	CatPowerPoints     = 3
	CatWeaponEdged     = 4
	CatWeaponMissile   = 5
	CatArmor           = 6
	CatSpecialAttacks  = 7
	CatOwnOpen         = 10
	CatOwnClosed       = 11
	CatOwnBase         = 12
	CatOwnProfession   = 13
	CatOtherOpen       = 14
	CatOtherClosed     = 15
	CatOtherProfession = 16
	CatOtherBase       = 17

	SkillClimbing      = 101
	SkillBodyDev       = 102
	SkillPowerPoints   = 103
	SkillBroadsword    = 104
	SkillShortBow      = 105
	SkillArmorManeuver = 106
	SkillAmbush        = 107
	SkillTreeSinging   = 108

	ListSpiritMastery  = 201 // EM open
	ListLoftyMovements = 202 // EM closed
	ListFireLaw        = 203 // EM Magician base
	ListDetections     = 204 // IN open
	ListLightLaw       = 205 // EM Magician base
	ListSoundMolding   = 206 // EM Monk base
	ListWindLaw        = 207 // EM Magician base

	RaceCommonMan = 1
	RaceWoodElf   = 2

	CultureRural  = 1
	CultureSylvan = 2

	ProfFighter  = 1
	ProfMagician = 2
	ProfMonk     = 3

	ShieldNormal = 1
	ShieldFull   = 2

	ArmorSkin  = 1
	ArmorChain = 13
	ArmorPlate = 20

	PackCityGuard = 1

	TalentReflexes = 1
	TalentStout    = 2
	FlawClumsy     = 3
	TalentGift     = 4

	// SourceCompanion marks fixture entries a rule set can exclude.
	SourceCompanion = "companion"
)

// Rules builds a small but complete set of rule tables. Every category
// kind, spell list resolution path and cost lookup has at least one entry.
func Rules(tb testing.TB) *data.MetaData {
	tb.Helper()

	md, err := RulesBuilder().Build()
	if err != nil {
		tb.Fatalf("building fixture rules: %v", err)
	}
	return md
}

// RulesBuilder returns the builder behind Rules so tests can add entries.
func RulesBuilder() *data.Builder {
	b := data.NewBuilder()
	addCategories(b)
	addSkills(b)
	addRaces(b)
	addProfessions(b)
	addSpellCosts(b)
	addEquipment(b)
	addExtras(b)
	return b
}

func addCategories(b *data.Builder) {
	const (
		ag = data.Agility
		co = data.Constitution
		sd = data.SelfDiscipline
		qu = data.Quickness
		st = data.Strength
	)
	b.AddCategory(data.CategoryParams{ID: CatAthletic, Name: "Athletic", Source: "core", RankType: data.RankTypeStandard, Attributes: []data.Attribute{ag, qu, st}}).
		AddCategory(data.CategoryParams{ID: CatBodyDev, Name: "Body Development", Source: "core", RankType: data.RankTypeBodyDevelopment, Attributes: []data.Attribute{co, co, sd}}).
		AddCategory(data.CategoryParams{ID: CatPowerPoints, Name: "Power Point Development", Source: "core", RankType: data.RankTypePowerPoint}).
		AddCategory(data.CategoryParams{ID: CatWeaponEdged, Name: "Weapon • 1-H Edged", Source: "core", RankType: data.RankTypeWeapon, Attributes: []data.Attribute{st, ag, st}}).
		AddCategory(data.CategoryParams{ID: CatWeaponMissile, Name: "Weapon • Missile", Source: "core", RankType: data.RankTypeWeapon, Attributes: []data.Attribute{ag, ag, st}}).
		AddCategory(data.CategoryParams{ID: CatArmor, Name: "Armor • Heavy", Source: "core", RankType: data.RankTypeStandard, Attributes: []data.Attribute{st, st, ag}}).
		AddCategory(data.CategoryParams{ID: CatSpecialAttacks, Name: "Special Attacks", Source: "core", RankType: data.RankTypeLimited})

	own := []struct {
		id      int
		name    string
		subtype data.RankSubtype
	}{
		{CatOwnOpen, "Spells • Own Realm Open", data.SubtypeOpen},
		{CatOwnClosed, "Spells • Own Realm Closed", data.SubtypeClosed},
		{CatOwnBase, "Spells • Own Realm Own Base", data.SubtypeBase},
		{CatOwnProfession, "Spells • Own Realm Other Base", data.SubtypeProfession},
	}
	for _, c := range own {
		b.AddCategory(data.CategoryParams{ID: c.id, Name: c.name, Source: "core", RankType: data.RankTypeMagicOwnRealm, Subtype: c.subtype})
	}
	other := []struct {
		id      int
		name    string
		subtype data.RankSubtype
	}{
		{CatOtherOpen, "Spells • Other Realm Open", data.SubtypeOpen},
		{CatOtherClosed, "Spells • Other Realm Closed", data.SubtypeClosed},
		{CatOtherProfession, "Spells • Other Realm Other Base", data.SubtypeProfession},
		{CatOtherBase, "Spells • Other Realm Own Base", data.SubtypeBase},
	}
	for _, c := range other {
		b.AddCategory(data.CategoryParams{ID: c.id, Name: c.name, Source: "core", RankType: data.RankTypeMagicOtherRealm, Subtype: c.subtype})
	}
}

func addSkills(b *data.Builder) {
	b.AddSkill(data.SkillParams{ID: SkillClimbing, Name: "Climbing", Source: "core", CategoryID: CatAthletic}).
		AddSkill(data.SkillParams{ID: SkillBodyDev, Name: "Body Development", Source: "core", CategoryID: CatBodyDev}).
		AddSkill(data.SkillParams{ID: SkillPowerPoints, Name: "Power Point Development", Source: "core", CategoryID: CatPowerPoints}).
		AddSkill(data.SkillParams{ID: SkillBroadsword, Name: "Broadsword", Source: "core", CategoryID: CatWeaponEdged}).
		AddSkill(data.SkillParams{ID: SkillShortBow, Name: "Short Bow", Source: "core", CategoryID: CatWeaponMissile}).
		AddSkill(data.SkillParams{ID: SkillArmorManeuver, Name: "Maneuvering in Armor", Source: "core", CategoryID: CatArmor}).
		AddSkill(data.SkillParams{ID: SkillAmbush, Name: "Ambush", Source: "core", CategoryID: CatSpecialAttacks}).
		AddSkill(data.SkillParams{ID: SkillTreeSinging, Name: "Tree Singing", Source: SourceCompanion, CategoryID: CatAthletic, Races: []int{RaceWoodElf}})

	em := data.NewAttributeSet(data.Empathy)
	in := data.NewAttributeSet(data.Intuition)
	b.AddSpellList(data.SpellListParams{ID: ListSpiritMastery, Name: "Spirit Mastery", Source: "core", Realm: em, Type: data.SpellListOpen}).
		AddSpellList(data.SpellListParams{ID: ListLoftyMovements, Name: "Lofty Movements", Source: "core", Realm: em, Type: data.SpellListClosed}).
		AddSpellList(data.SpellListParams{ID: ListFireLaw, Name: "Fire Law", Source: "core", Realm: em, Type: data.SpellListProfession, Professions: []int{ProfMagician}}).
		AddSpellList(data.SpellListParams{ID: ListDetections, Name: "Detections", Source: "core", Realm: in, Type: data.SpellListOpen}).
		AddSpellList(data.SpellListParams{ID: ListLightLaw, Name: "Light Law", Source: "core", Realm: em, Type: data.SpellListProfession, Professions: []int{ProfMagician}}).
		AddSpellList(data.SpellListParams{ID: ListSoundMolding, Name: "Sound Molding", Source: "core", Realm: em, Type: data.SpellListProfession, Professions: []int{ProfMonk}}).
		AddSpellList(data.SpellListParams{ID: ListWindLaw, Name: "Wind Law", Source: "core", Realm: em, Type: data.SpellListProfession, Professions: []int{ProfMagician}})
}

func addRaces(b *data.Builder) {
	b.AddRace(data.RaceParams{
		ID:              RaceCommonMan,
		Name:            "Common Man",
		Source:          "core",
		StatBonuses:     map[data.Attribute]int{data.Constitution: 2, data.Strength: 2},
		Resistances:     map[data.Resistance]int{data.ResistPoison: 5},
		BodyDevelopment: data.NewProgression(0, 6, 4, 2, 1),
		PowerPoints: map[data.Attribute]data.Progression{
			data.Empathy:   data.NewProgression(0, 4, 3, 2, 1),
			data.Intuition: data.NewProgression(0, 3, 2, 1, 1),
			data.Presence:  data.NewProgression(0, 4, 3, 2, 1),
		},
		Recovery: 1,
	}).AddRace(data.RaceParams{
		ID:              RaceWoodElf,
		Name:            "Wood Elf",
		Source:          SourceCompanion,
		StatBonuses:     map[data.Attribute]int{data.Agility: 2, data.Empathy: 4},
		Resistances:     map[data.Resistance]int{data.ResistDisease: 100},
		BodyDevelopment: data.NewProgression(0, 5, 3, 1, 1),
		PowerPoints: map[data.Attribute]data.Progression{
			data.Empathy:   data.NewProgression(0, 7, 6, 5, 4),
			data.Intuition: data.NewProgression(0, 6, 5, 4, 3),
			data.Presence:  data.NewProgression(0, 6, 5, 4, 3),
		},
		Stride:     5,
		Recovery:   0.5,
		SkillTypes: map[int]data.SkillType{SkillTreeSinging: data.SkillTypeEveryman},
	})

	b.AddCulture(data.CultureParams{
		ID:            CultureRural,
		Name:          "Rural",
		Source:        "core",
		SkillRanks:    map[int]float64{SkillClimbing: 2, SkillBodyDev: 1},
		CategoryRanks: map[int]float64{CatAthletic: 1},
	}).AddCulture(data.CultureParams{
		ID:         CultureSylvan,
		Name:       "Sylvan",
		Source:     SourceCompanion,
		SkillRanks: map[int]float64{SkillTreeSinging: 2},
	})
}

func addProfessions(b *data.Builder) {
	b.AddProfession(data.ProfessionParams{
		ID:              ProfFighter,
		Name:            "Fighter",
		Source:          "core",
		SpellUser:       data.SpellUserNon,
		CategoryBonuses: map[int]int{CatBodyDev: 5, CatWeaponEdged: 5},
		CategoryCosts: map[int]data.Skillcost{
			CatAthletic:       data.NewSkillcost(2, 6),
			CatBodyDev:        data.NewSkillcost(2, 5),
			CatPowerPoints:    data.NewSkillcost(8),
			CatArmor:          data.NewSkillcost(1, 5),
			CatSpecialAttacks: data.NewSkillcost(3, 7),
		},
		WeaponCosts: []data.Skillcost{data.NewSkillcost(2, 5), data.NewSkillcost(2, 7)},
		SkillTypes:  map[int]data.SkillType{SkillArmorManeuver: data.SkillTypeEveryman},
	}).AddProfession(data.ProfessionParams{
		ID:              ProfMagician,
		Name:            "Magician",
		Source:          "core",
		SpellUser:       data.SpellUserPure,
		Realm:           data.NewAttributeSet(data.Empathy),
		CategoryBonuses: map[int]int{CatOwnBase: 10},
		CategoryCosts: map[int]data.Skillcost{
			CatAthletic:       data.NewSkillcost(3, 7),
			CatBodyDev:        data.NewSkillcost(6),
			CatPowerPoints:    data.NewSkillcost(2, 4),
			CatArmor:          data.NewSkillcost(9),
			CatSpecialAttacks: data.NewSkillcost(4),
		},
		WeaponCosts: []data.Skillcost{data.NewSkillcost(9), data.NewSkillcost(20)},
	}).AddProfession(data.ProfessionParams{
		ID:        ProfMonk,
		Name:      "Monk",
		Source:    SourceCompanion,
		SpellUser: data.SpellUserSemi,
		CategoryCosts: map[int]data.Skillcost{
			CatAthletic: data.NewSkillcost(1, 3),
			CatBodyDev:  data.NewSkillcost(2, 5),
		},
		WeaponCosts:        []data.Skillcost{data.NewSkillcost(3, 8), data.NewSkillcost(4)},
		CategorySkillTypes: map[int]data.SkillType{CatAthletic: data.SkillTypeOccupational},
	})
}

// addSpellCosts: pure casters pay 4+tier per step on their own realm,
// everybody else pays one expensive step.
func addSpellCosts(b *data.Builder) {
	own := []int{CatOwnOpen, CatOwnClosed, CatOwnBase, CatOwnProfession}
	other := []int{CatOtherOpen, CatOtherClosed, CatOtherProfession, CatOtherBase}
	for tier := range data.SpellRankTiers {
		c := 4 + tier
		for _, cat := range own {
			b.AddSpellCost(data.SpellCostKey{CategoryID: cat, Tier: tier, SpellUser: data.SpellUserPure}, data.NewSkillcost(c, c, c))
			b.AddSpellCost(data.SpellCostKey{CategoryID: cat, Tier: tier, SpellUser: data.SpellUserSemi}, data.NewSkillcost(2*c, 2*c))
		}
		for _, cat := range other {
			b.AddSpellCost(data.SpellCostKey{CategoryID: cat, Tier: tier, SpellUser: data.SpellUserPure}, data.NewSkillcost(10+5*tier))
			b.AddSpellCost(data.SpellCostKey{CategoryID: cat, Tier: tier, SpellUser: data.SpellUserSemi}, data.NewSkillcost(15+5*tier))
			b.AddSpellCost(data.SpellCostKey{CategoryID: cat, Tier: tier, SpellUser: data.SpellUserNon}, data.NewSkillcost(20+5*tier))
		}
	}
}

func addEquipment(b *data.Builder) {
	b.AddShield(data.ShieldParams{ID: ShieldNormal, Name: "Normal Shield", Source: "core", Melee: 25, Missile: 25}).
		AddShield(data.ShieldParams{ID: ShieldFull, Name: "Full Shield", Source: "core", Melee: 30, Missile: 40})

	b.AddArmor(data.ArmorParams{ArmorClass: ArmorSkin}).
		AddArmor(data.ArmorParams{ArmorClass: ArmorChain, MinManeuver: -10, MaxManeuver: -40, Missile: -10, SkillID: SkillArmorManeuver}).
		AddArmor(data.ArmorParams{ArmorClass: ArmorPlate, MinManeuver: -45, MaxManeuver: -165, Missile: -30, Quickness: -20, SkillID: SkillArmorManeuver})
}

func addExtras(b *data.Builder) {
	b.AddTrainingPack(data.TrainingPackParams{
		ID:            PackCityGuard,
		Name:          "City Guard",
		Source:        "core",
		Costs:         map[int]int{ProfFighter: 20, ProfMagician: 35},
		SkillRanks:    map[int]float64{SkillBroadsword: 2, SkillClimbing: 1},
		CategoryRanks: map[int]float64{CatWeaponEdged: 1},
		SkillTypes:    map[int]data.SkillType{SkillAmbush: data.SkillTypeEveryman},
	})

	b.AddTalentFlaw(data.TalentFlawParams{
		ID:             TalentReflexes,
		Name:           "Lightning Reflexes",
		Source:         "core",
		Cost:           10,
		StatBonuses:    map[data.Attribute]int{data.Quickness: 5},
		DefensiveBonus: 5,
	}).AddTalentFlaw(data.TalentFlawParams{
		ID:              TalentStout,
		Name:            "Stout",
		Source:          "core",
		Cost:            15,
		Hits:            10,
		Exhaustion:      1.5,
		BodyDevelopment: data.NewProgression(0, 1, 0, 0, 0),
		Resistances:     map[data.Resistance]int{data.ResistPoison: 10},
	}).AddTalentFlaw(data.TalentFlawParams{
		ID:              FlawClumsy,
		Name:            "Clumsy",
		Source:          "core",
		Flaw:            true,
		Cost:            -10,
		SkillBonuses:    map[int]int{SkillClimbing: -10},
		CategoryBonuses: map[int]int{CatAthletic: -5},
		SkillTypes:      map[int]data.SkillType{SkillClimbing: data.SkillTypeRestricted},
		Movement:        0.9,
	}).AddTalentFlaw(data.TalentFlawParams{
		ID:     TalentGift,
		Name:   "Companion Gift",
		Source: SourceCompanion,
		Cost:   5,
	})
}
