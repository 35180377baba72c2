package data

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Rule table files, relative to the rules directory.
const (
	FileProgressions  = "progressions.yaml"
	FileCategories    = "categories.yaml"
	FileSkills        = "skills.yaml"
	FileSpellLists    = "spell_lists.yaml"
	FileRaces         = "races.yaml"
	FileCultures      = "cultures.yaml"
	FileProfessions   = "professions.yaml"
	FileEquipment     = "equipment.yaml"
	FileTrainingPacks = "training_packs.yaml"
	FileTalents       = "talents.yaml"
	FileSpellCosts    = "spell_costs.yaml"
)

type progressionsDoc struct {
	Skill    string `yaml:"skill"`
	Category string `yaml:"category"`
}

type categoryDoc struct {
	ID         int      `yaml:"id"`
	Name       string   `yaml:"name"`
	Source     string   `yaml:"source"`
	RankType   string   `yaml:"rank_type"`
	Subtype    string   `yaml:"subtype"`
	Attributes []string `yaml:"attributes"`
}

type skillDoc struct {
	ID       int    `yaml:"id"`
	Name     string `yaml:"name"`
	Source   string `yaml:"source"`
	Category int    `yaml:"category"`
	Races    []int  `yaml:"races"`
}

type spellListDoc struct {
	ID          int      `yaml:"id"`
	Name        string   `yaml:"name"`
	Source      string   `yaml:"source"`
	Realm       []string `yaml:"realm"`
	Type        string   `yaml:"type"`
	Evil        bool     `yaml:"evil"`
	Professions []int    `yaml:"professions"`
	Races       []int    `yaml:"races"`
}

type raceDoc struct {
	ID              int               `yaml:"id"`
	Name            string            `yaml:"name"`
	Source          string            `yaml:"source"`
	Stats           map[string]int    `yaml:"stats"`
	Resistances     map[string]int    `yaml:"resistances"`
	BodyDevelopment string            `yaml:"body_development"`
	PowerPoints     map[string]string `yaml:"power_points"`
	Stride          int               `yaml:"stride"`
	Recovery        float64           `yaml:"recovery"`
	SkillTypes      map[int]string    `yaml:"skill_types"`
}

type cultureDoc struct {
	ID            int             `yaml:"id"`
	Name          string          `yaml:"name"`
	Source        string          `yaml:"source"`
	SkillRanks    map[int]float64 `yaml:"skill_ranks"`
	CategoryRanks map[int]float64 `yaml:"category_ranks"`
}

type professionDoc struct {
	ID                 int               `yaml:"id"`
	Name               string            `yaml:"name"`
	Source             string            `yaml:"source"`
	SpellUser          string            `yaml:"spell_user"`
	Realm              []string          `yaml:"realm"`
	CategoryBonuses    map[int]int       `yaml:"category_bonuses"`
	CategoryCosts      map[int]string    `yaml:"category_costs"`
	WeaponCosts        []string          `yaml:"weapon_costs"`
	SkillTypes         map[int]string    `yaml:"skill_types"`
	CategorySkillTypes map[int]string    `yaml:"category_skill_types"`
}

type shieldDoc struct {
	ID      int    `yaml:"id"`
	Name    string `yaml:"name"`
	Source  string `yaml:"source"`
	Melee   int    `yaml:"melee"`
	Missile int    `yaml:"missile"`
}

type armorDoc struct {
	ArmorClass  int `yaml:"armor_class"`
	MinManeuver int `yaml:"min_maneuver"`
	MaxManeuver int `yaml:"max_maneuver"`
	Missile     int `yaml:"missile"`
	Quickness   int `yaml:"quickness"`
	Skill       int `yaml:"skill"`
}

type equipmentDoc struct {
	Shields []shieldDoc `yaml:"shields"`
	Armor   []armorDoc  `yaml:"armor"`
}

type trainingPackDoc struct {
	ID                 int             `yaml:"id"`
	Name               string          `yaml:"name"`
	Source             string          `yaml:"source"`
	Costs              map[int]int     `yaml:"costs"`
	SkillRanks         map[int]float64 `yaml:"skill_ranks"`
	CategoryRanks      map[int]float64 `yaml:"category_ranks"`
	SkillTypes         map[int]string  `yaml:"skill_types"`
	CategorySkillTypes map[int]string  `yaml:"category_skill_types"`
}

type talentDoc struct {
	ID                 int            `yaml:"id"`
	Name               string         `yaml:"name"`
	Source             string         `yaml:"source"`
	Flaw               bool           `yaml:"flaw"`
	Cost               int            `yaml:"cost"`
	Stats              map[string]int `yaml:"stats"`
	SkillBonuses       map[int]int    `yaml:"skill_bonuses"`
	CategoryBonuses    map[int]int    `yaml:"category_bonuses"`
	Resistances        map[string]int `yaml:"resistances"`
	SkillTypes         map[int]string `yaml:"skill_types"`
	CategorySkillTypes map[int]string `yaml:"category_skill_types"`
	Hits               int            `yaml:"hits"`
	DefensiveBonus     int            `yaml:"defensive_bonus"`
	Exhaustion         float64        `yaml:"exhaustion"`
	Recovery           float64        `yaml:"recovery"`
	Movement           float64        `yaml:"movement"`
	WeightPenalty      float64        `yaml:"weight_penalty"`
	Tolerance          float64        `yaml:"tolerance"`
	BodyDevelopment    string         `yaml:"body_development"`
	PowerPoints        string         `yaml:"power_points"`
}

// spellCostDoc is one row per (category, spell user); tiers in rank order.
type spellCostDoc struct {
	Category  int      `yaml:"category"`
	SpellUser string   `yaml:"spell_user"`
	Tiers     []string `yaml:"tiers"`
}

type ruleDocs struct {
	progressions  progressionsDoc
	categories    []categoryDoc
	skills        []skillDoc
	spellLists    []spellListDoc
	races         []raceDoc
	cultures      []cultureDoc
	professions   []professionDoc
	equipment     equipmentDoc
	trainingPacks []trainingPackDoc
	talents       []talentDoc
	spellCosts    []spellCostDoc
}

type ruleFile struct {
	name     string
	dst      any
	required bool
}

func (d *ruleDocs) files() []ruleFile {
	return []ruleFile{
		{FileProgressions, &d.progressions, false},
		{FileCategories, &d.categories, true},
		{FileSkills, &d.skills, true},
		{FileSpellLists, &d.spellLists, false},
		{FileRaces, &d.races, true},
		{FileCultures, &d.cultures, false},
		{FileProfessions, &d.professions, true},
		{FileEquipment, &d.equipment, false},
		{FileTrainingPacks, &d.trainingPacks, false},
		{FileTalents, &d.talents, false},
		{FileSpellCosts, &d.spellCosts, false},
	}
}

// Load reads the rule tables from fsys and builds a frozen MetaData.
// Files are decoded concurrently; unknown YAML fields are rejected.
// Optional files may be absent.
func Load(ctx context.Context, fsys fs.FS) (*MetaData, error) {
	var docs ruleDocs

	g, gctx := errgroup.WithContext(ctx)
	for _, f := range docs.files() {
		g.Go(func() error {
			return decodeRuleFile(gctx, fsys, f)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b := NewBuilder()
	docs.apply(b)
	md, err := b.Build()
	if err != nil {
		return nil, err
	}

	slog.Info("loaded rule tables",
		"races", len(md.races),
		"cultures", len(md.cultures),
		"professions", len(md.professions),
		"categories", len(md.categories),
		"skills", len(md.skills),
		"trainingPacks", len(md.packs),
		"talents", len(md.talents))
	return md, nil
}

func decodeRuleFile(ctx context.Context, fsys fs.FS, f ruleFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := fs.ReadFile(fsys, f.name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !f.required {
			slog.Debug("rule file absent, skipping", "file", f.name)
			return nil
		}
		return fmt.Errorf("reading %s: %w", f.name, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(f.dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parsing %s: %w", f.name, err)
	}
	return nil
}
