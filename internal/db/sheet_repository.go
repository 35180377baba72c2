package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/rmsheet/internal/data"
	"github.com/udisondev/rmsheet/internal/model"
)

// Rank kinds of the sheet_ranks table.
const (
	rankKindSkill    int16 = 0
	rankKindCategory int16 = 1
)

// SheetSummary is one row of the sheet listing.
type SheetSummary struct {
	ID           uuid.UUID
	Name         string
	Level        int
	RaceID       int
	ProfessionID int
	UpdatedAt    time.Time
}

// sheetExtras is the jsonb column holding the list-shaped parts of a sheet.
type sheetExtras struct {
	CustomSkills          []model.CustomSkill    `json:"custom_skills,omitempty"`
	SkillTypeOverrides    map[int]data.SkillType `json:"skill_type_overrides,omitempty"`
	CategoryTypeOverrides map[int]data.SkillType `json:"category_type_overrides,omitempty"`
	TrainingPacks         []int                  `json:"training_packs,omitempty"`
	WeaponCostOrder       []int                  `json:"weapon_cost_order,omitempty"`
	Talents               []int                  `json:"talents,omitempty"`
	Items                 []itemRow              `json:"items,omitempty"`
}

type itemRow struct {
	ID           uuid.UUID              `json:"id"`
	Name         string                 `json:"name"`
	Favorite     bool                   `json:"favorite"`
	StatBonuses  map[data.Attribute]int `json:"stat_bonuses,omitempty"`
	SkillBonuses map[int]int            `json:"skill_bonuses,omitempty"`
}

// SheetRepository хранит снимки листов персонажей.
type SheetRepository struct {
	db *pgxpool.Pool
}

// NewSheetRepository создаёт новый SheetRepository.
func NewSheetRepository(db *pgxpool.Pool) *SheetRepository {
	return &SheetRepository{db: db}
}

// Save сохраняет снимок листа (полная перезапись) в одной транзакции.
func (r *SheetRepository) Save(ctx context.Context, snap model.Snapshot) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(ctx, `
		INSERT INTO sheets (id, name, creation, race_id, culture_id, profession_id,
		                    magic_realm, level, grace_points, armor_class, shield_id,
		                    body_weight, carried_weight, next_custom_id, extras, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,NOW())
		ON CONFLICT (id) DO UPDATE SET
		  name=$2, creation=$3, race_id=$4, culture_id=$5, profession_id=$6,
		  magic_realm=$7, level=$8, grace_points=$9, armor_class=$10, shield_id=$11,
		  body_weight=$12, carried_weight=$13, next_custom_id=$14, extras=$15, updated_at=NOW()`,
		snap.ID, snap.Name, snap.Creation, snap.RaceID, snap.CultureID, snap.ProfessionID,
		int32(snap.MagicRealm), snap.Level, snap.GracePoints, snap.ArmorClass, snap.ShieldID,
		snap.BodyWeight, snap.CarriedWeight, snap.NextCustomID, extrasOf(snap),
	); err != nil {
		return fmt.Errorf("saving sheet %s: %w", snap.ID, err)
	}

	batch := &pgx.Batch{}
	for _, a := range data.Attributes {
		st := snap.Stats[a]
		batch.Queue(`
			INSERT INTO sheet_stats (sheet_id, attribute, temp, potential, misc)
			VALUES ($1,$2,$3,$4,$5)
			ON CONFLICT (sheet_id, attribute) DO UPDATE SET temp=$3, potential=$4, misc=$5`,
			snap.ID, int16(a), st.Temp, st.Potential, st.Misc)
	}
	br := tx.SendBatch(ctx, batch)
	for range data.Attributes {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck
			return fmt.Errorf("saving stats of sheet %s: %w", snap.ID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("closing stats batch: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM sheet_ranks WHERE sheet_id = $1`, snap.ID); err != nil {
		return fmt.Errorf("deleting ranks of sheet %s: %w", snap.ID, err)
	}
	rows := make([][]any, 0, len(snap.SkillRanks)+len(snap.CategoryRanks))
	for _, rk := range snap.SkillRanks {
		rows = append(rows, []any{snap.ID, rankKindSkill, rk.ID, rk.Value, rk.Special, rk.Favorite})
	}
	for _, rk := range snap.CategoryRanks {
		rows = append(rows, []any{snap.ID, rankKindCategory, rk.ID, rk.Value, rk.Special, rk.Favorite})
	}
	if len(rows) > 0 {
		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"sheet_ranks"},
			[]string{"sheet_id", "kind", "target_id", "value", "special", "favorite"},
			pgx.CopyFromRows(rows),
		); err != nil {
			return fmt.Errorf("inserting ranks of sheet %s: %w", snap.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing sheet save: %w", err)
	}

	slog.Debug("saved sheet",
		"sheetID", snap.ID,
		"ranks", len(rows))
	return nil
}

// Load загружает снимок листа. Returns nil, nil if the sheet does not exist.
func (r *SheetRepository) Load(ctx context.Context, id uuid.UUID) (*model.Snapshot, error) {
	snap := model.Snapshot{ID: id}
	var (
		realm  int32
		extras sheetExtras
	)
	err := r.db.QueryRow(ctx, `
		SELECT name, creation, race_id, culture_id, profession_id, magic_realm, level,
		       grace_points, armor_class, shield_id, body_weight, carried_weight,
		       next_custom_id, extras
		FROM sheets WHERE id = $1`, id,
	).Scan(
		&snap.Name, &snap.Creation, &snap.RaceID, &snap.CultureID, &snap.ProfessionID, &realm, &snap.Level,
		&snap.GracePoints, &snap.ArmorClass, &snap.ShieldID, &snap.BodyWeight, &snap.CarriedWeight,
		&snap.NextCustomID, &extras,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying sheet %s: %w", id, err)
	}
	snap.MagicRealm = data.AttributeSet(realm)
	extras.applyTo(&snap)

	if err := r.loadStats(ctx, &snap); err != nil {
		return nil, err
	}
	if err := r.loadRanks(ctx, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (r *SheetRepository) loadStats(ctx context.Context, snap *model.Snapshot) error {
	rows, err := r.db.Query(ctx,
		`SELECT attribute, temp, potential, misc FROM sheet_stats WHERE sheet_id = $1`, snap.ID)
	if err != nil {
		return fmt.Errorf("querying stats of sheet %s: %w", snap.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			attr int16
			st   model.Stat
		)
		if err := rows.Scan(&attr, &st.Temp, &st.Potential, &st.Misc); err != nil {
			return fmt.Errorf("scanning stat row: %w", err)
		}
		if a := data.Attribute(attr); a.Valid() {
			snap.Stats[a] = st
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating stat rows: %w", err)
	}
	return nil
}

func (r *SheetRepository) loadRanks(ctx context.Context, snap *model.Snapshot) error {
	rows, err := r.db.Query(ctx, `
		SELECT kind, target_id, value, special, favorite
		FROM sheet_ranks WHERE sheet_id = $1
		ORDER BY kind, target_id`, snap.ID)
	if err != nil {
		return fmt.Errorf("querying ranks of sheet %s: %w", snap.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			kind int16
			rk   model.Rank
		)
		if err := rows.Scan(&kind, &rk.ID, &rk.Value, &rk.Special, &rk.Favorite); err != nil {
			return fmt.Errorf("scanning rank row: %w", err)
		}
		switch kind {
		case rankKindSkill:
			snap.SkillRanks = append(snap.SkillRanks, rk)
		case rankKindCategory:
			snap.CategoryRanks = append(snap.CategoryRanks, rk)
		default:
			slog.Warn("unknown rank kind", "sheetID", snap.ID, "kind", kind)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rank rows: %w", err)
	}
	return nil
}

// List returns all sheets, most recently saved first.
func (r *SheetRepository) List(ctx context.Context) ([]SheetSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, level, race_id, profession_id, updated_at
		FROM sheets
		ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("querying sheets: %w", err)
	}
	defer rows.Close()

	var out []SheetSummary
	for rows.Next() {
		var s SheetSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Level, &s.RaceID, &s.ProfessionID, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning sheet row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sheet rows: %w", err)
	}
	return out, nil
}

// Delete удаляет лист; stats and ranks go with it. Reports whether a row existed.
func (r *SheetRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM sheets WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("deleting sheet %s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func extrasOf(snap model.Snapshot) sheetExtras {
	e := sheetExtras{
		CustomSkills:          snap.CustomSkills,
		SkillTypeOverrides:    snap.SkillTypeOverrides,
		CategoryTypeOverrides: snap.CategoryTypeOverrides,
		TrainingPacks:         snap.TrainingPacks,
		WeaponCostOrder:       snap.WeaponCostOrder,
		Talents:               snap.Talents,
	}
	for _, it := range snap.Items {
		e.Items = append(e.Items, itemRow{
			ID:           it.ID,
			Name:         it.Name,
			Favorite:     it.Favorite,
			StatBonuses:  it.StatBonuses,
			SkillBonuses: it.SkillBonuses,
		})
	}
	return e
}

func (e sheetExtras) applyTo(snap *model.Snapshot) {
	snap.CustomSkills = e.CustomSkills
	snap.SkillTypeOverrides = e.SkillTypeOverrides
	snap.CategoryTypeOverrides = e.CategoryTypeOverrides
	snap.TrainingPacks = e.TrainingPacks
	snap.WeaponCostOrder = e.WeaponCostOrder
	snap.Talents = e.Talents
	for _, it := range e.Items {
		snap.Items = append(snap.Items, model.MagicalItem{
			ID:           it.ID,
			Name:         it.Name,
			Favorite:     it.Favorite,
			StatBonuses:  it.StatBonuses,
			SkillBonuses: it.SkillBonuses,
		})
	}
}
