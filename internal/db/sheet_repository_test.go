package db_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/rmsheet/internal/config"
	"github.com/udisondev/rmsheet/internal/data"
	"github.com/udisondev/rmsheet/internal/db"
	"github.com/udisondev/rmsheet/internal/model"
	"github.com/udisondev/rmsheet/internal/testutil"
)

func newMagician(t *testing.T, md *data.MetaData) *model.Sheet {
	t.Helper()
	s, err := model.NewSheet(md, config.DefaultRuleSet(), model.Selection{
		RaceID:       testutil.RaceCommonMan,
		CultureID:    testutil.CultureRural,
		ProfessionID: testutil.ProfMagician,
	})
	require.NoError(t, err)
	return s
}

func TestSheetRepository_SaveLoad(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)
	md := testutil.Rules(t)
	repo := db.NewSheetRepository(pool)

	s := newMagician(t, md)
	s.SetName("Elowen")
	require.NoError(t, s.SetStatTemp(data.Empathy, 95))
	require.NoError(t, s.SetSkillRank(testutil.ListSpiritMastery, 1))
	require.NoError(t, s.SetCategoryRank(testutil.CatAthletic, 1))
	require.NoError(t, s.SetSkillFavorite(testutil.SkillClimbing, true))
	require.NoError(t, s.AddTalent(testutil.TalentStout))
	require.NoError(t, s.AddTrainingPack(testutil.PackCityGuard))
	require.NoError(t, s.SetShield(testutil.ShieldNormal))
	customID, err := s.AddCustomSkill(testutil.SkillClimbing, "Cliff Running", nil)
	require.NoError(t, err)
	itemID := s.AddItem(model.MagicalItem{
		Name:         "Ring of Focus",
		Favorite:     true,
		StatBonuses:  map[data.Attribute]int{data.Empathy: 5},
		SkillBonuses: map[int]int{testutil.ListSpiritMastery: 10},
	})
	s.FinishCreation()

	want := s.Snapshot()
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx, s.ID())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)

	restored, err := model.Restore(md, config.DefaultRuleSet(), *got)
	require.NoError(t, err)
	assert.Equal(t, "Cliff Running", restored.Skill(customID).Name())
	assert.Equal(t, s.SkillTotalBonus(testutil.ListSpiritMastery), restored.SkillTotalBonus(testutil.ListSpiritMastery))
	assert.Equal(t, s.HitPoints(), restored.HitPoints())
	assert.Equal(t, itemID, restored.Items()[0].ID)
	assert.False(t, restored.InCreation())
}

func TestSheetRepository_SaveOverwrites(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)
	repo := db.NewSheetRepository(pool)
	s := newMagician(t, testutil.Rules(t))

	require.NoError(t, s.SetSkillRank(testutil.SkillClimbing, 1))
	require.NoError(t, repo.Save(ctx, s.Snapshot()))

	require.NoError(t, s.SetSkillRank(testutil.SkillClimbing, 0))
	require.NoError(t, s.SetLevel(3))
	require.NoError(t, repo.Save(ctx, s.Snapshot()))

	got, err := repo.Load(ctx, s.ID())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.SkillRanks)
	assert.Equal(t, 3, got.Level)
}

func TestSheetRepository_LoadMissing(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)

	got, err := db.NewSheetRepository(pool).Load(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSheetRepository_ListDelete(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)
	md := testutil.Rules(t)
	repo := db.NewSheetRepository(pool)

	first := newMagician(t, md)
	first.SetName("first")
	second := newMagician(t, md)
	second.SetName("second")
	require.NoError(t, repo.Save(ctx, first.Snapshot()))
	require.NoError(t, repo.Save(ctx, second.Snapshot()))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID(), list[0].ID)
	assert.Equal(t, testutil.ProfMagician, list[0].ProfessionID)

	ok, err := repo.Delete(ctx, first.ID())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(ctx, first.ID())
	require.NoError(t, err)
	assert.False(t, ok)

	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "second", list[0].Name)
}
