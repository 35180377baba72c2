package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/rmsheet/internal/data"
)

// fakeCosts prices skills from a fixed table.
type fakeCosts struct {
	skills     map[int]data.Skillcost
	categories map[int]data.Skillcost
	spellLists map[int]bool
	threshold  int
	devPoints  int
}

func (f *fakeCosts) SkillCost(id int) (data.Skillcost, bool) {
	c, ok := f.skills[id]
	return c, ok
}

func (f *fakeCosts) CategoryCost(id int) (data.Skillcost, bool) {
	c, ok := f.categories[id]
	return c, ok
}

func (f *fakeCosts) IsSpellList(id int) bool  { return f.spellLists[id] }
func (f *fakeCosts) SpellListThreshold() int { return f.threshold }
func (f *fakeCosts) DevPoints() int          { return f.devPoints }

func newFakeCosts(devPoints int) *fakeCosts {
	return &fakeCosts{
		skills:     make(map[int]data.Skillcost),
		categories: make(map[int]data.Skillcost),
		spellLists: make(map[int]bool),
		devPoints:  devPoints,
	}
}

// buy increases skillID by one step and reports the error.
func buy(l *LevelUp, skillID int) error {
	_, err := l.ValidateSkillRankChange(skillID, 0, 1)
	return err
}

// sell runs the two-phase decrease the sheet performs.
func sell(t *testing.T, l *LevelUp, skillID int) {
	t.Helper()
	d, err := l.ValidateSkillRankChange(skillID, 1, 0)
	require.NoError(t, err)
	require.Equal(t, DecisionDecrease, d)
	l.CommitDecrease(skillID)
}

func TestLevelUp_InactiveAllowsEverything(t *testing.T) {
	l := NewLevelUp(newFakeCosts(10))

	d, err := l.ValidateSkillRankChange(1, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, DecisionIncrease, d)

	d, err = l.ValidateSkillRankChange(1, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, DecisionDecrease, d)

	d, err = l.ValidateSkillRankChange(1, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, DecisionNoChange, d)

	assert.Equal(t, 0, l.Remaining())
	assert.NoError(t, l.BuyTrainingPack(1, 1000))
}

func TestLevelUp_BuyUntilCap(t *testing.T) {
	src := newFakeCosts(40)
	src.skills[1] = data.NewSkillcost(5, 10, 15)
	l := NewLevelUp(src)
	l.Start()

	for range 3 {
		require.NoError(t, buy(l, 1))
	}
	assert.Equal(t, 10, l.Remaining())
	assert.Equal(t, 3, l.SkillSteps(1))

	err := buy(l, 1)
	require.ErrorIs(t, err, ErrRankCapExceeded)
	assert.Equal(t, 10, l.Remaining(), "failed buy must not charge")

	_, ok := l.NextSkillCost(1)
	assert.False(t, ok)
}

func TestLevelUp_InsufficientPoints(t *testing.T) {
	src := newFakeCosts(6)
	src.skills[1] = data.NewSkillcost(5, 10)
	l := NewLevelUp(src)
	l.Start()

	require.NoError(t, buy(l, 1))
	err := buy(l, 1)
	require.ErrorIs(t, err, ErrInsufficientPoints)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "10", e.Metadata["cost"])
	assert.Equal(t, "1", e.Metadata["remaining"])
	assert.Equal(t, 1, l.Remaining())
	assert.Equal(t, 1, l.SkillSteps(1))
}

func TestLevelUp_MissingCostTable(t *testing.T) {
	l := NewLevelUp(newFakeCosts(50))
	l.Start()

	err := buy(l, 99)
	require.ErrorIs(t, err, ErrDataInconsistency)
	assert.Equal(t, 50, l.Remaining())
}

func TestLevelUp_BuySellRoundTrip(t *testing.T) {
	src := newFakeCosts(40)
	src.skills[1] = data.NewSkillcost(5, 10, 15)
	src.skills[2] = data.NewSkillcost(3)
	l := NewLevelUp(src)
	l.Start()

	require.NoError(t, buy(l, 1))
	require.NoError(t, buy(l, 1))
	require.NoError(t, buy(l, 2))
	assert.Equal(t, 22, l.Remaining())

	sell(t, l, 1)
	assert.Equal(t, 32, l.Remaining(), "refund the last step bought")
	sell(t, l, 1)
	sell(t, l, 2)
	assert.Equal(t, 40, l.Remaining())
	assert.Empty(t, l.SkillLedger())
}

func TestLevelUp_DecreaseBelowSessionFloor(t *testing.T) {
	src := newFakeCosts(40)
	src.skills[1] = data.NewSkillcost(5)
	l := NewLevelUp(src)
	l.Start()

	d, err := l.ValidateSkillRankChange(1, 4, 3)
	require.ErrorIs(t, err, ErrRankFloorReached)
	assert.Equal(t, DecisionNoChange, d)
}

func TestLevelUp_CommitDecreaseWithoutStepPanics(t *testing.T) {
	l := NewLevelUp(newFakeCosts(10))
	l.Start()
	assert.Panics(t, func() { l.CommitDecrease(1) })
}

func spellSource(devPoints, threshold int, lists ...int) *fakeCosts {
	src := newFakeCosts(devPoints)
	src.threshold = threshold
	for _, id := range lists {
		src.skills[id] = data.NewSkillcost(4, 4, 4)
		src.spellLists[id] = true
	}
	return src
}

func TestLevelUp_SpellListPositionFactor(t *testing.T) {
	src := spellSource(100, 2, 10, 11, 12, 13, 14)
	l := NewLevelUp(src)
	l.Start()

	for _, id := range []int{10, 11, 12, 13, 14} {
		require.NoError(t, buy(l, id))
	}
	// positions 0,1 ×1; 2,3 ×2; 4 ×3
	assert.Equal(t, 100-(4+4+8+8+12), l.Remaining())
	assert.Equal(t, []int{10, 11, 12, 13, 14}, l.SpellListOrder())

	// a second step keeps the list's position
	require.NoError(t, buy(l, 10))
	assert.Equal(t, 100-(4+4+8+8+12)-4, l.Remaining())
	assert.Equal(t, 1, l.SpellListFactor(10))
	assert.Equal(t, 3, l.SpellListFactor(14))
}

func TestLevelUp_SpellListThresholdDisabled(t *testing.T) {
	src := spellSource(100, 0, 10, 11, 12)
	l := NewLevelUp(src)
	l.Start()

	for _, id := range []int{10, 11, 12} {
		require.NoError(t, buy(l, id))
	}
	assert.Equal(t, 88, l.Remaining())
}

func TestLevelUp_SpellListCascade(t *testing.T) {
	src := spellSource(50, 2, 10, 11, 12)
	l := NewLevelUp(src)
	l.Start()

	require.NoError(t, buy(l, 10))
	require.NoError(t, buy(l, 11))
	require.NoError(t, buy(l, 12)) // position 2, ×2
	require.NoError(t, buy(l, 12))
	assert.Equal(t, 50-4-4-8-8, l.Remaining())

	// 10 leaves the order: 11 moves 1→0 (same factor), 12 moves 2→1 (×2→×1)
	sell(t, l, 10)
	assert.Equal(t, []int{11, 12}, l.SpellListOrder())
	assert.Equal(t, 50-4-8, l.Remaining())

	skills, _ := l.SpentOn()
	assert.Equal(t, 50-l.Remaining(), skills)
}

// The price of a list depends only on its position, never on how it got there.
func TestLevelUp_PriceDependsOnPositionOnly(t *testing.T) {
	direct := NewLevelUp(spellSource(100, 1, 10, 11, 12))
	direct.Start()
	require.NoError(t, buy(direct, 11))
	require.NoError(t, buy(direct, 12))

	shuffled := NewLevelUp(spellSource(100, 1, 10, 11, 12))
	shuffled.Start()
	require.NoError(t, buy(shuffled, 10))
	require.NoError(t, buy(shuffled, 11))
	require.NoError(t, buy(shuffled, 12))
	sell(t, shuffled, 10)

	assert.Equal(t, direct.SpellListOrder(), shuffled.SpellListOrder())
	assert.Equal(t, direct.Remaining(), shuffled.Remaining())
}

func TestLevelUp_RemoveSkill(t *testing.T) {
	src := spellSource(100, 1, 10, 11)
	src.skills[1] = data.NewSkillcost(2, 3)
	l := NewLevelUp(src)
	l.Start()

	require.NoError(t, buy(l, 10))
	require.NoError(t, buy(l, 10))
	require.NoError(t, buy(l, 11)) // position 1, ×2
	require.NoError(t, buy(l, 1))
	require.NoError(t, buy(l, 1))
	assert.Equal(t, 100-8-8-5, l.Remaining())

	assert.Equal(t, 2, l.RemoveSkill(10))
	assert.Equal(t, 100-4-5, l.Remaining(), "11 moves to position 0")
	assert.Equal(t, 2, l.RemoveSkill(1))
	assert.Equal(t, 0, l.RemoveSkill(1))
	assert.Equal(t, 96, l.Remaining())
}

func TestLevelUp_Categories(t *testing.T) {
	src := newFakeCosts(10)
	src.categories[7] = data.NewSkillcost(3, 8)
	l := NewLevelUp(src)
	l.Start()

	d, err := l.ValidateCategoryRankChange(7, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, DecisionIncrease, d)

	_, err = l.ValidateCategoryRankChange(7, 1, 2)
	require.ErrorIs(t, err, ErrInsufficientPoints)

	d, err = l.ValidateCategoryRankChange(7, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, DecisionDecrease, d)
	assert.Equal(t, 10, l.Remaining())

	_, err = l.ValidateCategoryRankChange(7, 1, 0)
	require.ErrorIs(t, err, ErrRankFloorReached)

	_, err = l.ValidateCategoryRankChange(8, 0, 1)
	require.ErrorIs(t, err, ErrDataInconsistency)

	_, err = l.ValidateCategoryRankChange(7, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, l.RemoveCategory(7))
	assert.Equal(t, 10, l.Remaining())
}

func TestLevelUp_CategoryBuyUntilCap(t *testing.T) {
	src := newFakeCosts(40)
	src.categories[7] = data.NewSkillcost(5, 10, 15)
	l := NewLevelUp(src)
	l.Start()

	for i := range 3 {
		d, err := l.ValidateCategoryRankChange(7, float64(i), float64(i+1))
		require.NoError(t, err)
		require.Equal(t, DecisionIncrease, d)
	}
	assert.Equal(t, 10, l.Remaining())
	assert.Equal(t, 3, l.CategorySteps(7))

	d, err := l.ValidateCategoryRankChange(7, 3, 4)
	require.ErrorIs(t, err, ErrRankCapExceeded)
	assert.Equal(t, DecisionNoChange, d)
	assert.Equal(t, 10, l.Remaining(), "failed buy must not charge")
	assert.Equal(t, 3, l.CategorySteps(7))
}

func TestLevelUp_ThresholdFixedAtStart(t *testing.T) {
	src := spellSource(100, 1, 10, 11)
	l := NewLevelUp(src)
	l.Start()

	require.NoError(t, buy(l, 10))
	require.NoError(t, buy(l, 11)) // position 1, ×2
	assert.Equal(t, 100-4-8, l.Remaining())

	src.threshold = 0
	assert.Equal(t, 1, l.SpellListThreshold())
	sell(t, l, 11)
	sell(t, l, 10)
	assert.Equal(t, 100, l.Remaining())

	l.Start()
	assert.Zero(t, l.SpellListThreshold(), "next session picks up the new threshold")
}

func TestLevelUp_LedgerKeepsRankPerStep(t *testing.T) {
	src := newFakeCosts(40)
	src.skills[1] = data.NewSkillcost(2, 3)
	l := NewLevelUp(src)
	l.Start()

	_, ok := l.LastSkillStep(1)
	assert.False(t, ok)

	_, err := l.ValidateSkillRankChange(1, 0, 2)
	require.NoError(t, err)
	_, err = l.ValidateSkillRankChange(1, 2, 2.5)
	require.NoError(t, err)

	step, ok := l.LastSkillStep(1)
	require.True(t, ok)
	assert.Equal(t, 0.5, step)
	assert.Equal(t, 2.5, l.BoughtSkillRanks(1))
	assert.Equal(t, map[int][]int{1: {2, 3}}, l.SkillLedger())
}

func TestLevelUp_TrainingPack(t *testing.T) {
	l := NewLevelUp(newFakeCosts(30))
	l.Start()

	require.NoError(t, l.BuyTrainingPack(1, 25))
	assert.Equal(t, 5, l.Remaining())
	require.ErrorIs(t, l.BuyTrainingPack(2, 25), ErrInsufficientPoints)
	assert.Equal(t, []int{1}, l.TrainingPacks())
}

func TestLevelUp_StartResets(t *testing.T) {
	src := newFakeCosts(20)
	src.skills[1] = data.NewSkillcost(5)
	l := NewLevelUp(src)
	l.Start()
	require.NoError(t, buy(l, 1))

	src.devPoints = 30
	l.Start()
	assert.Equal(t, 30, l.Remaining())
	assert.Zero(t, l.SkillSteps(1))

	l.End()
	assert.False(t, l.Active())
	assert.Zero(t, l.Remaining())
}
