package model

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/udisondev/rmsheet/internal/data"
)

// Decision tells the caller what to do with a validated rank change.
type Decision int

const (
	DecisionNoChange Decision = iota
	// DecisionIncrease: points were charged, apply one step up.
	DecisionIncrease
	// DecisionDecrease: apply one step down, then call CommitDecrease.
	DecisionDecrease
)

func (d Decision) String() string {
	switch d {
	case DecisionIncrease:
		return "increase"
	case DecisionDecrease:
		return "decrease"
	default:
		return "no change"
	}
}

// CostSource provides the prices a LevelUp session charges.
// Sheet implements it.
type CostSource interface {
	// SkillCost returns the cost table of the next rank of a skill.
	SkillCost(skillID int) (data.Skillcost, bool)
	// CategoryCost returns the cost table of a skill category.
	CategoryCost(categoryID int) (data.Skillcost, bool)
	// IsSpellList reports whether the skill takes part in spell list ordering.
	IsSpellList(skillID int) bool
	// SpellListThreshold returns how many spell lists share one cost
	// multiplier; 0 disables the increase.
	SpellListThreshold() int
	// DevPoints returns the development point budget of a new session.
	DevPoints() int
}

// LevelUp is the development point ledger of one level-up session.
//
// Every bought step is recorded with its base cost and the rank it added,
// so refunds give back exactly what was charged and take back exactly what
// was granted. Spell lists additionally pay a multiplier that depends only
// on their position in the order they were first trained this session.
// The threshold behind that multiplier is fixed when the session starts.
type LevelUp struct {
	src CostSource

	active    bool
	remaining int
	threshold int

	skillSteps    map[int][]ledgerStep // skill id → steps bought, in order
	categorySteps map[int][]int        // category id → cost of each step bought
	spellLists    []int                // spell list ids in training order
	packs         []int                // training packs bought this session
}

// ledgerStep is one bought skill step.
type ledgerStep struct {
	base int     // cost before the spell list multiplier
	rank float64 // rank added by the step
}

// NewLevelUp returns an inactive session pricing through src.
func NewLevelUp(src CostSource) *LevelUp {
	return &LevelUp{
		src:           src,
		skillSteps:    make(map[int][]ledgerStep),
		categorySteps: make(map[int][]int),
	}
}

// Start activates the session with a fresh budget and empty ledgers.
// Starting an active session resets it.
func (l *LevelUp) Start() {
	l.active = true
	l.remaining = l.src.DevPoints()
	l.threshold = l.src.SpellListThreshold()
	l.reset()
	slog.Debug("level-up started", "devPoints", l.remaining, "spellListThreshold", l.threshold)
}

// End deactivates the session. Unspent points are dropped.
func (l *LevelUp) End() {
	if l.active {
		slog.Debug("level-up ended", "unspent", l.remaining)
	}
	l.active = false
	l.remaining = 0
	l.threshold = 0
	l.reset()
}

func (l *LevelUp) reset() {
	clear(l.skillSteps)
	clear(l.categorySteps)
	l.spellLists = l.spellLists[:0]
	l.packs = l.packs[:0]
}

// Active reports whether a session is running.
func (l *LevelUp) Active() bool { return l.active }

// Remaining returns the unspent development points.
func (l *LevelUp) Remaining() int { return l.remaining }

// SkillSteps returns the number of steps bought for a skill this session.
func (l *LevelUp) SkillSteps(skillID int) int { return len(l.skillSteps[skillID]) }

// CategorySteps returns the number of steps bought for a category this session.
func (l *LevelUp) CategorySteps(categoryID int) int { return len(l.categorySteps[categoryID]) }

// SpellListOrder returns the spell lists trained this session, in order.
func (l *LevelUp) SpellListOrder() []int { return slices.Clone(l.spellLists) }

// TrainingPacks returns the packs bought this session.
func (l *LevelUp) TrainingPacks() []int { return slices.Clone(l.packs) }

// SkillLedger returns a copy of the per-skill base costs paid.
func (l *LevelUp) SkillLedger() map[int][]int {
	out := make(map[int][]int, len(l.skillSteps))
	for id, steps := range l.skillSteps {
		costs := make([]int, len(steps))
		for i, st := range steps {
			costs[i] = st.base
		}
		out[id] = costs
	}
	return out
}

// LastSkillStep returns the rank added by the last step bought for a
// skill this session.
func (l *LevelUp) LastSkillStep(skillID int) (float64, bool) {
	steps := l.skillSteps[skillID]
	if len(steps) == 0 {
		return 0, false
	}
	return steps[len(steps)-1].rank, true
}

// BoughtSkillRanks returns the ranks added to a skill this session.
func (l *LevelUp) BoughtSkillRanks(skillID int) float64 {
	var total float64
	for _, st := range l.skillSteps[skillID] {
		total += st.rank
	}
	return total
}

// SpellListThreshold returns the threshold fixed for the session.
func (l *LevelUp) SpellListThreshold() int { return l.threshold }

// positionFactor returns 1 + position/N, or 1 when the threshold is disabled.
func (l *LevelUp) positionFactor(pos int) int {
	if l.threshold <= 0 {
		return 1
	}
	return 1 + pos/l.threshold
}

// spellListPosition returns the list's position in the training order, or
// the position it would take if trained now.
func (l *LevelUp) spellListPosition(skillID int) int {
	if i := slices.Index(l.spellLists, skillID); i >= 0 {
		return i
	}
	return len(l.spellLists)
}

// SpellListFactor returns the multiplier the next step of skillID costs.
// Non spell lists always cost 1×.
func (l *LevelUp) SpellListFactor(skillID int) int {
	if !l.src.IsSpellList(skillID) {
		return 1
	}
	return l.positionFactor(l.spellListPosition(skillID))
}

// NextSkillCost returns the price of the next step of a skill, or false
// when nothing more can be bought.
func (l *LevelUp) NextSkillCost(skillID int) (int, bool) {
	table, ok := l.src.SkillCost(skillID)
	step := len(l.skillSteps[skillID])
	if !ok || step >= table.Size() {
		return 0, false
	}
	return table.Cost(step) * l.SpellListFactor(skillID), true
}

// ValidateSkillRankChange checks a one-step change from current to
// requested. Increases are charged immediately and requested-current is
// recorded as the rank the step adds. Decreases are only checked: the
// caller takes back LastSkillStep and then calls CommitDecrease.
// On error nothing was changed.
func (l *LevelUp) ValidateSkillRankChange(skillID int, current, requested float64) (Decision, error) {
	switch {
	case requested > current:
		if !l.active {
			return DecisionIncrease, nil
		}
		if err := l.buySkillStep(skillID, requested-current); err != nil {
			return DecisionNoChange, err
		}
		return DecisionIncrease, nil
	case requested < current:
		if !l.active {
			return DecisionDecrease, nil
		}
		if len(l.skillSteps[skillID]) == 0 {
			return DecisionNoChange, rankFloorError("skill", skillID)
		}
		return DecisionDecrease, nil
	default:
		return DecisionNoChange, nil
	}
}

func (l *LevelUp) buySkillStep(skillID int, rank float64) error {
	table, ok := l.src.SkillCost(skillID)
	if !ok {
		slog.Error("no cost table for skill", "skillID", skillID)
		return newError(CodeDataInconsistency, fmt.Sprintf("no cost table for skill %d", skillID),
			map[string]string{"skillID": strconv.Itoa(skillID)})
	}
	steps := l.skillSteps[skillID]
	if len(steps) >= table.Size() {
		return newError(CodeRankCapExceeded,
			fmt.Sprintf("skill %d: all %d steps of this level bought", skillID, table.Size()),
			map[string]string{"skillID": strconv.Itoa(skillID), "steps": strconv.Itoa(table.Size())})
	}

	base := table.Cost(len(steps))
	cost := base * l.SpellListFactor(skillID)
	if cost > l.remaining {
		return insufficientError(cost, l.remaining, "skillID", skillID)
	}

	l.remaining -= cost
	l.skillSteps[skillID] = append(steps, ledgerStep{base: base, rank: rank})
	if l.src.IsSpellList(skillID) && !slices.Contains(l.spellLists, skillID) {
		l.spellLists = append(l.spellLists, skillID)
	}
	return nil
}

// CommitDecrease refunds the last step bought for skillID. When a spell
// list drops to zero steps it leaves the training order and every list
// behind it is re-priced at its new position.
// Panics if no step is pending; ValidateSkillRankChange guards that.
func (l *LevelUp) CommitDecrease(skillID int) {
	steps := l.skillSteps[skillID]
	if len(steps) == 0 {
		panic(fmt.Sprintf("levelup: CommitDecrease(%d) without a bought step", skillID))
	}
	last := steps[len(steps)-1]
	l.remaining += last.base * l.SpellListFactor(skillID)

	steps = steps[:len(steps)-1]
	if len(steps) > 0 {
		l.skillSteps[skillID] = steps
		return
	}
	delete(l.skillSteps, skillID)
	l.dropSpellList(skillID)
}

// RemoveSkill refunds every step bought for skillID this session and
// returns how many steps were refunded.
func (l *LevelUp) RemoveSkill(skillID int) int {
	steps := l.skillSteps[skillID]
	if len(steps) == 0 {
		return 0
	}
	factor := l.SpellListFactor(skillID)
	for _, st := range steps {
		l.remaining += st.base * factor
	}
	delete(l.skillSteps, skillID)
	l.dropSpellList(skillID)
	return len(steps)
}

// dropSpellList removes skillID from the training order and settles the
// multiplier difference of every list that moved up one position.
func (l *LevelUp) dropSpellList(skillID int) {
	idx := slices.Index(l.spellLists, skillID)
	if idx < 0 {
		return
	}
	for pos := idx + 1; pos < len(l.spellLists); pos++ {
		id := l.spellLists[pos]
		delta := l.positionFactor(pos) - l.positionFactor(pos-1)
		if delta == 0 {
			continue
		}
		paid := 0
		for _, st := range l.skillSteps[id] {
			paid += st.base
		}
		l.remaining += paid * delta
		slog.Debug("spell list re-priced", "skillID", id, "from", pos, "to", pos-1, "refund", paid*delta)
	}
	l.spellLists = slices.Delete(l.spellLists, idx, idx+1)
}

// ValidateCategoryRankChange validates and settles a one-step category
// change in either direction. On error nothing was changed.
func (l *LevelUp) ValidateCategoryRankChange(categoryID int, current, requested float64) (Decision, error) {
	switch {
	case requested > current:
		if !l.active {
			return DecisionIncrease, nil
		}
		table, ok := l.src.CategoryCost(categoryID)
		if !ok {
			slog.Error("no cost table for category", "categoryID", categoryID)
			return DecisionNoChange, newError(CodeDataInconsistency,
				fmt.Sprintf("no cost table for category %d", categoryID),
				map[string]string{"categoryID": strconv.Itoa(categoryID)})
		}
		steps := l.categorySteps[categoryID]
		if len(steps) >= table.Size() {
			return DecisionNoChange, newError(CodeRankCapExceeded,
				fmt.Sprintf("category %d: all %d steps of this level bought", categoryID, table.Size()),
				map[string]string{"categoryID": strconv.Itoa(categoryID), "steps": strconv.Itoa(table.Size())})
		}
		cost := table.Cost(len(steps))
		if cost > l.remaining {
			return DecisionNoChange, insufficientError(cost, l.remaining, "categoryID", categoryID)
		}
		l.remaining -= cost
		l.categorySteps[categoryID] = append(steps, cost)
		return DecisionIncrease, nil

	case requested < current:
		if !l.active {
			return DecisionDecrease, nil
		}
		steps := l.categorySteps[categoryID]
		if len(steps) == 0 {
			return DecisionNoChange, rankFloorError("category", categoryID)
		}
		l.remaining += steps[len(steps)-1]
		if len(steps) == 1 {
			delete(l.categorySteps, categoryID)
		} else {
			l.categorySteps[categoryID] = steps[:len(steps)-1]
		}
		return DecisionDecrease, nil

	default:
		return DecisionNoChange, nil
	}
}

// RemoveCategory refunds every step bought for a category this session
// and returns how many steps were refunded.
func (l *LevelUp) RemoveCategory(categoryID int) int {
	steps := l.categorySteps[categoryID]
	for _, c := range steps {
		l.remaining += c
	}
	delete(l.categorySteps, categoryID)
	return len(steps)
}

// BuyTrainingPack charges a training pack as one unit.
func (l *LevelUp) BuyTrainingPack(packID, cost int) error {
	if !l.active {
		return nil
	}
	if cost > l.remaining {
		return insufficientError(cost, l.remaining, "trainingPackID", packID)
	}
	l.remaining -= cost
	l.packs = append(l.packs, packID)
	return nil
}

// SpentOn returns the development points currently charged for skills
// and categories.
func (l *LevelUp) SpentOn() (skills, categories int) {
	for id, steps := range l.skillSteps {
		factor := l.SpellListFactor(id)
		for _, st := range steps {
			skills += st.base * factor
		}
	}
	for _, steps := range l.categorySteps {
		for _, c := range steps {
			categories += c
		}
	}
	return skills, categories
}

func rankFloorError(kind string, id int) *Error {
	return newError(CodeRankFloorReached,
		fmt.Sprintf("%s %d: no ranks bought this level to remove", kind, id),
		map[string]string{kind + "ID": strconv.Itoa(id)})
}

func insufficientError(cost, remaining int, idKey string, id int) *Error {
	return newError(CodeInsufficientPoints,
		fmt.Sprintf("costs %d development points, %d left", cost, remaining),
		map[string]string{
			idKey:       strconv.Itoa(id),
			"cost":      strconv.Itoa(cost),
			"remaining": strconv.Itoa(remaining),
		})
}
