package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/rmsheet/internal/config"
	"github.com/udisondev/rmsheet/internal/model"
	"github.com/udisondev/rmsheet/internal/testutil"
)

func TestRun_RejectsBadInvocations(t *testing.T) {
	ctx := context.Background()

	assert.Error(t, run(ctx, nil))
	assert.ErrorContains(t, run(ctx, []string{"bogus"}), `unknown command "bogus"`)
	assert.ErrorContains(t, run(ctx, []string{"show"}), "usage: sheetcalc show <uuid>")
	assert.NoError(t, run(ctx, []string{"help"}))
}

func TestLookupCommand(t *testing.T) {
	for _, name := range []string{"rules", "create", "show", "list", "delete"} {
		c, ok := lookupCommand(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.name)
		assert.Equal(t, name != "rules", c.needsDB, name)
	}
}

func TestPrintRules(t *testing.T) {
	md := testutil.Rules(t)
	rules := config.RuleSet{
		ExcludedSources:     []string{testutil.SourceCompanion},
		ExcludedProfessions: []int{testutil.ProfFighter},
	}

	var buf bytes.Buffer
	printRules(&buf, md, rules)
	out := buf.String()

	assert.Contains(t, out, "Common Man")
	assert.Regexp(t, `Wood Elf\s+\(excluded\)`, out)
	assert.Regexp(t, `Fighter\s+non\s+\(excluded\)`, out)
	assert.Regexp(t, `Magician\s+pure\s*\n`, out)
	assert.Contains(t, out, "training packs")
}

func TestPrintSheet(t *testing.T) {
	md := testutil.Rules(t)
	s, err := model.NewSheet(md, config.DefaultRuleSet(), model.Selection{
		RaceID:       testutil.RaceCommonMan,
		CultureID:    testutil.CultureRural,
		ProfessionID: testutil.ProfFighter,
	})
	require.NoError(t, err)
	s.SetName("Borin")
	require.NoError(t, s.SetSkillRank(testutil.SkillBroadsword, 2))
	require.NoError(t, s.SetSkillFavorite(testutil.SkillBroadsword, true))

	var buf bytes.Buffer
	printSheet(&buf, s)
	out := buf.String()

	assert.Contains(t, out, "Borin")
	assert.Contains(t, out, "(in creation)")
	assert.Regexp(t, `Hit points\s+\d+`, out)
	assert.Regexp(t, `Development points\s+\d+`, out)
	assert.Regexp(t, `poison\s+\d+`, out)
	assert.Regexp(t, `Broadsword\s+.+\s+2\s+-?\d+\s+\*`, out)
	assert.NotContains(t, out, "Ambush", "unranked skills are not listed")
}
