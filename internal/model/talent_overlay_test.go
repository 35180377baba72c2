package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/rmsheet/internal/data"
)

func TestTalentOverlay_Empty(t *testing.T) {
	o := NewTalentOverlay(nil)

	assert.Equal(t, 1.0, o.ExhaustionMultiplier())
	assert.Equal(t, 1.0, o.MovementMultiplier())
	assert.Zero(t, o.StatBonus(data.Agility))
	assert.True(t, o.BodyDevelopmentModifier().IsZero())
	_, ok := o.SkillType(1)
	assert.False(t, ok)
}

func TestTalentOverlay_Aggregates(t *testing.T) {
	md, err := data.NewBuilder().
		AddTalentFlaw(data.TalentFlawParams{
			ID:              1,
			Name:            "Fleet",
			StatBonuses:     map[data.Attribute]int{data.Quickness: 5},
			Movement:        1.2,
			BodyDevelopment: data.NewProgression(0, 1, 0, 0, 0),
			SkillTypes:      map[int]data.SkillType{7: data.SkillTypeEveryman},
		}).
		AddTalentFlaw(data.TalentFlawParams{
			ID:              2,
			Name:            "Limp",
			Flaw:            true,
			StatBonuses:     map[data.Attribute]int{data.Quickness: -2},
			Movement:        0.5,
			Hits:            -5,
			BodyDevelopment: data.NewProgression(0, 0, 1, 0, 0),
			SkillTypes:      map[int]data.SkillType{7: data.SkillTypeRestricted},
		}).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	o := NewTalentOverlay(md.TalentFlaws())

	assert.Equal(t, 3, o.StatBonus(data.Quickness))
	assert.InDelta(t, 0.6, o.MovementMultiplier(), 1e-9)
	assert.Equal(t, -5, o.Hits())
	assert.Equal(t, data.NewProgression(0, 1, 1, 0, 0), o.BodyDevelopmentModifier())
	st, ok := o.SkillType(7)
	assert.True(t, ok)
	assert.Equal(t, data.SkillTypeRestricted, st)
}
