package data

import "testing"

func TestAttributeFlags(t *testing.T) {
	t.Parallel()

	devPoints := 0
	realms := 0
	for _, a := range Attributes {
		if a.UsedForDevPoints() {
			devPoints++
		}
		if a.IsRealm() {
			realms++
		}
	}
	if devPoints != 5 {
		t.Errorf("attributes used for development points = %d; want 5", devPoints)
	}
	if realms != 3 {
		t.Errorf("realm attributes = %d; want 3", realms)
	}
}

func TestAttributeSet(t *testing.T) {
	t.Parallel()

	arcane := NewAttributeSet(Empathy, Intuition, Presence)
	if arcane.Len() != 3 {
		t.Errorf("Len = %d; want 3", arcane.Len())
	}
	if arcane.Key() != "em+in+pr" {
		t.Errorf("Key = %q", arcane.Key())
	}

	essence := NewAttributeSet(Empathy)
	if !essence.SubsetOf(arcane) {
		t.Error("{EM} should be a subset of {EM,IN,PR}")
	}
	if arcane.SubsetOf(essence) {
		t.Error("{EM,IN,PR} should not be a subset of {EM}")
	}
	if !AttributeSet(0).SubsetOf(essence) {
		t.Error("empty set should be a subset of everything")
	}

	parsed, err := ParseAttributeSet([]string{"pr", "EM"})
	if err != nil {
		t.Fatalf("ParseAttributeSet: %v", err)
	}
	if parsed != NewAttributeSet(Empathy, Presence) {
		t.Errorf("ParseAttributeSet = %v", parsed)
	}
	if _, err := ParseAttributeSet([]string{"XX"}); err == nil {
		t.Error("ParseAttributeSet(XX) succeeded; want error")
	}
}

func TestDominantSkillType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b, want SkillType
	}{
		{SkillTypeStandard, SkillTypeEveryman, SkillTypeEveryman},
		{SkillTypeOccupational, SkillTypeEveryman, SkillTypeOccupational},
		{SkillTypeOccupational, SkillTypeRestricted, SkillTypeRestricted},
		{SkillTypeRestricted, SkillTypeStandard, SkillTypeRestricted},
		{SkillTypeStandard, SkillTypeStandard, SkillTypeStandard},
	}
	for _, tt := range tests {
		if got := DominantSkillType(tt.a, tt.b); got != tt.want {
			t.Errorf("DominantSkillType(%s, %s) = %s; want %s", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestGetDivineStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		grace int
		want  string
	}{
		{-100, "Forsaken"},
		{-50, "Forsaken"},
		{0, "Mundane"},
		{9, "Mundane"},
		{10, "Noticed"},
		{4999, "Saintly"},
		{5000, "Avatar"},
		{90000, "Avatar"},
	}
	for _, tt := range tests {
		if got := GetDivineStatus(tt.grace); got.Name != tt.want {
			t.Errorf("GetDivineStatus(%d) = %s; want %s", tt.grace, got.Name, tt.want)
		}
	}
}
