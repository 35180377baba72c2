package data

import "testing"

func TestProgressionBonus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		p     Progression
		ranks float64
		want  int
	}{
		{"zero ranks yields d0", DefaultSkillProgression, 0, -15},
		{"first band", DefaultSkillProgression, 5, 15},
		{"band edge 10", DefaultSkillProgression, 10, 30},
		{"rank 25", DefaultSkillProgression, 25, 55},
		{"rank 30", DefaultSkillProgression, 30, 60},
		{"half steps in the last band", DefaultSkillProgression, 33, 62},
		{"rank 35 rounds 62.5 up", DefaultSkillProgression, 35, 63},
		{"restricted half rank", DefaultSkillProgression, 0.5, 2},
		{"category progression", DefaultCategoryProgression, 12, 22},
		{"category flat above 30", DefaultCategoryProgression, 40, 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.p.Bonus(tt.ranks); got != tt.want {
				t.Errorf("%v.Bonus(%v) = %d; want %d", tt.p, tt.ranks, got, tt.want)
			}
		})
	}
}

func TestProgressionCompare(t *testing.T) {
	t.Parallel()

	low := NewProgression(0, 1, 1, 1, 0)
	high := NewProgression(0, 2, 1, 1, 0)
	if low.Compare(high) >= 0 {
		t.Errorf("expected %v < %v", low, high)
	}
	if high.Compare(low) <= 0 {
		t.Errorf("expected %v > %v", high, low)
	}

	// Equal sums order by digits.
	a := NewProgression(0, 1, 2, 0, 0)
	b := NewProgression(0, 2, 1, 0, 0)
	if a.Compare(b) != -1 || b.Compare(a) != 1 {
		t.Errorf("tie break on digits failed: %d / %d", a.Compare(b), b.Compare(a))
	}
	if a.Compare(a) != 0 {
		t.Errorf("Compare with itself = %d; want 0", a.Compare(a))
	}
}

func TestProgressionModify(t *testing.T) {
	t.Parallel()

	base := NewProgression(0, 6, 4, 2, 1)
	mod := NewProgression(0, 1, 1, 0, -1)
	got := base.Modify(mod)
	want := NewProgression(0, 7, 5, 2, 0)
	if got != want {
		t.Errorf("Modify = %v; want %v", got, want)
	}
	if base != NewProgression(0, 6, 4, 2, 1) {
		t.Errorf("Modify changed the receiver: %v", base)
	}
}

func TestParseProgression(t *testing.T) {
	t.Parallel()

	p, err := ParseProgression("-15/3/2/1/0.5")
	if err != nil {
		t.Fatalf("ParseProgression: %v", err)
	}
	if p != DefaultSkillProgression {
		t.Errorf("ParseProgression = %v; want %v", p, DefaultSkillProgression)
	}
	if p.String() != "-15/3/2/1/0.5" {
		t.Errorf("String = %q", p.String())
	}

	for _, bad := range []string{"", "1/2/3", "a/1/1/1/1", "1/2/3/4/5/6"} {
		if _, err := ParseProgression(bad); err == nil {
			t.Errorf("ParseProgression(%q) succeeded; want error", bad)
		}
	}
}
