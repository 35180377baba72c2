package data

import "testing"

func TestSkillcost(t *testing.T) {
	t.Parallel()

	c := NewSkillcost(5, 10, 15)
	if c.Size() != 3 {
		t.Fatalf("Size = %d; want 3", c.Size())
	}
	if c.Total() != 30 {
		t.Errorf("Total = %d; want 30", c.Total())
	}
	for step, want := range []int{5, 10, 15} {
		if got := c.Cost(step); got != want {
			t.Errorf("Cost(%d) = %d; want %d", step, got, want)
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("Cost(3) did not panic on a 3-step table")
		}
	}()
	c.Cost(3)
}

func TestParseSkillcost(t *testing.T) {
	t.Parallel()

	c, err := ParseSkillcost("2/5")
	if err != nil {
		t.Fatalf("ParseSkillcost: %v", err)
	}
	if c.String() != "2/5" || c.Size() != 2 {
		t.Errorf("ParseSkillcost(2/5) = %v (size %d)", c, c.Size())
	}

	empty, err := ParseSkillcost("")
	if err != nil || empty.Size() != 0 {
		t.Errorf("ParseSkillcost(\"\") = %v, %v; want size 0", empty, err)
	}

	for _, bad := range []string{"2/x", "-1/2", "/"} {
		if _, err := ParseSkillcost(bad); err == nil {
			t.Errorf("ParseSkillcost(%q) succeeded; want error", bad)
		}
	}
}

func TestSkillcostCompare(t *testing.T) {
	t.Parallel()

	if NewSkillcost(1, 3).Compare(NewSkillcost(2, 5)) >= 0 {
		t.Error("1/3 should sort before 2/5")
	}
	if NewSkillcost(2).Compare(NewSkillcost(2, 5)) >= 0 {
		t.Error("a prefix should sort first")
	}
	if NewSkillcost(4, 4).Compare(NewSkillcost(4, 4)) != 0 {
		t.Error("equal tables should compare 0")
	}
}
