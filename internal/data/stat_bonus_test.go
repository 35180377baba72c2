package data

import "testing"

func TestStatBonus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score int
		want  int
	}{
		{1, -10},
		{10, -5},
		{11, -4},
		{30, -1},
		{31, 0},
		{50, 0},
		{69, 0},
		{70, 1},
		{89, 4},
		{95, 0},
		{100, 10},
		{101, 12},
		{102, 14},
	}

	for _, tt := range tests {
		if got := StatBonus(tt.score); got != tt.want {
			t.Errorf("StatBonus(%d) = %d; want %d", tt.score, got, tt.want)
		}
	}
}

func TestStatBonusMonotoneWithinBands(t *testing.T) {
	t.Parallel()

	bands := [][2]int{{1, 10}, {11, 30}, {31, 69}, {70, 89}, {90, 102}}
	for _, band := range bands {
		prev := StatBonus(band[0])
		for v := band[0] + 1; v <= band[1]; v++ {
			cur := StatBonus(v)
			if cur < prev {
				t.Errorf("StatBonus(%d) = %d < StatBonus(%d) = %d", v, cur, v-1, prev)
			}
			prev = cur
		}
	}
}
