package model

// Rank is the player-owned state of one skill or skill category.
// The sheet keeps ranks by id and hands out copies only.
type Rank struct {
	ID       int
	Value    float64 // >= 0, a multiple of the skill type step
	Special  int     // user special bonus
	Favorite bool
}

// rankTable holds ranks keyed by skill or category id, created lazily.
type rankTable map[int]*Rank

// get returns the rank for id, creating it at 0 on first access.
func (t rankTable) get(id int) *Rank {
	r, ok := t[id]
	if !ok {
		r = &Rank{ID: id}
		t[id] = r
	}
	return r
}

// value returns the rank value without creating an entry.
func (t rankTable) value(id int) float64 {
	if r, ok := t[id]; ok {
		return r.Value
	}
	return 0
}

// special returns the user special bonus without creating an entry.
func (t rankTable) special(id int) int {
	if r, ok := t[id]; ok {
		return r.Special
	}
	return 0
}

// snapshot copies every non-empty rank; nil when there are none.
func (t rankTable) snapshot() []Rank {
	var out []Rank
	for _, r := range t {
		if r.Value == 0 && r.Special == 0 && !r.Favorite {
			continue
		}
		out = append(out, *r)
	}
	return out
}
