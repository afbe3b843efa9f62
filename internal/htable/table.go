package htable

import "github.com/eliahaenggi/h2plan/internal/fact"

// Table is a mapping from fact.Pair to Cost, implemented as an
// open-addressing hash table keyed by the pair's cached hash so that
// lookups in the solver's hot inner loop never recompute it. It is sized to
// tolerate the large, collision-prone key sets that real planning tasks
// produce (tens of thousands of pairs is routine; Fast Downward benchmarks
// regularly push it into the 2^17 range).
type Table struct {
	slots []slot
	mask  uint64
	count int
}

type slot struct {
	pair fact.Pair
	cost Cost
	used bool
}

// New returns an empty table sized to hold at least capacityHint entries
// without rehashing.
func New(capacityHint int) *Table {
	n := nextPow2(capacityHint*2 + 16)
	return &Table{
		slots: make([]slot, n),
		mask:  uint64(n - 1),
	}
}

func nextPow2(n int) int {
	p := 16
	for p < n {
		p *= 2
	}
	return p
}

func (t *Table) find(p fact.Pair) int {
	i := int(p.Hash() & t.mask)
	for {
		s := &t.slots[i]
		if !s.used || s.pair == p {
			return i
		}
		i = (i + 1) & int(t.mask)
	}
}

// Get returns the cost stored for p, or Inf if p has never been set.
func (t *Table) Get(p fact.Pair) Cost {
	i := t.find(p)
	if !t.slots[i].used {
		return Inf
	}
	return t.slots[i].cost
}

// Set stores cost for pair p, growing the table if necessary.
func (t *Table) Set(p fact.Pair, cost Cost) {
	if t.count*10 >= len(t.slots)*7 { // load factor >= 0.7
		t.grow()
	}
	i := t.find(p)
	if !t.slots[i].used {
		t.slots[i].used = true
		t.count++
	}
	t.slots[i].pair = p
	t.slots[i].cost = cost
}

// Lower sets T[p] to min(T[p], cost) and reports whether the value strictly
// decreased.
func (t *Table) Lower(p fact.Pair, cost Cost) bool {
	cur := t.Get(p)
	if cost >= cur {
		return false
	}
	t.Set(p, cost)
	return true
}

func (t *Table) grow() {
	old := t.slots
	n := len(old) * 2
	t.slots = make([]slot, n)
	t.mask = uint64(n - 1)
	t.count = 0
	for _, s := range old {
		if s.used {
			t.Set(s.pair, s.cost)
		}
	}
}

// Len returns the number of pairs stored in t.
func (t *Table) Len() int {
	return t.count
}

// Range calls fn once for each pair currently stored in t. Iteration order
// is not specified and must not be relied on for determinism; callers that
// need a deterministic trace should sort the pairs they collect.
func (t *Table) Range(fn func(p fact.Pair, cost Cost)) {
	for _, s := range t.slots {
		if s.used {
			fn(s.pair, s.cost)
		}
	}
}
