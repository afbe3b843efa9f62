package htwo

import (
	"github.com/eliahaenggi/h2plan/internal/fact"
	"github.com/eliahaenggi/h2plan/internal/htable"
	"github.com/eliahaenggi/h2plan/internal/opcache"
	"github.com/eliahaenggi/h2plan/internal/task"
	"github.com/eliahaenggi/h2plan/internal/worklist"
)

// Solver runs the worklist-driven h2 fixed point against a task façade and
// its precomputed operator cache. The façade and cache are read-only and
// shared across every call to Solve; the table, worklist, and per-operator
// bookkeeping are rebuilt fresh on each call.
type Solver struct {
	t        task.Task
	cache    *opcache.Cache
	costs    []htable.Cost
	allFacts []fact.Fact

	critical [][]fact.Pair
	opcost   []htable.Cost
}

// NewSolver builds a Solver for t, precomputing its operator cache.
func NewSolver(t task.Task) *Solver {
	cache := opcache.Build(t)
	ops := t.Operators()
	costs := make([]htable.Cost, len(ops))
	for _, op := range ops {
		costs[op.ID] = htable.Cost(op.Cost)
	}
	return &Solver{
		t:        t,
		cache:    cache,
		costs:    costs,
		allFacts: allFacts(t),
		critical: make([][]fact.Pair, len(ops)),
		opcost:   make([]htable.Cost, len(ops)),
	}
}

func allFacts(t task.Task) []fact.Fact {
	facts := make([]fact.Fact, 0, t.NumVariables())
	for v := 0; v < t.NumVariables(); v++ {
		for val := 0; val < t.DomainSize(v); val++ {
			facts = append(facts, fact.Fact{Var: v, Value: val})
		}
	}
	return facts
}

// Solve runs the fixed point from state and returns the resulting h2 table,
// from which goal facts (or any other fact tuple) can be evaluated with
// Eval. The table, and the solver's per-operator critical/opcost
// bookkeeping, belong only to this call; a fresh Solve call reinitializes
// them from scratch.
func (s *Solver) Solve(state []int) *htable.Table {
	tab := s.initTable(state)
	q := worklist.NewOpQueue(len(s.critical))

	for id := range s.critical {
		pre := s.cache.Pre[id]
		v, nonzero := seedCritical(tab, pre)
		s.opcost[id] = v
		s.critical[id] = nonzero
		if v == 0 {
			q.Push(id)
		}
	}

	s.run(tab, q)
	return tab
}

func (s *Solver) initTable(state []int) *htable.Table {
	return initTable(s.allFacts, state)
}

// initTable builds the h2 table for state: every singleton and
// cross-variable pair is present with cost 0 if both its component facts
// hold in state, Inf otherwise; same-variable different-value pairs are
// never stored.
func initTable(facts []fact.Fact, state []int) *htable.Table {
	tab := htable.New(len(facts) * len(facts) / 2)

	present := make(map[fact.Fact]bool, len(state))
	for v, val := range state {
		present[fact.Fact{Var: v, Value: val}] = true
	}
	isPresent := func(f fact.Fact) bool { return f.IsNone() || present[f] }

	for i, a := range facts {
		c := htable.Cost(0)
		if !isPresent(a) {
			c = htable.Inf
		}
		tab.Set(fact.Single(a), c)

		for j := i + 1; j < len(facts); j++ {
			b := facts[j]
			if a.Var == b.Var {
				continue // same variable, different value: never stored
			}
			pc := htable.Cost(0)
			if !(isPresent(a) && isPresent(b)) {
				pc = htable.Inf
			}
			tab.Set(fact.Of(a, b), pc)
		}
	}
	return tab
}

// run drains the worklist, applying operators until no entry improves.
// Each dequeued operator's singleton effects are always extended into
// joint pairs, independent of whether this particular application lowers
// the singleton's own table entry: a costlier operator can still be the
// only valid way to reach some pair through that singleton even after a
// cheaper, effect-incompatible operator already set the singleton's own
// minimum cost. Fan-out, by contrast, only fires on an actual strict
// decrease, since it exists to wake operators whose precondition just
// became cheaper.
func (s *Solver) run(tab *htable.Table, q *worklist.OpQueue) {
	for !q.Empty() {
		o := q.Pop()
		c1 := s.opcost[o]
		if c1 >= htable.Inf {
			continue
		}
		cost := s.costs[o]

		for _, p := range s.cache.PartialEff[o] {
			if p.IsSingleton() {
				s.extend(tab, q, p.B, o, c1)
			}
			proposed := c1.Add(cost)
			if !tab.Lower(p, proposed) {
				continue
			}
			s.fanOut(tab, q, p)
		}
	}
}

// extend propagates singleton effect f of operator o into every pair it
// could tighten, whether or not this application lowered f's own entry.
func (s *Solver) extend(tab *htable.Table, q *worklist.OpQueue, f fact.Fact, o int, c1 htable.Cost) {
	effVars := s.cache.EffVars[o]
	pre := s.cache.Pre[o]
	cost := s.costs[o]

	for _, x := range s.allFacts {
		if _, contradicts := effVars[x.Var]; contradicts {
			continue
		}
		if tab.Get(fact.Single(x)) >= htable.Inf {
			continue
		}
		pExt := fact.Of(f, x)
		if tab.Get(pExt) <= c1 {
			continue // cannot improve
		}
		c2 := ExtendEval(tab, x, pre, c1)
		if c2 >= htable.Inf {
			continue
		}
		if tab.Lower(pExt, c2.Add(cost)) {
			s.fanOut(tab, q, pExt)
		}
	}
}

// fanOut wakes every operator subscribed (via op_dict) to either component
// fact of a pair whose table entry just strictly decreased. The pair is
// removed from each such operator's critical set; once that set is empty,
// the operator's cost is recomputed with Eval and its critical set becomes
// Eval's max-attaining pairs.
func (s *Solver) fanOut(tab *htable.Table, q *worklist.OpQueue, p fact.Pair) {
	for _, f := range p.RealFacts() {
		for _, o := range s.cache.OpDict[f] {
			if idx := indexOfPair(s.critical[o], p); idx >= 0 {
				s.critical[o] = removePairAt(s.critical[o], idx)
				if len(s.critical[o]) == 0 {
					v, critical := Eval(tab, s.cache.Pre[o])
					s.opcost[o] = v
					s.critical[o] = critical
				}
			}
			q.Push(o)
		}
	}
}

func indexOfPair(pairs []fact.Pair, p fact.Pair) int {
	for i, q := range pairs {
		if q == p {
			return i
		}
	}
	return -1
}

func removePairAt(pairs []fact.Pair, i int) []fact.Pair {
	return append(pairs[:i], pairs[i+1:]...)
}
