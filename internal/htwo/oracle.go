package htwo

import (
	"github.com/eliahaenggi/h2plan/internal/fact"
	"github.com/eliahaenggi/h2plan/internal/htable"
	"github.com/eliahaenggi/h2plan/internal/opcache"
	"github.com/eliahaenggi/h2plan/internal/task"
)

// NaiveCompute is a reference oracle used only by tests. It computes the
// same h2 value as Heuristic.Compute but by repeated full passes over every
// operator until no table entry improves, rather than the worklist-driven
// relaxation in Solver.
func NaiveCompute(t task.Task, state []int) (htable.Cost, bool) {
	if task.SatisfiesGoals(t, state) {
		return 0, false
	}

	cache := opcache.Build(t)
	facts := allFacts(t)
	tab := initTable(facts, state)

	for {
		changed := false
		for _, op := range t.Operators() {
			c1, _ := Eval(tab, cache.Pre[op.ID])
			if c1 >= htable.Inf {
				continue
			}
			cost := htable.Cost(op.Cost)
			for _, p := range cache.PartialEff[op.ID] {
				if tab.Lower(p, c1.Add(cost)) {
					changed = true
				}
				if p.IsSingleton() {
					if naiveExtend(tab, cache, op.ID, p.B, c1, cost) {
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}

	v, _ := Eval(tab, t.Goals())
	return v, v >= htable.Inf
}

func naiveExtend(tab *htable.Table, cache *opcache.Cache, opID int, f fact.Fact, c1, cost htable.Cost) bool {
	changed := false
	effVars := cache.EffVars[opID]
	pre := cache.Pre[opID]

	var ext []fact.Pair
	tab.Range(func(p fact.Pair, _ htable.Cost) {
		if p.IsSingleton() || p.IsAnchor() {
			return
		}
		ext = append(ext, p)
	})

	for _, p := range ext {
		var x fact.Fact
		switch {
		case p.A == f:
			x = p.B
		case p.B == f:
			x = p.A
		default:
			continue
		}
		if _, contradicts := effVars[x.Var]; contradicts {
			continue
		}
		c2 := ExtendEval(tab, x, pre, c1)
		if c2 >= htable.Inf {
			continue
		}
		if tab.Lower(fact.Of(f, x), c2.Add(cost)) {
			changed = true
		}
	}
	return changed
}
