// Package opcache precomputes, once per task, the per-operator views the h2
// solver revisits on every wakeup: sorted preconditions, partial effect
// pairs, the set of variables touched by effects, and the fact -> operator
// fan-in index used to wake operators when a table entry improves.
package opcache

import (
	"sort"

	"github.com/eliahaenggi/h2plan/internal/fact"
	"github.com/eliahaenggi/h2plan/internal/task"
)

// Cache holds the operator-indexed data built once from a task.Task and
// shared, read-only, across every state evaluation.
type Cache struct {
	// Pre[id] is the sorted precondition list of operator id.
	Pre [][]fact.Fact

	// PartialEff[id] is every subset of size 1 and 2 of operator id's effect
	// set, in canonical Pair form, emitted singletons-first in index order
	// and then lexicographically by index pair.
	PartialEff [][]fact.Pair

	// EffVars[id] is the set of variables touched by any effect of operator
	// id, used to detect contradicting extensions.
	EffVars []map[int]struct{}

	// OpDict maps a fact to the ids of operators whose precondition set
	// contains it. Operators with an empty precondition set are registered
	// under every fact, since they are unconditionally applicable and must
	// be revisited whenever any table entry changes.
	OpDict map[fact.Fact][]int
}

// Build constructs the operator cache for t.
func Build(t task.Task) *Cache {
	ops := t.Operators()
	c := &Cache{
		Pre:        make([][]fact.Fact, len(ops)),
		PartialEff: make([][]fact.Pair, len(ops)),
		EffVars:    make([]map[int]struct{}, len(ops)),
		OpDict:     make(map[fact.Fact][]int),
	}

	allFacts := allFacts(t)

	for _, op := range ops {
		pre := sortedCopy(op.Pre)
		eff := sortedCopy(op.Eff)

		c.Pre[op.ID] = pre
		c.PartialEff[op.ID] = fact.PartialPairs(eff)

		effVars := make(map[int]struct{}, len(eff))
		for _, f := range eff {
			effVars[f.Var] = struct{}{}
		}
		c.EffVars[op.ID] = effVars

		if len(pre) == 0 {
			for _, f := range allFacts {
				c.OpDict[f] = append(c.OpDict[f], op.ID)
			}
			continue
		}
		for _, f := range pre {
			c.OpDict[f] = append(c.OpDict[f], op.ID)
		}
	}

	return c
}

func allFacts(t task.Task) []fact.Fact {
	var facts []fact.Fact
	for v := 0; v < t.NumVariables(); v++ {
		for val := 0; val < t.DomainSize(v); val++ {
			facts = append(facts, fact.Fact{Var: v, Value: val})
		}
	}
	return facts
}

func sortedCopy(facts []fact.Fact) []fact.Fact {
	out := append([]fact.Fact{}, facts...)
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
