// Package htwo implements the h2 fixed-point solver: the worklist-driven
// relaxation over fact-pairs that is the computational core of this
// module, together with the per-state heuristic query that drives it.
package htwo

import (
	"github.com/eliahaenggi/h2plan/internal/fact"
	"github.com/eliahaenggi/h2plan/internal/htable"
)

// Eval computes the h2 value of a fact tuple: the maximum, over every
// canonical pair generated from t, of its table entry. It also returns the
// set of critical pairs, those that attain the maximum; the critical set
// is empty whenever the maximum is 0.
func Eval(tab *htable.Table, t []fact.Fact) (htable.Cost, []fact.Pair) {
	pairs := fact.PartialPairs(t)
	max := htable.Cost(0)
	var critical []fact.Pair
	for _, p := range pairs {
		v := tab.Get(p)
		if v >= htable.Inf {
			return htable.Inf, nil
		}
		if v > max {
			max = v
			critical = critical[:0]
			critical = append(critical, p)
		} else if v == max && v != 0 {
			critical = append(critical, p)
		}
	}
	return max, critical
}

// seedCritical computes the h2 value of t along with the full set of
// currently nonzero pairs in its pair-expansion. Unlike Eval's
// max-attaining critical set, this includes every pair still above 0, not
// just those tied for the maximum: an operator not yet applicable needs to
// track every outstanding precondition pair, including Inf ones, so that
// fanOut can drain the set to empty once each of them has strictly
// decreased at least once, at which point the operator's cost is
// recomputed.
func seedCritical(tab *htable.Table, t []fact.Fact) (htable.Cost, []fact.Pair) {
	pairs := fact.PartialPairs(t)
	max := htable.Cost(0)
	var nonzero []fact.Pair
	for _, p := range pairs {
		v := tab.Get(p)
		if v > max {
			max = v
		}
		if v != 0 {
			nonzero = append(nonzero, p)
		}
	}
	return max, nonzero
}

// ExtendEval evaluates pre ∪ {x}, given that eval(pre) is already known to
// be v, without re-scanning pre's own internal pairs.
func ExtendEval(tab *htable.Table, x fact.Fact, pre []fact.Fact, v htable.Cost) htable.Cost {
	for _, f := range pre {
		if f.Var == x.Var && f.Value != x.Value {
			return htable.Inf
		}
	}
	m := v.Max(tab.Get(fact.Single(x)))
	if m >= htable.Inf {
		return htable.Inf
	}
	for _, f := range pre {
		if f.Var == x.Var {
			continue
		}
		m = m.Max(tab.Get(fact.Of(f, x)))
		if m >= htable.Inf {
			return htable.Inf
		}
	}
	return m
}
