// Package pi2 implements the Pi-squared compiler: it rewrites
// a multi-valued planning task into an equivalent two-valued task whose
// atoms are meta-atoms, one per unordered pair of original facts plus a
// synthetic anchor, such that the compiled task's h1 equals the original
// task's h2.
package pi2

import (
	"github.com/eliahaenggi/h2plan/internal/fact"
	"github.com/eliahaenggi/h2plan/internal/task"
)

// metaOperator is one member of the meta-operator family generated for an
// original operator: either the context-free (S = ∅) member or one of the
// members indexed by a context atom S.
type metaOperator struct {
	parentID int
	sAtom    fact.Fact
	pre      []fact.Fact
	eff      []fact.Fact
	cost     int
}

// CompiledTask is the Pi-squared compiled task produced by Compile. It
// implements task.Named.
type CompiledTask struct {
	metaAtomOf map[fact.Pair]int
	factNames  [][2]string // factNames[i] = {absent name, present name}

	domains []int // all 2
	init    []int
	goals   []fact.Fact
	ops     []metaOperator
}

// Compile builds the Pi-squared compilation of t.
func Compile(t task.Task) (*CompiledTask, error) {
	c := &CompiledTask{
		metaAtomOf: map[fact.Pair]int{},
	}
	c.buildMetaAtoms(t)
	c.buildInitAndGoals(t)
	if err := c.buildOperators(t); err != nil {
		return nil, err
	}
	c.domains = make([]int, len(c.factNames))
	for i := range c.domains {
		c.domains[i] = 2
	}
	return c, nil
}

// buildMetaAtoms enumerates the anchor plus every unordered pair of facts
// (including singleton "diagonal" pairs), assigning indices in a fixed
// order: the anchor first, then an outer loop over variable v1, an inner
// loop over value d1, then the diagonal pair of (v1, d1) with itself, then
// every (v2, d2) with v2 > v1. Pairs of two different values of the same
// variable get no meta-atom.
func (c *CompiledTask) buildMetaAtoms(t task.Task) {
	anchor := fact.Of(fact.None, fact.None)
	c.metaAtomOf[anchor] = 0
	absentAnchor, presentAnchor := pairNames(fact.None, fact.None)
	c.factNames = append(c.factNames, [2]string{absentAnchor, presentAnchor})

	nVars := t.NumVariables()
	for v1 := 0; v1 < nVars; v1++ {
		for d1 := 0; d1 < t.DomainSize(v1); d1++ {
			a := fact.Fact{Var: v1, Value: d1}

			c.addMetaAtom(a, a)
			for v2 := v1 + 1; v2 < nVars; v2++ {
				for d2 := 0; d2 < t.DomainSize(v2); d2++ {
					b := fact.Fact{Var: v2, Value: d2}
					c.addMetaAtom(a, b)
				}
			}
		}
	}
}

func (c *CompiledTask) addMetaAtom(a, b fact.Fact) {
	p := fact.Of(a, b)
	idx := len(c.factNames)
	c.metaAtomOf[p] = idx
	absent, present := pairNames(a, b)
	c.factNames = append(c.factNames, [2]string{absent, present})
}

// translate looks up the meta-atom for (a, b), reporting false when no
// mapping exists: a and b assign different values to the same variable, so
// no state can ever satisfy both and the pair was never given a meta-atom.
func (c *CompiledTask) translate(a, b fact.Fact) (int, bool) {
	idx, ok := c.metaAtomOf[fact.Of(a, b)]
	return idx, ok
}

func (c *CompiledTask) buildInitAndGoals(t task.Task) {
	c.init = make([]int, len(c.factNames))
	initValues := t.InitialState()

	goalSet := make(map[fact.Fact]bool, len(t.Goals()))
	for _, g := range t.Goals() {
		goalSet[g] = true
	}
	matchesGoal := func(f fact.Fact) bool { return f.IsNone() || goalSet[f] }
	matchesInit := func(f fact.Fact) bool {
		return f.IsNone() || initValues[f.Var] == f.Value
	}

	for p, idx := range c.metaAtomOf {
		if matchesInit(p.A) && matchesInit(p.B) {
			c.init[idx] = 1
		}
		if matchesGoal(p.A) && matchesGoal(p.B) {
			c.goals = append(c.goals, fact.Fact{Var: idx, Value: 1})
		}
	}
}

func (c *CompiledTask) buildOperators(t task.Task) error {
	anchorIdx := c.metaAtomOf[fact.Of(fact.None, fact.None)]

	for _, op := range t.Operators() {
		effVars := make(map[int]struct{}, len(op.Eff))
		for _, e := range op.Eff {
			effVars[e.Var] = struct{}{}
		}

		basePre := c.metaPairs(op.Pre, op.Pre)
		baseEff := c.metaPairs(op.Eff, op.Eff)

		pre := append([]fact.Fact{{Var: anchorIdx, Value: 1}}, basePre...)
		c.ops = append(c.ops, metaOperator{
			parentID: op.ID,
			sAtom:    fact.None,
			pre:      pre,
			eff:      append([]fact.Fact{}, baseEff...),
			cost:     op.Cost,
		})

		for v := 0; v < t.NumVariables(); v++ {
			if _, touched := effVars[v]; touched {
				continue
			}
			for d := 0; d < t.DomainSize(v); d++ {
				s := fact.Fact{Var: v, Value: d}
				if contradictsPrecondition(op.Pre, s) {
					continue
				}

				sIdx, ok := c.translate(s, s)
				if !ok {
					continue
				}
				sPre := append([]fact.Fact{}, pre...)
				sPre = append(sPre, fact.Fact{Var: sIdx, Value: 1})
				sPre = append(sPre, c.metaPairsWithContext(op.Pre, s)...)

				sEff := append([]fact.Fact{}, baseEff...)
				sEff = append(sEff, c.metaPairsWithContext(op.Eff, s)...)

				c.ops = append(c.ops, metaOperator{
					parentID: op.ID,
					sAtom:    s,
					pre:      sPre,
					eff:      sEff,
					cost:     op.Cost,
				})
			}
		}
	}
	return nil
}

// metaPairs translates every (p, q) pair drawn from as and bs (including
// p == q) into meta-atom preconditions/effects, dropping pairs with no
// mapping.
func (c *CompiledTask) metaPairs(as, bs []fact.Fact) []fact.Fact {
	var out []fact.Fact
	for _, a := range as {
		for _, b := range bs {
			if idx, ok := c.translate(a, b); ok {
				out = append(out, fact.Fact{Var: idx, Value: 1})
			}
		}
	}
	return out
}

// metaPairsWithContext translates every fact in fs against the context
// atom s into a meta-atom, dropping facts with no mapping.
func (c *CompiledTask) metaPairsWithContext(fs []fact.Fact, s fact.Fact) []fact.Fact {
	var out []fact.Fact
	for _, f := range fs {
		if idx, ok := c.translate(f, s); ok {
			out = append(out, fact.Fact{Var: idx, Value: 1})
		}
	}
	return out
}

func contradictsPrecondition(pre []fact.Fact, s fact.Fact) bool {
	for _, p := range pre {
		if p.Var == s.Var && p.Value != s.Value {
			return true
		}
	}
	return false
}
