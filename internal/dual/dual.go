// Package dual builds the regressed task the backward h2 variant runs
// against and wraps the same htwo solver over it. The exact regression
// semantics are an open design question; the choice made here is recorded
// in DESIGN.md.
package dual

import (
	"github.com/eliahaenggi/h2plan/internal/fact"
	"github.com/eliahaenggi/h2plan/internal/htable"
	"github.com/eliahaenggi/h2plan/internal/htwo"
	"github.com/eliahaenggi/h2plan/internal/task"
)

// BuildRegressed constructs the regression of t: every operator's
// preconditions and effects are swapped (cost unchanged), the regressed
// goals become the facts of t's initial state, and the regressed façade's
// own initial-state vector is t's goal assignment with unconstrained
// variables filled from t's initial state (it is never consulted by
// Heuristic.Compute, which always seeds the table from the caller-supplied
// state, but a well-formed façade still needs one).
func BuildRegressed(t task.Task) (task.Task, error) {
	ops := t.Operators()
	regressedOps := make([]task.Operator, len(ops))
	for i, op := range ops {
		regressedOps[i] = task.Operator{
			ID:   op.ID,
			Name: op.Name + "^-1",
			Pre:  append([]fact.Fact{}, op.Eff...),
			Eff:  append([]fact.Fact{}, op.Pre...),
			Cost: op.Cost,
		}
	}

	domains := make([]int, t.NumVariables())
	for v := range domains {
		domains[v] = t.DomainSize(v)
	}

	goals := task.StateFacts(t, t.InitialState())

	init := append([]int{}, t.InitialState()...)
	for _, g := range t.Goals() {
		init[g.Var] = g.Value
	}

	return task.New(domains, regressedOps, init, goals, t.HasAxioms(), t.HasConditionalEffects())
}

// Heuristic is h2_dual: the same worklist solver run against a regressed
// façade built once at setup.
type Heuristic struct {
	inner *htwo.Heuristic
}

// New builds the dual heuristic over t.
func New(t task.Task) (*Heuristic, error) {
	regressed, err := BuildRegressed(t)
	if err != nil {
		return nil, err
	}
	return &Heuristic{inner: htwo.NewHeuristic(regressed)}, nil
}

// Compute evaluates the dual heuristic at state, which is given in the
// original task's variable space (the regression keeps the same fact
// space, so no translation step is needed before seeding the table).
func (h *Heuristic) Compute(state []int) (htable.Cost, bool) {
	return h.inner.Compute(state)
}

// DeadEndsAreReliable mirrors Heuristic.DeadEndsAreReliable for the
// regressed task.
func (h *Heuristic) DeadEndsAreReliable() bool {
	return h.inner.DeadEndsAreReliable()
}
