package htwo

import (
	"github.com/eliahaenggi/h2plan/internal/htable"
	"github.com/eliahaenggi/h2plan/internal/task"
)

// Heuristic is the per-state entry point: it resets the solver's table,
// worklist, and per-operator bookkeeping for each call, so a single
// instance may be reused across many state evaluations as long as calls
// are not interleaved concurrently.
type Heuristic struct {
	t      task.Task
	solver *Solver
}

// NewHeuristic builds a forward h2 heuristic over t.
func NewHeuristic(t task.Task) *Heuristic {
	return &Heuristic{t: t, solver: NewSolver(t)}
}

// Compute implements the full per-state query: a goal-satisfying state
// short-circuits to 0; otherwise the table is rebuilt from state and the
// solver runs to fixpoint before goals are evaluated.
func (h *Heuristic) Compute(state []int) (htable.Cost, bool) {
	if task.SatisfiesGoals(h.t, state) {
		return 0, false
	}
	tab := h.solver.Solve(state)
	v, _ := Eval(tab, h.t.Goals())
	return v, v >= htable.Inf
}

// DeadEndsAreReliable reports whether a DEAD_END returned by Compute is
// sound, i.e. the task has neither axioms nor conditional effects.
func (h *Heuristic) DeadEndsAreReliable() bool {
	return !h.t.HasAxioms() && !h.t.HasConditionalEffects()
}
