package htwo

import (
	"testing"

	"github.com/eliahaenggi/h2plan/internal/fact"
	"github.com/eliahaenggi/h2plan/internal/htable"
	"github.com/eliahaenggi/h2plan/internal/task"
)

func mustTask(t *testing.T, domains []int, ops []task.Operator, init []int, goals []fact.Fact) *task.Static {
	st, err := task.New(domains, ops, init, goals, false, false)
	if err != nil {
		t.Fatalf("task.New: %v", err)
	}
	return st
}

// Scenario 1: trivial goal already satisfied.
func TestCompute_TrivialGoal(t *testing.T) {
	ops := []task.Operator{
		{Name: "noop", Pre: nil, Eff: nil, Cost: 1},
	}
	tsk := mustTask(t, []int{2}, ops, []int{1}, []fact.Fact{{Var: 0, Value: 1}})

	h := NewHeuristic(tsk)
	v, dead := h.Compute(tsk.InitialState())
	if dead || v != 0 {
		t.Fatalf("Compute = (%v, %v), want (0, false)", v, dead)
	}
}

// Scenario 2: single zero-precondition operator.
func TestCompute_SingleOperator(t *testing.T) {
	ops := []task.Operator{
		{Name: "a", Pre: nil, Eff: []fact.Fact{{Var: 0, Value: 1}}, Cost: 5},
	}
	tsk := mustTask(t, []int{2, 2}, ops, []int{0, 0}, []fact.Fact{{Var: 0, Value: 1}})

	h := NewHeuristic(tsk)
	v, dead := h.Compute(tsk.InitialState())
	if dead || v != 5 {
		t.Fatalf("Compute = (%v, %v), want (5, false)", v, dead)
	}
}

// Scenario 3: pairwise synergy; h2 must return max(3,4)=4, not h+'s 7.
func TestCompute_PairwiseSynergy(t *testing.T) {
	ops := []task.Operator{
		{Name: "a", Pre: nil, Eff: []fact.Fact{{Var: 0, Value: 1}}, Cost: 3},
		{Name: "b", Pre: nil, Eff: []fact.Fact{{Var: 1, Value: 1}}, Cost: 4},
	}
	tsk := mustTask(t, []int{2, 2, 2}, ops, []int{0, 0, 0}, []fact.Fact{
		{Var: 0, Value: 1},
		{Var: 1, Value: 1},
	})

	h := NewHeuristic(tsk)
	v, dead := h.Compute(tsk.InitialState())
	if dead || v != 4 {
		t.Fatalf("Compute = (%v, %v), want (4, false)", v, dead)
	}

	// The pair itself converges to the (looser, h+-style) sum of 7, but
	// Eval over the goal tuple must take the max over partial pairs, which
	// is the tighter singleton cost of 4.
	tab := NewSolver(tsk).Solve(tsk.InitialState())
	pairCost := tab.Get(fact.Of(fact.Fact{Var: 0, Value: 1}, fact.Fact{Var: 1, Value: 1}))
	if pairCost != 7 {
		t.Fatalf("T[{v0=1,v1=1}] = %v, want 7", pairCost)
	}
}

// Scenario 4: dead end, no operator reaches the goal value.
func TestCompute_DeadEnd(t *testing.T) {
	ops := []task.Operator{
		{Name: "a", Pre: nil, Eff: []fact.Fact{{Var: 0, Value: 1}}, Cost: 1},
	}
	tsk := mustTask(t, []int{3}, ops, []int{0}, []fact.Fact{{Var: 0, Value: 2}})

	h := NewHeuristic(tsk)
	v, dead := h.Compute(tsk.InitialState())
	if !dead || v < htable.Inf {
		t.Fatalf("Compute = (%v, %v), want (Inf, true)", v, dead)
	}
}

// Scenario 5: chained preconditions.
func TestCompute_ChainedPreconditions(t *testing.T) {
	ops := []task.Operator{
		{Name: "a", Pre: nil, Eff: []fact.Fact{{Var: 0, Value: 1}}, Cost: 2},
		{Name: "b", Pre: []fact.Fact{{Var: 0, Value: 1}}, Eff: []fact.Fact{{Var: 1, Value: 1}}, Cost: 3},
	}
	tsk := mustTask(t, []int{2, 2}, ops, []int{0, 0}, []fact.Fact{{Var: 1, Value: 1}})

	h := NewHeuristic(tsk)
	v, dead := h.Compute(tsk.InitialState())
	if dead || v != 5 {
		t.Fatalf("Compute = (%v, %v), want (5, false)", v, dead)
	}
}

// NaiveCompute must agree with the worklist solver on every scenario.
func TestNaiveCompute_AgreesWithSolver(t *testing.T) {
	tests := []struct {
		name    string
		domains []int
		ops     []task.Operator
		init    []int
		goals   []fact.Fact
	}{
		{
			name:    "single operator",
			domains: []int{2, 2},
			ops: []task.Operator{
				{Name: "a", Eff: []fact.Fact{{Var: 0, Value: 1}}, Cost: 5},
			},
			init:  []int{0, 0},
			goals: []fact.Fact{{Var: 0, Value: 1}},
		},
		{
			name:    "pairwise synergy",
			domains: []int{2, 2, 2},
			ops: []task.Operator{
				{Name: "a", Eff: []fact.Fact{{Var: 0, Value: 1}}, Cost: 3},
				{Name: "b", Eff: []fact.Fact{{Var: 1, Value: 1}}, Cost: 4},
			},
			init:  []int{0, 0, 0},
			goals: []fact.Fact{{Var: 0, Value: 1}, {Var: 1, Value: 1}},
		},
		{
			name:    "chained preconditions",
			domains: []int{2, 2},
			ops: []task.Operator{
				{Name: "a", Eff: []fact.Fact{{Var: 0, Value: 1}}, Cost: 2},
				{Name: "b", Pre: []fact.Fact{{Var: 0, Value: 1}}, Eff: []fact.Fact{{Var: 1, Value: 1}}, Cost: 3},
			},
			init:  []int{0, 0},
			goals: []fact.Fact{{Var: 1, Value: 1}},
		},
		{
			name:    "dead end",
			domains: []int{3},
			ops: []task.Operator{
				{Name: "a", Eff: []fact.Fact{{Var: 0, Value: 1}}, Cost: 1},
			},
			init:  []int{0},
			goals: []fact.Fact{{Var: 0, Value: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tsk := mustTask(t, tt.domains, tt.ops, tt.init, tt.goals)

			h := NewHeuristic(tsk)
			solverV, solverDead := h.Compute(tsk.InitialState())
			naiveV, naiveDead := NaiveCompute(tsk, tsk.InitialState())

			if solverV != naiveV || solverDead != naiveDead {
				t.Errorf("solver = (%v, %v), naive oracle = (%v, %v)", solverV, solverDead, naiveV, naiveDead)
			}
		})
	}
}

func TestSolve_Idempotent(t *testing.T) {
	ops := []task.Operator{
		{Name: "a", Eff: []fact.Fact{{Var: 0, Value: 1}}, Cost: 2},
		{Name: "b", Pre: []fact.Fact{{Var: 0, Value: 1}}, Eff: []fact.Fact{{Var: 1, Value: 1}}, Cost: 3},
	}
	tsk := mustTask(t, []int{2, 2}, ops, []int{0, 0}, []fact.Fact{{Var: 1, Value: 1}})

	s := NewSolver(tsk)
	tab1 := s.Solve(tsk.InitialState())
	v1, _ := Eval(tab1, tsk.Goals())

	s2 := NewSolver(tsk)
	tab2 := s2.Solve(tsk.InitialState())
	v2, _ := Eval(tab2, tsk.Goals())

	if v1 != v2 {
		t.Fatalf("Solve is not idempotent across fresh runs: %v != %v", v1, v2)
	}
}
