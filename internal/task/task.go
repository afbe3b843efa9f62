// Package task defines the read-only façade the h2 heuristic consumes: a
// narrow view of a planning task's variables, operators, initial state, and
// goals. The façade is the only contact point between the heuristic core
// and the surrounding planner, which this module does not implement.
package task

import (
	"fmt"

	"github.com/eliahaenggi/h2plan/internal/fact"
)

// Operator is a planning action: a set of preconditions that must hold, a
// set of effects that will hold afterwards, and a nonnegative cost.
type Operator struct {
	ID   int
	Name string
	Pre  []fact.Fact
	Eff  []fact.Fact
	Cost int
}

// Task is the read-only capability set consumed by the h2 core.
type Task interface {
	NumVariables() int
	DomainSize(v int) int
	Operators() []Operator
	InitialState() []int
	Goals() []fact.Fact
	HasAxioms() bool
	HasConditionalEffects() bool
}

// Named extends Task with the human-readable accessors and conditional-
// effect reporting a produced (compiled) façade must offer.
type Named interface {
	Task
	VariableName(v int) string
	FactName(f fact.Fact) string
	OperatorName(i int) string
	NumOperatorEffectConditions(opIndex int) int
	ConvertStateValuesFromParent(values []int) []int
}

// Static is a plain in-memory Task, the kind produced by a parser or by the
// Pi-squared compiler.
type Static struct {
	Domains     []int
	Ops         []Operator
	Init        []int
	GoalFacts   []fact.Fact
	Axioms      bool
	CondEffects bool
}

// New validates and returns a Static task. It rejects operators whose
// effects fall outside the declared variable/domain range or carry
// negative cost.
func New(domains []int, ops []Operator, init []int, goals []fact.Fact, axioms, condEffects bool) (*Static, error) {
	if len(init) != len(domains) {
		return nil, fmt.Errorf("task: initial state has %d values, want %d", len(init), len(domains))
	}
	// Operator ids are positional: every cache keyed by operator id
	// assumes id == index, so New enforces it rather than trusting
	// caller-supplied ids.
	for i := range ops {
		ops[i].ID = i
	}
	for _, op := range ops {
		if op.Cost < 0 {
			return nil, fmt.Errorf("task: operator %d has negative cost %d", op.ID, op.Cost)
		}
		for _, f := range append(append([]fact.Fact{}, op.Pre...), op.Eff...) {
			if f.Var < 0 || f.Var >= len(domains) {
				return nil, fmt.Errorf("task: operator %d references variable %d out of range", op.ID, f.Var)
			}
			if f.Value < 0 || f.Value >= domains[f.Var] {
				return nil, fmt.Errorf("task: operator %d references value %d out of range for variable %d", op.ID, f.Value, f.Var)
			}
		}
	}
	for _, g := range goals {
		if g.Var < 0 || g.Var >= len(domains) {
			return nil, fmt.Errorf("task: goal references variable %d out of range", g.Var)
		}
	}
	return &Static{
		Domains:     domains,
		Ops:         ops,
		Init:        init,
		GoalFacts:   goals,
		Axioms:      axioms,
		CondEffects: condEffects,
	}, nil
}

func (t *Static) NumVariables() int           { return len(t.Domains) }
func (t *Static) DomainSize(v int) int        { return t.Domains[v] }
func (t *Static) Operators() []Operator       { return t.Ops }
func (t *Static) InitialState() []int         { return t.Init }
func (t *Static) Goals() []fact.Fact          { return t.GoalFacts }
func (t *Static) HasAxioms() bool             { return t.Axioms }
func (t *Static) HasConditionalEffects() bool { return t.CondEffects }

// StateFacts returns the fact set corresponding to a full state-value
// vector.
func StateFacts(t Task, values []int) []fact.Fact {
	facts := make([]fact.Fact, 0, len(values))
	for v, val := range values {
		facts = append(facts, fact.Fact{Var: v, Value: val})
	}
	return facts
}

// SatisfiesGoals reports whether the given state-value vector satisfies
// every goal fact of t.
func SatisfiesGoals(t Task, values []int) bool {
	for _, g := range t.Goals() {
		if values[g.Var] != g.Value {
			return false
		}
	}
	return true
}
