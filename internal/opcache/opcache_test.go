package opcache

import (
	"testing"

	"github.com/eliahaenggi/h2plan/internal/fact"
	"github.com/eliahaenggi/h2plan/internal/task"
)

func mustTask(t *testing.T, domains []int, ops []task.Operator, init []int, goals []fact.Fact) *task.Static {
	st, err := task.New(domains, ops, init, goals, false, false)
	if err != nil {
		t.Fatalf("task.New: %v", err)
	}
	return st
}

func TestBuild_PartialEffAndPre(t *testing.T) {
	ops := []task.Operator{
		{Name: "a", Pre: nil, Eff: []fact.Fact{{Var: 0, Value: 1}, {Var: 1, Value: 1}}, Cost: 3},
	}
	tsk := mustTask(t, []int{2, 2}, ops, []int{0, 0}, nil)
	c := Build(tsk)

	if len(c.PartialEff[0]) != 3 {
		t.Fatalf("PartialEff[0] has %d entries, want 3 (two singles + one pair)", len(c.PartialEff[0]))
	}
	if len(c.Pre[0]) != 0 {
		t.Fatalf("Pre[0] = %v, want empty", c.Pre[0])
	}
	if _, ok := c.EffVars[0][0]; !ok {
		t.Errorf("EffVars[0] missing variable 0")
	}
	if _, ok := c.EffVars[0][1]; !ok {
		t.Errorf("EffVars[0] missing variable 1")
	}
}

func TestBuild_EmptyPreconditionFansIntoEveryFact(t *testing.T) {
	ops := []task.Operator{
		{Name: "a", Pre: nil, Eff: []fact.Fact{{Var: 0, Value: 1}}, Cost: 1},
	}
	tsk := mustTask(t, []int{2, 3}, ops, []int{0, 0}, nil)
	c := Build(tsk)

	for v := 0; v < 2; v++ {
		for d := 0; d < tsk.DomainSize(v); d++ {
			f := fact.Fact{Var: v, Value: d}
			if len(c.OpDict[f]) != 1 || c.OpDict[f][0] != 0 {
				t.Errorf("OpDict[%v] = %v, want [0]", f, c.OpDict[f])
			}
		}
	}
}

func TestBuild_NonEmptyPreconditionFansOnlyIntoItsOwnFacts(t *testing.T) {
	ops := []task.Operator{
		{Name: "b", Pre: []fact.Fact{{Var: 0, Value: 1}}, Eff: []fact.Fact{{Var: 1, Value: 1}}, Cost: 1},
	}
	tsk := mustTask(t, []int{2, 2}, ops, []int{0, 0}, nil)
	c := Build(tsk)

	if got := c.OpDict[fact.Fact{Var: 0, Value: 1}]; len(got) != 1 || got[0] != 0 {
		t.Errorf("OpDict[v0=1] = %v, want [0]", got)
	}
	if got := c.OpDict[fact.Fact{Var: 0, Value: 0}]; len(got) != 0 {
		t.Errorf("OpDict[v0=0] = %v, want empty", got)
	}
}
