package pi2

import (
	"strings"

	"github.com/eliahaenggi/h2plan/internal/fact"
	"github.com/eliahaenggi/h2plan/internal/task"
)

var _ task.Named = (*CompiledTask)(nil)

func (c *CompiledTask) NumVariables() int    { return len(c.domains) }
func (c *CompiledTask) DomainSize(int) int   { return 2 }
func (c *CompiledTask) InitialState() []int  { return c.init }
func (c *CompiledTask) Goals() []fact.Fact   { return c.goals }

// HasAxioms and HasConditionalEffects are always false: the compiler never
// introduces either, regardless of whether the original task carried them.
func (c *CompiledTask) HasAxioms() bool             { return false }
func (c *CompiledTask) HasConditionalEffects() bool { return false }

func (c *CompiledTask) Operators() []task.Operator {
	ops := make([]task.Operator, len(c.ops))
	for i, mo := range c.ops {
		ops[i] = task.Operator{
			ID:   i,
			Name: operatorName(mo.parentID, mo.sAtom),
			Pre:  mo.pre,
			Eff:  mo.eff,
			Cost: mo.cost,
		}
	}
	return ops
}

// VariableName returns the present-form name of meta-atom v, used as the
// compiled task's variable name (every compiled variable is binary and is
// conventionally named after its "true" fact).
func (c *CompiledTask) VariableName(v int) string {
	return c.factNames[v][1]
}

// FactName returns the name of meta-atom fact f: its present form if
// f.Value == 1, its "not ..." absent form otherwise.
func (c *CompiledTask) FactName(f fact.Fact) string {
	return c.factNames[f.Var][f.Value]
}

func (c *CompiledTask) OperatorName(i int) string {
	mo := c.ops[i]
	return operatorName(mo.parentID, mo.sAtom)
}

// NumOperatorEffectConditions is always 0: the compiler never introduces
// conditional effects.
func (c *CompiledTask) NumOperatorEffectConditions(int) int {
	return 0
}

// ConvertStateValuesFromParent translates a state vector given in the
// original task's variable space into the meta-atom space: meta-atom
// M(p, q) is 1 iff both p and q (the sentinel is always satisfied) match
// values.
func (c *CompiledTask) ConvertStateValuesFromParent(values []int) []int {
	out := make([]int, len(c.factNames))
	matches := func(f fact.Fact) bool {
		return f.IsNone() || values[f.Var] == f.Value
	}
	for p, idx := range c.metaAtomOf {
		if matches(p.A) && matches(p.B) {
			out[idx] = 1
		}
	}
	return out
}

// DebugDump renders every compiled operator as one line of text: its name
// followed by the names of its meta-atom preconditions and effects, for
// development use.
func (c *CompiledTask) DebugDump() string {
	var sb strings.Builder
	for _, mo := range c.ops {
		sb.WriteString(operatorName(mo.parentID, mo.sAtom))
		sb.WriteString(" pre:")
		for _, p := range mo.pre {
			sb.WriteString(" ")
			sb.WriteString(c.FactName(p))
		}
		sb.WriteString(" eff:")
		for _, e := range mo.eff {
			sb.WriteString(" ")
			sb.WriteString(c.FactName(e))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
