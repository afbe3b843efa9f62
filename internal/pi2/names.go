package pi2

import (
	"fmt"
	"strconv"

	"github.com/eliahaenggi/h2plan/internal/fact"
)

// factLabel returns the bare (no "not ") name of a real fact, following the
// "v_<var>=<value>" convention.
func factLabel(f fact.Fact) string {
	return "v_" + strconv.Itoa(f.Var) + "=" + strconv.Itoa(f.Value)
}

// pairNames returns the {absent, present} name pair for meta-atom (a, b):
// "v_<v>=<d>" for a singleton, "v_<v1>=<d1>,<v2>=<d2>" for a genuine pair,
// each with a "not " absent form, and the special "v_∅" anchor name for the
// fully-empty pair.
func pairNames(a, b fact.Fact) (absent, present string) {
	switch {
	case a.IsNone() && b.IsNone():
		return "not v_∅", "v_∅"
	case a.IsNone():
		name := factLabel(b)
		return "not " + name, name
	case b.IsNone():
		name := factLabel(a)
		return "not " + name, name
	case a == b:
		name := factLabel(a)
		return "not " + name, name
	default:
		name := factLabel(a) + "," + strconv.Itoa(b.Var) + "=" + strconv.Itoa(b.Value)
		return "not " + name, name
	}
}

// operatorName renders a compiled operator's name, "o_<id>,∅" for the
// context-free family member or "o_<id>,<v>=<d>" for the one indexed by
// context atom (v, d).
func operatorName(parentID int, s fact.Fact) string {
	if s.IsNone() {
		return fmt.Sprintf("o_%d,∅", parentID)
	}
	return fmt.Sprintf("o_%d,%d=%d", parentID, s.Var, s.Value)
}
