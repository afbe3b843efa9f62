package heuristic

import (
	"log"
	"strconv"

	"github.com/eliahaenggi/h2plan/internal/dual"
	"github.com/eliahaenggi/h2plan/internal/htable"
	"github.com/eliahaenggi/h2plan/internal/htwo"
	"github.com/eliahaenggi/h2plan/internal/task"
)

// DeadEnd is the sentinel Compute returns for a state from which no goal
// state is reachable in the delete relaxation. It is chosen well above any
// cost a real task could produce.
const DeadEnd = 1 << 30

// coreHeuristic is satisfied by both the forward (internal/htwo) and dual
// (internal/dual) heuristics; Heuristic adapts whichever one it wraps to
// the produced façade's int-valued Compute.
type coreHeuristic interface {
	Compute(state []int) (htable.Cost, bool)
	DeadEndsAreReliable() bool
}

// Heuristic is the produced façade's handle: a single compute(state) entry
// point, optionally memoized, over either the forward or dual core.
type Heuristic struct {
	opts  Options
	core  coreHeuristic
	cache map[string]int
}

// NewH2 builds the forward h2 heuristic, registered with the host as "h2".
func NewH2(t task.Task, opts Options) (*Heuristic, error) {
	if opts.Transform != nil {
		t = opts.Transform(t)
	}
	return newHeuristic(htwo.NewHeuristic(t), opts, "h^2"), nil
}

// NewH2Dual builds the dual (regressed) h2 heuristic, registered with the
// host as "h2_dual".
func NewH2Dual(t task.Task, opts Options) (*Heuristic, error) {
	if opts.Transform != nil {
		t = opts.Transform(t)
	}
	d, err := dual.New(t)
	if err != nil {
		return nil, err
	}
	return newHeuristic(d, opts, "h^2 (dual)"), nil
}

// Registry maps a heuristic variant's configuration name to its
// constructor, letting a host (such as cmd/h2plan) select one by flag
// rather than importing internal/htwo or internal/dual directly.
var Registry = map[string]func(task.Task, Options) (*Heuristic, error){
	"h2":      NewH2,
	"h2_dual": NewH2Dual,
}

func newHeuristic(core coreHeuristic, opts Options, label string) *Heuristic {
	if opts.Verbosity >= Normal {
		log.Printf("Using %s.", label)
	}
	if !core.DeadEndsAreReliable() && opts.Verbosity >= Normal {
		log.Printf("%s: task has axioms or conditional effects; dead ends are not guaranteed sound.", opts.Description)
	}
	var cache map[string]int
	if opts.CacheEstimates {
		cache = map[string]int{}
	}
	return &Heuristic{opts: opts, core: core, cache: cache}
}

// Compute returns the heuristic value of state, or DeadEnd if no goal is
// reachable under the delete relaxation.
func (h *Heuristic) Compute(state []int) int {
	if h.cache != nil {
		key := stateKey(state)
		if v, ok := h.cache[key]; ok {
			return v
		}
		v := h.computeRaw(state)
		h.cache[key] = v
		return v
	}
	return h.computeRaw(state)
}

func (h *Heuristic) computeRaw(state []int) int {
	v, deadEnd := h.core.Compute(state)
	if deadEnd {
		return DeadEnd
	}
	return int(v)
}

// DeadEndsAreReliable reports whether a DeadEnd returned by Compute is
// sound for the wrapped task.
func (h *Heuristic) DeadEndsAreReliable() bool {
	return h.core.DeadEndsAreReliable()
}

func stateKey(state []int) string {
	b := make([]byte, 0, len(state)*4)
	for i, v := range state {
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
	}
	return string(b)
}
