// Package heuristic is the produced heuristic façade: a single
// compute(state) entry point with two registered variants, h2 and h2_dual,
// configured through an Options struct with sane defaults rather than a
// flags framework.
package heuristic

import "github.com/eliahaenggi/h2plan/internal/task"

// Verbosity gates the preamble and diagnostic messages a heuristic logs at
// construction time.
type Verbosity int

const (
	Silent Verbosity = iota
	Normal
	Verbose
)

// Options configures heuristic construction.
type Options struct {
	// Transform optionally wraps the input task before the heuristic reads
	// it (e.g. a state-space reduction applied upstream of the core).
	Transform func(task.Task) task.Task

	// CacheEstimates, if true, memoizes h-values per state outside the
	// core solver.
	CacheEstimates bool

	// Description is a human-readable label used by the host when
	// reporting which heuristic produced a value.
	Description string

	// Verbosity controls preamble/diagnostic logging only; it never
	// affects the computed value.
	Verbosity Verbosity
}

// DefaultOptions mirrors sat.DefaultOptions: sensible values a caller can
// start from and override individual fields on.
var DefaultOptions = Options{
	Description: "h2",
	Verbosity:   Normal,
}
