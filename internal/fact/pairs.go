package fact

import "sort"

// PartialPairs enumerates every subset of size 1 and 2 of facts, in
// canonical Pair form, emitted singletons-first in (sorted) index order and
// then lexicographically by index pair. Results do not depend on the input
// order of facts, but the emission order must be deterministic so that
// solver traces are reproducible.
func PartialPairs(facts []Fact) []Pair {
	t := append([]Fact{}, facts...)
	sort.Slice(t, func(i, j int) bool { return t[i].Less(t[j]) })

	res := make([]Pair, 0, len(t)+len(t)*(len(t)-1)/2)
	for _, f := range t {
		res = append(res, Single(f))
	}
	for i := 0; i < len(t); i++ {
		for j := i + 1; j < len(t); j++ {
			res = append(res, Of(t[i], t[j]))
		}
	}
	return res
}
