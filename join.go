package ecs

import "sort"

// intersectIDs counts, per id, how many input id-slices contain it, keeps
// only ids that appear in all of them (each once), then sorts. The result is the
// ascending-id iteration order shared by every Join arity.
func intersectIDs(columns ...[]Entity) []Entity {
	if len(columns) == 0 {
		return nil
	}
	counts := make(map[Entity]int)
	for _, col := range columns {
		seen := make(map[Entity]bool, len(col))
		for _, id := range col {
			if seen[id] {
				continue
			}
			seen[id] = true
			counts[id]++
		}
	}
	want := len(columns)
	out := make([]Entity, 0, len(counts))
	for id, n := range counts {
		if n == want {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
