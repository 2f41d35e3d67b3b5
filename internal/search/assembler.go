package search

import "sort"

// assemble implements spec.md §4.C12: sort the per-post results by
// descending rank. The matched-literal vector is already carried
// alongside in SearchData by the caller.
func assemble(results []SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Rank > results[j].Rank
	})
}
