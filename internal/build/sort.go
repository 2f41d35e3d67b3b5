package build

import (
	"sort"

	"github.com/wolfpld/usenetarchive-sub002/internal/lexicon"
)

// SortTermPostings normalizes one term's accumulated postings in place
// (spec.md §4.C5): postings are ordered ascending by post id, and within
// each posting whose hit stream has more than one byte, hits are ordered
// descending by HitRank so that the strongest hit leads (used both by the
// single-word rank shortcut and by result assembly).
func SortTermPostings(postings []RawPosting) {
	for i := range postings {
		if len(postings[i].Hits) > 1 {
			sortHitsByRank(postings[i].Hits)
		}
	}
	sort.SliceStable(postings, func(i, j int) bool {
		return postings[i].PostID < postings[j].PostID
	})
}

func sortHitsByRank(hits []byte) {
	sort.SliceStable(hits, func(i, j int) bool {
		ri, rj := lexicon.HitRank(hits[i]), lexicon.HitRank(hits[j])
		if ri != rj {
			return ri > rj
		}
		return hits[i] < hits[j]
	})
}
