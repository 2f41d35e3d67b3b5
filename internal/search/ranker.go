package search

import (
	"sort"

	"github.com/wolfpld/usenetarchive-sub002/internal/lexicon"
)

// noAdjacencyPenalty is the fixed divisor applied when exactly one word
// matches a post and adjacency scoring is requested (spec.md §4.C11).
const noAdjacencyPenalty = 127

// wordDistanceSentinel is returned by wordDistance when no pair of words
// ever had both positions defined for any hit type (spec.md §4.C11).
const wordDistanceSentinel = 127

// postRank implements spec.md §4.C11's PostRank(post).
func postRank(childCount uint32) float32 {
	return (float32(childCount)/31)*0.9 + 0.1
}

// rank computes a SearchResult for every joined post (spec.md §4.C11,
// the hit/word selection portion of C11, folded in here since it shares
// the per-post hit list this function already builds).
func (e *Engine) rank(words []Word, matches []postMatch, flags Flags) []SearchResult {
	out := make([]SearchResult, 0, len(matches))
	for _, m := range matches {
		var sum float32
		for _, h := range m.hits {
			sum += lexicon.HitRank(h.view.Hits[0]) * words[h.wordIdx].Mod
		}

		if flags&AdjacentWords != 0 {
			if len(m.hits) == 1 {
				sum /= noAdjacencyPenalty
			} else {
				sum /= float32(wordDistance(m.hits))
			}
		}

		sum *= postRank(m.childCount)

		hits, wordIDs := selectHits(words, m.hits)
		out = append(out, SearchResult{
			PostID: m.postID,
			Rank:   sum,
			Hits:   hits,
			Words:  wordIDs,
		})
	}
	return out
}

// selectHits gathers (hit_byte, word_id) pairs across all of a post's
// matching words, sorts by descending HitRank, and keeps the first
// MaxHitsPerResult (spec.md §4.C11 "Hit/word selection for output").
func selectHits(words []Word, hits []wordHit) ([]byte, []uint32) {
	type pair struct {
		hit    byte
		wordID uint32
	}
	var pairs []pair
	for _, h := range hits {
		for _, b := range h.view.Hits {
			pairs = append(pairs, pair{hit: b, wordID: words[h.wordIdx].TermID})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return lexicon.HitRank(pairs[i].hit) > lexicon.HitRank(pairs[j].hit)
	})
	n := len(pairs)
	if n > MaxHitsPerResult {
		n = MaxHitsPerResult
	}
	outHits := make([]byte, n)
	outWords := make([]uint32, n)
	for i := 0; i < n; i++ {
		outHits[i] = pairs[i].hit
		outWords[i] = pairs[i].wordID
	}
	return outHits, outWords
}

// wordDistance implements spec.md §4.C11's "Word distance": for each hit
// type independently, build each word's ordered position list (excluding
// the "unknown position" sentinel), and two-cursor-walk every pair of
// words, tracking the minimum absolute difference seen. An adjacency
// below 2 short-circuits to 1 (closest possible, excluding exact overlap
// which cannot occur between distinct words at the same position bucket
// without also matching the same hit byte).
func wordDistance(hits []wordHit) int {
	positions := make([][numHitTypesLocal][]int, len(hits))
	for i, h := range hits {
		for _, b := range h.view.Hits {
			if lexicon.PositionUnknown(b) {
				continue
			}
			t := lexicon.DecodeType(b)
			positions[i][t] = append(positions[i][t], lexicon.DecodePosition(b))
		}
	}
	for i := range positions {
		for t := range positions[i] {
			sort.Ints(positions[i][t])
		}
	}

	best := wordDistanceSentinel
	for i := 0; i < len(hits); i++ {
		for j := i + 1; j < len(hits); j++ {
			for t := 0; t < numHitTypesLocal; t++ {
				d, ok := minPairDistance(positions[i][t], positions[j][t])
				if !ok {
					continue
				}
				if d < 2 {
					return 1
				}
				if d < best {
					best = d
				}
			}
		}
	}
	return best
}

// numHitTypesLocal mirrors lexicon's private numHitTypes (7); kept local
// since the lexicon package does not export it.
const numHitTypesLocal = int(lexicon.HitWrote) + 1

// minPairDistance finds the minimum |a[i] - b[j]| between two ascending-
// sorted position lists using the standard two-cursor merge walk.
func minPairDistance(a, b []int) (int, bool) {
	if len(a) == 0 || len(b) == 0 {
		return 0, false
	}
	i, j := 0, 0
	best := abs(a[0] - b[0])
	for i < len(a) && j < len(b) {
		d := abs(a[i] - b[j])
		if d < best {
			best = d
		}
		if a[i] < b[j] {
			i++
		} else {
			j++
		}
	}
	return best, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
