// Package build implements the offline lexicon build pipeline (spec.md
// §2 "Control flow at build time", §4.C4-C7): an in-memory accumulator
// feeding the suffix optimizer, posting/hit sorter, hash-index builder and
// fuzzy-neighborhood builder, which together emit the on-disk lexicon
// files consumed by internal/lexicon and internal/search.
package build

import (
	"sort"

	"github.com/wolfpld/usenetarchive-sub002/internal/lexicon"
)

// RawPosting is one (term, post) association as accumulated in memory,
// before the suffix optimizer and sorter have run.
type RawPosting struct {
	PostID     uint32
	ChildCount uint32
	Hits       []byte // encoded hit bytes, in encounter order
}

// TermAccum collects the postings seen so far for one normalized term.
type TermAccum struct {
	Postings []RawPosting
}

// Accumulator gathers per-term postings across an entire corpus pass
// (spec.md §2: "tokenizer → accumulate per-term postings in memory").
// It is not safe for concurrent use; the tokenizer/ingestion pass that
// feeds it runs single-threaded (only C7, the fuzzy builder, parallelizes).
type Accumulator struct {
	terms map[string]*TermAccum

	postActive     bool
	postID         uint32
	childCount     uint32
	typeCounters   [7]int
	postHits       map[string][]byte
	postTermOrder  []string
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{terms: make(map[string]*TermAccum)}
}

// BeginPost starts accumulating hits for a new post. childCount is capped
// to lexicon.ChildMax by PackPostID at flush time.
func (a *Accumulator) BeginPost(postID, childCount uint32) {
	a.postActive = true
	a.postID = postID
	a.childCount = childCount
	a.typeCounters = [7]int{}
	a.postHits = make(map[string][]byte)
	a.postTermOrder = a.postTermOrder[:0]
}

// AddHit records one occurrence of term as hitType within the current
// post. The position bucket is the running per-type occurrence count
// within this post (0 = earliest), per spec.md §3 "Hit byte".
func (a *Accumulator) AddHit(term string, hitType lexicon.HitType) {
	if !a.postActive {
		return
	}
	pos := a.typeCounters[hitType]
	a.typeCounters[hitType]++
	hb := lexicon.EncodeHit(hitType, pos)
	if _, ok := a.postHits[term]; !ok {
		a.postTermOrder = append(a.postTermOrder, term)
	}
	a.postHits[term] = append(a.postHits[term], hb)
}

// EndPost flushes the current post's accumulated hits into each touched
// term's posting list.
func (a *Accumulator) EndPost() {
	if !a.postActive {
		return
	}
	for _, term := range a.postTermOrder {
		ta, ok := a.terms[term]
		if !ok {
			ta = &TermAccum{}
			a.terms[term] = ta
		}
		ta.Postings = append(ta.Postings, RawPosting{
			PostID:     a.postID,
			ChildCount: a.childCount,
			Hits:       a.postHits[term],
		})
	}
	a.postActive = false
}

// Terms returns the accumulated term strings in sorted (deterministic)
// order. Term ids are assigned as the index into this slice; the postings
// of each term are read with Postings.
func (a *Accumulator) Terms() []string {
	out := make([]string, 0, len(a.terms))
	for t := range a.terms {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Postings returns the raw postings accumulated for term.
func (a *Accumulator) Postings(term string) []RawPosting {
	if ta, ok := a.terms[term]; ok {
		return ta.Postings
	}
	return nil
}
