package search

import (
	"sort"

	"github.com/wolfpld/usenetarchive-sub002/internal/bitset"
	"github.com/wolfpld/usenetarchive-sub002/internal/lexicon"
)

// PostingView is one term's posting for a single post, with the inline-vs-
// spilled hit-stream decision already resolved (spec.md §4.C10).
type PostingView struct {
	PostID     uint32
	ChildCount uint32
	Hits       []byte
}

// wordHit pairs a matched word's index (into the resolved Word slice) with
// its PostingView for one post.
type wordHit struct {
	wordIdx int
	view    PostingView
}

// postMatch is one post that survived the join, with the list of words
// that hit it.
type postMatch struct {
	postID     uint32
	childCount uint32
	hits       []wordHit
}

// postingViews resolves, filters and returns word's postings in on-disk
// order (ascending by post id, preserved by the filter).
func postingViews(lex *lexicon.Lexicon, w Word, filter lexicon.HitType) ([]PostingView, error) {
	postings, err := lex.Postings(w.Meta)
	if err != nil {
		return nil, err
	}
	views := make([]PostingView, 0, len(postings))
	for _, p := range postings {
		hits, err := lex.Hits(p)
		if err != nil {
			return nil, err
		}
		if filter != lexicon.FilterAll {
			if !containsType(hits, filter) {
				continue
			}
		} else if w.Header {
			if !containsType(hits, lexicon.HitHeader) {
				continue
			}
		}
		views = append(views, PostingView{
			PostID:     lexicon.PostID(p.PostIDWithChildren),
			ChildCount: lexicon.ChildCount(p.PostIDWithChildren),
			Hits:       hits,
		})
	}
	return views, nil
}

func containsType(hits []byte, t lexicon.HitType) bool {
	for _, h := range hits {
		if lexicon.DecodeType(h) == t {
			return true
		}
	}
	return false
}

// join implements spec.md §4.C10's three modes over the resolved word
// list, then applies the set-logic must/cant modifiers: a post survives
// only if every "must" word hit it, and is dropped if any "cant" word hit
// it (regardless of join mode).
func (e *Engine) join(words []Word, flags Flags, filter lexicon.HitType) ([]postMatch, error) {
	views := make([][]PostingView, len(words))
	for i, w := range words {
		v, err := postingViews(e.lex, w, filter)
		if err != nil {
			return nil, err
		}
		views[i] = v
	}

	var matches []postMatch
	switch {
	case len(words) == 1:
		matches = joinSingle(views[0])
	case flags&RequireAllWords != 0:
		matches = joinAll(views)
	default:
		matches = e.joinFull(views)
	}

	return applySetLogic(words, matches), nil
}

func joinSingle(views []PostingView) []postMatch {
	out := make([]postMatch, len(views))
	for i, v := range views {
		out[i] = postMatch{postID: v.PostID, childCount: v.ChildCount, hits: []wordHit{{wordIdx: 0, view: v}}}
	}
	return out
}

// joinAll picks word 0's postings as the driver and binary-searches each
// other word's (post-id sorted) list, keeping only posts present in every
// list (spec.md §4.C10 mode 2).
func joinAll(views [][]PostingView) []postMatch {
	driver := views[0]
	out := make([]postMatch, 0, len(driver))
	for _, dv := range driver {
		hits := make([]wordHit, 0, len(views))
		hits = append(hits, wordHit{wordIdx: 0, view: dv})
		ok := true
		for wi := 1; wi < len(views); wi++ {
			v, found := binarySearchPost(views[wi], dv.PostID)
			if !found {
				ok = false
				break
			}
			hits = append(hits, wordHit{wordIdx: wi, view: v})
		}
		if ok {
			out = append(out, postMatch{postID: dv.PostID, childCount: dv.ChildCount, hits: hits})
		}
	}
	return out
}

func binarySearchPost(views []PostingView, postID uint32) (PostingView, bool) {
	i := sort.Search(len(views), func(i int) bool { return views[i].PostID >= postID })
	if i < len(views) && views[i].PostID == postID {
		return views[i], true
	}
	return PostingView{}, false
}

// joinFull buckets postings by post id across all words using a scratch
// index table sized to MessageCount (spec.md §4.C10 mode 3, the default).
// When MessageCount is unknown (zero), it falls back to a map-backed index
// of the same shape.
func (e *Engine) joinFull(views [][]PostingView) []postMatch {
	var out []postMatch

	if e.MessageCount > 0 {
		index := make([]int32, e.MessageCount)
		for i := range index {
			index[i] = -1
		}
		for wi, wv := range views {
			for _, v := range wv {
				if uint32(v.PostID) >= e.MessageCount {
					continue // out-of-range post id; treat defensively as unbucketed
				}
				slot := index[v.PostID]
				if slot == -1 {
					out = append(out, postMatch{postID: v.PostID, childCount: v.ChildCount})
					index[v.PostID] = int32(len(out) - 1)
					slot = index[v.PostID]
				}
				out[slot].hits = append(out[slot].hits, wordHit{wordIdx: wi, view: v})
			}
		}
		return out
	}

	index := make(map[uint32]int)
	for wi, wv := range views {
		for _, v := range wv {
			slot, ok := index[v.PostID]
			if !ok {
				out = append(out, postMatch{postID: v.PostID, childCount: v.ChildCount})
				slot = len(out) - 1
				index[v.PostID] = slot
			}
			out[slot].hits = append(out[slot].hits, wordHit{wordIdx: wi, view: v})
		}
	}
	return out
}

// applySetLogic enforces must/cant modifiers on top of the chosen join
// mode's base result set.
func applySetLogic(words []Word, matches []postMatch) []postMatch {
	var mustIdx, cantIdx []int
	for i, w := range words {
		if w.Must {
			mustIdx = append(mustIdx, i)
		}
		if w.Cant {
			cantIdx = append(cantIdx, i)
		}
	}
	if len(mustIdx) == 0 && len(cantIdx) == 0 {
		return matches
	}

	out := matches[:0]
	for _, m := range matches {
		present := bitset.New(len(words))
		for _, h := range m.hits {
			present.Set(h.wordIdx)
		}
		ok := true
		for _, idx := range mustIdx {
			if !present.Test(idx) {
				ok = false
				break
			}
		}
		if ok {
			for _, idx := range cantIdx {
				if present.Test(idx) {
					ok = false
					break
				}
			}
		}
		if ok {
			out = append(out, m)
		}
	}
	return out
}
