package main

import (
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/wolfpld/usenetarchive-sub002/internal/lexicon"
)

// maxSuggestionScan caps how many lexicon terms a "did you mean" lookup
// will walk, so a miss on a multi-million-term archive doesn't turn into a
// full linear scan on every failed query.
const maxSuggestionScan = 50000

const suggestionThreshold = 0.75

type suggestion struct {
	term  string
	score float32
}

// suggestTerms finds lexicon terms similar to any word of query, for the
// "no results — did you mean" hint printed by the search command. Distinct
// from the C7 fuzzy-neighbor index: that one is precomputed at build time
// over bounded edit distance for ranking; this is an on-demand, CLI-only
// convenience over Jaro-Winkler similarity, the teacher's choice for
// interactive fuzzy suggestions (internal/semantic/fuzzy_matcher.go).
func suggestTerms(lex *lexicon.Lexicon, query string) []string {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return nil
	}

	count := lex.TermCount()
	if count > maxSuggestionScan {
		count = maxSuggestionScan
	}

	var best []suggestion
	for id := uint32(0); id < count; id++ {
		meta, err := lex.Meta(id)
		if err != nil {
			continue
		}
		term, err := lex.String(meta.Str)
		if err != nil {
			continue
		}
		var top float32
		for _, w := range words {
			score, err := edlib.StringsSimilarity(w, term, edlib.JaroWinkler)
			if err != nil || score <= top {
				continue
			}
			top = score
		}
		if top > suggestionThreshold {
			best = append(best, suggestion{term: term, score: top})
		}
	}

	sort.Slice(best, func(i, j int) bool { return best[i].score > best[j].score })
	if len(best) > 5 {
		best = best[:5]
	}
	out := make([]string, len(best))
	for i, s := range best {
		out[i] = s.term
	}
	return out
}
