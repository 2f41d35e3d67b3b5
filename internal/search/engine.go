package search

import (
	"github.com/wolfpld/usenetarchive-sub002/internal/archiveerrors"
	"github.com/wolfpld/usenetarchive-sub002/internal/lexicon"
)

// Flags is the caller-controlled bit-or of query behaviors (spec.md §6
// "SearchFlags").
type Flags uint32

const (
	AdjacentWords   Flags = 1
	RequireAllWords Flags = 2
	FuzzySearch     Flags = 4
	SetLogic        Flags = 8
)

// MaxHitsPerResult bounds the per-post hit/word vectors returned in a
// SearchResult (spec.md §4.C11 "MAX_HITS_PER_RESULT").
const MaxHitsPerResult = 7

// SearchResult is one matched post (spec.md §6).
type SearchResult struct {
	PostID uint32
	Rank   float32
	Hits   []byte
	Words  []uint32
}

// SearchData is the full response of a query (spec.md §6).
type SearchData struct {
	Results []SearchResult
	Matched []string
}

// Engine ties the memory-mapped lexicon, its hash index and its (optional)
// fuzzy index into the query path described in spec.md §4.C8-C12.
type Engine struct {
	lex   *lexicon.Lexicon
	hash  *lexicon.HashIndex
	fuzzy *lexicon.FuzzyIndex // nil when fuzzy data is absent

	// MessageCount sizes the full-join scratch table (spec.md §4.C10:
	// "scratch index[post_id] table sized to the number of messages in
	// the archive"). Zero falls back to a map-backed index, which is
	// still correct but forgoes the O(1) array-slot fast path.
	MessageCount uint32
}

// NewEngine constructs an Engine over an already-opened lexicon and hash
// index. fuzzy may be nil, in which case FuzzySearch is always fixed up
// off (spec.md §7 "MissingFuzzyData").
func NewEngine(lex *lexicon.Lexicon, hash *lexicon.HashIndex, fuzzy *lexicon.FuzzyIndex, messageCount uint32) *Engine {
	return &Engine{lex: lex, hash: hash, fuzzy: fuzzy, MessageCount: messageCount}
}

// Search runs the full query pipeline: parse, resolve (with fuzzy
// expansion), join, rank, assemble (spec.md §4.C8-C12).
func (e *Engine) Search(query string, flags Flags, filter lexicon.HitType) (SearchData, error) {
	flags = fixupFlags(flags, e.fuzzy != nil)

	parsed := ParseQuery(query, flags)
	words, matched, err := e.resolve(parsed, flags)
	if err != nil {
		return SearchData{}, archiveerrors.NewSearchError(query, err)
	}
	if isEmptyQuery(words) {
		return SearchData{Matched: matched}, nil
	}

	matches, err := e.join(words, flags, filter)
	if err != nil {
		return SearchData{}, archiveerrors.NewSearchError(query, err)
	}

	results := e.rank(words, matches, flags)
	assemble(results)

	return SearchData{Results: results, Matched: matched}, nil
}

// fixupFlags applies spec.md §7's flag-dependency rules: fuzzy requires a
// loaded fuzzy index; fuzzy disables "require all words" (expanded terms
// would falsify the conjunction); "require all words" disables set-logic.
func fixupFlags(flags Flags, hasFuzzy bool) Flags {
	if !hasFuzzy {
		flags &^= FuzzySearch
	}
	if flags&FuzzySearch != 0 {
		flags &^= RequireAllWords
	}
	if flags&RequireAllWords != 0 {
		flags &^= SetLogic
	}
	return flags
}

// isEmptyQuery reports spec.md §7's EmptyQuery condition: no resolvable
// terms, or a single "cant" term (a bare negation matches nothing).
func isEmptyQuery(words []Word) bool {
	if len(words) == 0 {
		return true
	}
	return len(words) == 1 && words[0].Cant
}
