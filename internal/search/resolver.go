package search

import (
	"errors"

	"github.com/wolfpld/usenetarchive-sub002/internal/lexicon"
)

// Word is one term resolved to a lexicon entry, carrying the set-logic and
// fuzzy-expansion metadata needed by the joiner and ranker (spec.md
// §4.C9-C11).
type Word struct {
	TermID  uint32
	Meta    lexicon.TermMeta
	Literal string
	Must    bool
	Cant    bool
	Header  bool
	Mod     float32 // FuzzyMod; 1.0 for a direct (non-fuzzy) match
}

// resolve implements spec.md §4.C9: hash-lookup each parsed term, drop
// unknown ones, and — when fuzzy search is enabled and the term is
// neither strict nor must/cant — expand it through its fuzzy-neighbor
// list. A term id is added to the working set at most once.
func (e *Engine) resolve(parsed []ParsedTerm, flags Flags) ([]Word, []string, error) {
	var words []Word
	var matched []string
	seen := make(map[uint32]bool)

	for _, t := range parsed {
		termID, err := e.hash.Search(t.Text)
		if errors.Is(err, lexicon.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		if !seen[termID] {
			meta, err := e.lex.Meta(termID)
			if err != nil {
				return nil, nil, err
			}
			seen[termID] = true
			words = append(words, Word{
				TermID:  termID,
				Meta:    meta,
				Literal: t.Text,
				Must:    t.Must,
				Cant:    t.Cant,
				Header:  t.Header,
				Mod:     1.0,
			})
			matched = append(matched, t.Text)
		}

		if flags&FuzzySearch == 0 || t.Strict || t.Must || t.Cant {
			continue
		}
		if e.fuzzy == nil {
			continue
		}
		neighbors, err := e.fuzzy.Neighbors(termID)
		if err != nil {
			return nil, nil, err
		}
		for _, n := range neighbors {
			literal, err := e.lex.String(n.NeighborStr)
			if err != nil {
				return nil, nil, err
			}
			neighborID, err := e.hash.Search(literal)
			if errors.Is(err, lexicon.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, nil, err
			}
			if seen[neighborID] {
				continue
			}
			meta, err := e.lex.Meta(neighborID)
			if err != nil {
				return nil, nil, err
			}
			seen[neighborID] = true
			words = append(words, Word{
				TermID:  neighborID,
				Meta:    meta,
				Literal: literal,
				Header:  t.Header,
				Mod:     lexicon.FuzzyDistanceMod[n.Distance],
			})
			matched = append(matched, literal)
		}
	}

	return words, matched, nil
}
